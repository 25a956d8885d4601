package get_bookings

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/service/bookings"
	"github.com/m04kA/SMC-DockService/internal/service/bookings/models"
)

const msgInvalidQuery = "некорректные параметры запроса"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	req, err := parseListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Пользователь компании видит только бронирования своей компании,
	// водитель - только свои
	switch identity.UserType {
	case middleware.UserTypeCompany:
		req.CompanyID = identity.CompanyID
	case middleware.UserTypeDriver:
		driverID := identity.UserID
		req.DriverID = &driverID
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func parseListRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if raw := query.Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		req.Status = &status
	}

	var err error
	if req.CompanyID, err = parseOptionalInt64(query.Get("companyId")); err != nil {
		return nil, err
	}
	if req.WarehouseID, err = parseOptionalInt64(query.Get("warehouseId")); err != nil {
		return nil, err
	}
	if req.DriverID, err = parseOptionalInt64(query.Get("driverId")); err != nil {
		return nil, err
	}

	if req.DateFrom, err = parseOptionalDate(query.Get("dateFrom")); err != nil {
		return nil, err
	}
	if req.DateTo, err = parseOptionalDate(query.Get("dateTo")); err != nil {
		return nil, err
	}

	if raw := query.Get("search"); raw != "" {
		req.Search = &raw
	}

	if raw := query.Get("page"); raw != "" {
		if req.Page, err = strconv.Atoi(raw); err != nil {
			return nil, err
		}
	}
	if raw := query.Get("limit"); raw != "" {
		if req.Limit, err = strconv.Atoi(raw); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func parseOptionalInt64(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/service/bookings"
	"github.com/m04kA/SMC-DockService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidQRCode    = "некорректный QR-код"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		h.respondError(w, "GET /bookings/{id}", bookingID, err)
		return
	}

	if !h.canView(r, resp) {
		h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d", bookingID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleByQR GET /api/v1/bookings/qr/{qrCode}
func (h *Handler) HandleByQR(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	qrCode := vars["qrCode"]
	if qrCode == "" {
		handlers.RespondBadRequest(w, msgInvalidQRCode)
		return
	}

	resp, err := h.service.GetByQRCode(r.Context(), qrCode)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQRCode)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/qr/{qrCode} - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/qr/{qrCode} - Failed to get booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, bookingID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%d", op, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed to get booking: booking_id=%d, error=%v", op, bookingID, err)
		handlers.RespondInternalError(w)
	}
}

// canView проверяет право identity видеть бронирование:
// компания - только свои, водитель - только назначенные на него
func (h *Handler) canView(r *http.Request, b *models.BookingResponse) bool {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		return false
	}

	switch identity.UserType {
	case middleware.UserTypeCompany:
		return identity.CompanyID != nil && *identity.CompanyID == b.CompanyID
	case middleware.UserTypeDriver:
		return b.DriverID != nil && *b.DriverID == identity.UserID
	default:
		return true
	}
}

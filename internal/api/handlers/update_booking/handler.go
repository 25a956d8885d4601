package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/infra/storage/audit"
	"github.com/m04kA/SMC-DockService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotUpdate       = "бронирование не может быть изменено в текущем статусе"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот недоступен для бронирования"
)

type Handler struct {
	service BookingService
	audit   handlers.AuditLog
	logger  Logger
}

func NewHandler(service BookingService, auditLog handlers.AuditLog, logger Logger) *Handler {
	return &Handler{
		service: service,
		audit:   auditLog,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Пользователь компании меняет только бронирования своей компании
	if identity.UserType == middleware.UserTypeCompany {
		current, err := h.service.GetByID(r.Context(), bookingID)
		if err != nil {
			if errors.Is(err, bookings.ErrBookingNotFound) {
				handlers.RespondNotFound(w, msgNotFound)
				return
			}
			h.logger.Error("PUT /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
			return
		}
		if identity.CompanyID == nil || *identity.CompanyID != current.CompanyID {
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	resp, err := h.service.Update(r.Context(), bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Validation failed: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotUpdate):
			h.logger.Warn("PUT /bookings/{id} - Cannot update: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotUpdate)

		case errors.Is(err, bookings.ErrSlotNotFound):
			h.logger.Warn("PUT /bookings/{id} - Target slot not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookings.ErrSlotUnavailable):
			h.logger.Warn("PUT /bookings/{id} - Target slot unavailable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
		Action:     "booking.update",
		EntityType: "booking",
		EntityID:   bookingID,
		ActorID:    identity.UserID,
		ActorIP:    handlers.ClientIP(r),
	})

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

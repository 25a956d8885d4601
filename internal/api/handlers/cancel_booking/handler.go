package cancel_booking

import (
	"errors"
	"io"
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
	msgAlreadyCancelled   = "бронирование уже отменено"
	msgAlreadyCompleted   = "завершенное бронирование нельзя отменить"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело опционально: отмена без причины допустима
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && err != io.EOF {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Пользователь компании отменяет только бронирования своей компании
	if identity.UserType == middleware.UserTypeCompany {
		current, err := h.service.GetByID(r.Context(), bookingID)
		if err != nil {
			if errors.Is(err, bookings.ErrBookingNotFound) {
				handlers.RespondNotFound(w, msgNotFound)
				return
			}
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to get booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
			return
		}
		if identity.CompanyID == nil || *identity.CompanyID != current.CompanyID {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d",
				bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	resp, err := h.service.Cancel(r.Context(), bookingID, req.CancellationReason)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Validation failed: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, bookings.ErrAlreadyCompleted):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Already completed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyCompleted)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
		Action:     "booking.cancel",
		EntityType: "booking",
		EntityID:   bookingID,
		ActorID:    identity.UserID,
		ActorIP:    handlers.ClientIP(r),
	})

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d",
		bookingID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

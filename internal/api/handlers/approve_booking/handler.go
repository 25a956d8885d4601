package approve_booking

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
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNotPending       = "бронирование не ожидает подтверждения"
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

// Handle PATCH /api/v1/bookings/{bookingId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/approve - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	resp, err := h.service.Approve(r.Context(), bookingID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/approve - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrNotPending):
			h.logger.Warn("PATCH /bookings/{id}/approve - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("PATCH /bookings/{id}/approve - Failed to approve booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
		Action:     "booking.approve",
		EntityType: "booking",
		EntityID:   bookingID,
		ActorID:    identity.UserID,
		ActorIP:    handlers.ClientIP(r),
	})

	h.logger.Info("PATCH /bookings/{id}/approve - Booking approved successfully: booking_id=%d, approved_by=%d",
		bookingID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

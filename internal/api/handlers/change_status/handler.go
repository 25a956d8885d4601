package change_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/infra/storage/audit"
	"github.com/m04kA/SMC-DockService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "неизвестный статус бронирования"
	msgNotFound           = "бронирование не найдено"
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
// Обход state machine; маршрут закрыт административной авторизацией
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.ChangeStatus(r.Context(), bookingID, domain.BookingStatus(req.Status), req.Note, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status %q: booking_id=%d", req.Status, bookingID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to change status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
		Action:     "booking.change_status",
		EntityType: "booking",
		EntityID:   bookingID,
		Payload:    &req.Status,
		ActorID:    identity.UserID,
		ActorIP:    handlers.ClientIP(r),
	})

	h.logger.Info("PATCH /bookings/{id}/status - Status changed: booking_id=%d, status=%s, actor=%d",
		bookingID, req.Status, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

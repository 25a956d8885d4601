package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/infra/storage/audit"
	"github.com/m04kA/SMC-DockService/internal/service/slots"
)

const (
	msgInvalidSlotID     = "некорректный ID слота"
	msgNotFound          = "слот не найден"
	msgHasActiveBookings = "слот содержит активные бронирования"
)

type Handler struct {
	service SlotService
	audit   handlers.AuditLog
	logger  Logger
}

func NewHandler(service SlotService, auditLog handlers.AuditLog, logger Logger) *Handler {
	return &Handler{
		service: service,
		audit:   auditLog,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Delete(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrHasActiveBookings):
			h.logger.Warn("DELETE /slots/{id} - Slot has active bookings: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgHasActiveBookings)

		default:
			h.logger.Error("DELETE /slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if identity := middleware.IdentityFromContext(r.Context()); identity != nil {
		handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
			Action:     "slot.delete",
			EntityType: "time_slot",
			EntityID:   slotID,
			ActorID:    identity.UserID,
			ActorIP:    handlers.ClientIP(r),
		})
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

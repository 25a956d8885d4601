package update_slot

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
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "слот не найден"
	msgSlotConflict       = "временной диапазон пересекается с существующим слотом"
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

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request fields: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), slotID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PUT /slots/{id} - Validation failed: slot_id=%d: %v", slotID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrSlotConflict):
			h.logger.Warn("PUT /slots/{id} - Slot conflict: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("PUT /slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if identity := middleware.IdentityFromContext(r.Context()); identity != nil {
		handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
			Action:     "slot.update",
			EntityType: "time_slot",
			EntityID:   slotID,
			ActorID:    identity.UserID,
			ActorIP:    handlers.ClientIP(r),
		})
	}

	h.logger.Info("PUT /slots/{id} - Slot updated successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

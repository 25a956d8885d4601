package block_slot

import (
	"errors"
	"io"
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

// HandleBlock PATCH /api/v1/slots/{slotId}/block
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/block - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Тело опционально: блокировка без причины допустима
	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && err != io.EOF {
		h.logger.Warn("PATCH /slots/{id}/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Block(r.Context(), slotID, req.Reason); err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{id}/block - Validation failed: slot_id=%d: %v", slotID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/block - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /slots/{id}/block - Failed to block slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.writeAudit(r, "slot.block", slotID)

	h.logger.Info("PATCH /slots/{id}/block - Slot blocked successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

// HandleUnblock PATCH /api/v1/slots/{slotId}/unblock
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/unblock - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Unblock(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/unblock - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /slots/{id}/unblock - Failed to unblock slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.writeAudit(r, "slot.unblock", slotID)

	h.logger.Info("PATCH /slots/{id}/unblock - Slot unblocked successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) writeAudit(r *http.Request, action string, slotID int64) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		return
	}

	handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
		Action:     action,
		EntityType: "time_slot",
		EntityID:   slotID,
		ActorID:    identity.UserID,
		ActorIP:    handlers.ClientIP(r),
	})
}

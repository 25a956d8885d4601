package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/infra/storage/audit"
	"github.com/m04kA/SMC-DockService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /slots - Invalid request fields: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, slots.ErrSlotConflict):
			h.logger.Warn("POST /slots - Slot conflict: warehouse_id=%d", req.WarehouseID)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("POST /slots - Failed to create slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if identity := middleware.IdentityFromContext(r.Context()); identity != nil && len(resp.Slots) > 0 {
		handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
			Action:     "slot.create",
			EntityType: "time_slot",
			EntityID:   resp.Slots[0].ID,
			ActorID:    identity.UserID,
			ActorIP:    handlers.ClientIP(r),
		})
	}

	h.logger.Info("POST /slots - Created %d slot(s), skipped %d date(s)", len(resp.Slots), len(resp.SkippedDates))
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

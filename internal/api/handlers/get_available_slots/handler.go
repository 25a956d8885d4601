package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/service/slots"
	"github.com/m04kA/SMC-DockService/internal/service/slots/models"
)

const (
	msgInvalidWarehouseID = "некорректный ID склада"
	msgInvalidDate        = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgInvalidSlotType    = "некорректный тип слота"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Slots []models.AvailableSlotResponse `json:"slots"`
}

// Handle GET /api/v1/warehouses/{warehouseId}/available-slots?date=YYYY-MM-DD&slotType=loading
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	warehouseID, err := strconv.ParseInt(vars["warehouseId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /warehouses/{id}/available-slots - Invalid warehouse ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWarehouseID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /warehouses/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var slotType *domain.SlotType
	if raw := r.URL.Query().Get("slotType"); raw != "" {
		st := domain.SlotType(raw)
		if !domain.IsValidSlotType(st) {
			h.logger.Warn("GET /warehouses/{id}/available-slots - Invalid slot type: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidSlotType)
			return
		}
		slotType = &st
	}

	available, err := h.service.GetAvailable(r.Context(), warehouseID, date, slotType)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /warehouses/{id}/available-slots - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /warehouses/{id}/available-slots - Failed: warehouse_id=%d, error=%v", warehouseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AvailableSlotsResponse{Slots: available})
}

package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/service/slots/models"
)

type SlotService interface {
	GetAvailable(ctx context.Context, warehouseID int64, date time.Time, slotType *domain.SlotType) ([]models.AvailableSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/service/slots/models"
	"github.com/m04kA/SMC-DockService/pkg/types"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	WarehouseID      int64   `json:"warehouseId"`
	ZoneID           *int64  `json:"zoneId,omitempty"`
	SlotDate         string  `json:"slotDate"`  // YYYY-MM-DD
	TimeStart        string  `json:"timeStart"` // HH:MM
	TimeEnd          string  `json:"timeEnd"`   // HH:MM
	SlotType         string  `json:"slotType"`
	Capacity         int     `json:"capacity"`
	RecurringPattern *string `json:"recurringPattern,omitempty"`
	RecurringUntil   *string `json:"recurringUntil,omitempty"` // YYYY-MM-DD
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest() (*models.CreateSlotRequest, error) {
	slotDate, err := time.Parse(domain.DateFormat, r.SlotDate)
	if err != nil {
		return nil, fmt.Errorf("invalid slotDate: %v", err)
	}

	pattern := domain.RecurringNone
	if r.RecurringPattern != nil {
		pattern = domain.RecurringPattern(*r.RecurringPattern)
	}

	var recurringUntil *time.Time
	if r.RecurringUntil != nil {
		until, err := time.Parse(domain.DateFormat, *r.RecurringUntil)
		if err != nil {
			return nil, fmt.Errorf("invalid recurringUntil: %v", err)
		}
		recurringUntil = &until
	}

	return &models.CreateSlotRequest{
		WarehouseID:      r.WarehouseID,
		ZoneID:           r.ZoneID,
		SlotDate:         slotDate,
		TimeStart:        types.TimeString(r.TimeStart),
		TimeEnd:          types.TimeString(r.TimeEnd),
		SlotType:         domain.SlotType(r.SlotType),
		Capacity:         r.Capacity,
		RecurringPattern: pattern,
		RecurringUntil:   recurringUntil,
	}, nil
}

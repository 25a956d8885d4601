package update_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/service/slots/models"
	"github.com/m04kA/SMC-DockService/pkg/types"
)

// UpdateSlotRequest HTTP request model
type UpdateSlotRequest struct {
	ZoneID    *int64 `json:"zoneId,omitempty"`
	SlotDate  string `json:"slotDate"`  // YYYY-MM-DD
	TimeStart string `json:"timeStart"` // HH:MM
	TimeEnd   string `json:"timeEnd"`   // HH:MM
	SlotType  string `json:"slotType"`
	Capacity  int    `json:"capacity"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSlotRequest) ToServiceRequest() (*models.UpdateSlotRequest, error) {
	slotDate, err := time.Parse(domain.DateFormat, r.SlotDate)
	if err != nil {
		return nil, fmt.Errorf("invalid slotDate: %v", err)
	}

	return &models.UpdateSlotRequest{
		ZoneID:    r.ZoneID,
		SlotDate:  slotDate,
		TimeStart: types.TimeString(r.TimeStart),
		TimeEnd:   types.TimeString(r.TimeEnd),
		SlotType:  domain.SlotType(r.SlotType),
		Capacity:  r.Capacity,
	}, nil
}

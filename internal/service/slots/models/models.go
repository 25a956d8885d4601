package models

import (
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/pkg/types"
)

// CreateSlotRequest запрос на создание слота (или серии слотов)
type CreateSlotRequest struct {
	WarehouseID      int64
	ZoneID           *int64
	SlotDate         time.Time
	TimeStart        types.TimeString
	TimeEnd          types.TimeString
	SlotType         domain.SlotType
	Capacity         int
	RecurringPattern domain.RecurringPattern
	RecurringUntil   *time.Time
}

// UpdateSlotRequest запрос на обновление слота
type UpdateSlotRequest struct {
	ZoneID    *int64
	SlotDate  time.Time
	TimeStart types.TimeString
	TimeEnd   types.TimeString
	SlotType  domain.SlotType
	Capacity  int
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID               int64   `json:"id"`
	WarehouseID      int64   `json:"warehouseId"`
	ZoneID           *int64  `json:"zoneId,omitempty"`
	SlotDate         string  `json:"slotDate"`
	TimeStart        string  `json:"timeStart"`
	TimeEnd          string  `json:"timeEnd"`
	SlotType         string  `json:"slotType"`
	Capacity         int     `json:"capacity"`
	IsBlocked        bool    `json:"isBlocked"`
	BlockReason      *string `json:"blockReason,omitempty"`
	RecurringPattern string  `json:"recurringPattern"`
	RecurringBatchID *string `json:"recurringBatchId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateSlotResponse результат создания слота или серии
type CreateSlotResponse struct {
	Slots        []SlotResponse `json:"slots"`
	SkippedDates []string       `json:"skippedDates,omitempty"`
}

// AvailableSlotResponse слот с остатком вместимости
type AvailableSlotResponse struct {
	SlotResponse
	Occupancy      int `json:"occupancy"`
	AvailableSpots int `json:"availableSpots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:               s.ID,
		WarehouseID:      s.WarehouseID,
		ZoneID:           s.ZoneID,
		SlotDate:         s.SlotDate.Format(domain.DateFormat),
		TimeStart:        s.TimeStart.String(),
		TimeEnd:          s.TimeEnd.String(),
		SlotType:         string(s.SlotType),
		Capacity:         s.Capacity,
		IsBlocked:        s.IsBlocked,
		BlockReason:      s.BlockReason,
		RecurringPattern: string(s.RecurringPattern),
		RecurringBatchID: s.RecurringBatchID,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// FromDomainAvailability конвертирует слот с занятостью в DTO
func FromDomainAvailability(a *domain.SlotAvailability) AvailableSlotResponse {
	return AvailableSlotResponse{
		SlotResponse:   FromDomainSlot(&a.Slot),
		Occupancy:      a.Occupancy,
		AvailableSpots: a.AvailableSpots,
	}
}

package domain

import (
	"time"

	"github.com/m04kA/SMC-DockService/pkg/types"
)

// SlotType represents the kind of dock operation a slot serves
type SlotType string

const (
	SlotTypeLoading   SlotType = "loading"
	SlotTypeUnloading SlotType = "unloading"
	SlotTypeUniversal SlotType = "universal"
)

// RecurringPattern represents the cadence of a recurring slot series
type RecurringPattern string

const (
	RecurringNone    RecurringPattern = "none"
	RecurringDaily   RecurringPattern = "daily"
	RecurringWeekly  RecurringPattern = "weekly"
	RecurringMonthly RecurringPattern = "monthly"
)

// TimeSlot represents a bookable time window at a warehouse dock
type TimeSlot struct {
	ID               int64
	WarehouseID      int64
	ZoneID           *int64
	SlotDate         time.Time
	TimeStart        types.TimeString
	TimeEnd          types.TimeString
	SlotType         SlotType
	Capacity         int
	IsBlocked        bool
	BlockReason      *string
	RecurringPattern RecurringPattern
	RecurringBatchID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the slot's half-open range [TimeStart, TimeEnd)
// overlaps the given range on the same calendar day.
// Ranges that only touch at a boundary do not overlap.
func (s *TimeSlot) Overlaps(start, end types.TimeString) bool {
	return s.TimeStart.IsBefore(end) && s.TimeEnd.IsAfter(start)
}

// MatchesType reports whether the slot can serve the requested booking type.
// Universal slots match any requested type and a universal request matches any slot.
func (s *TimeSlot) MatchesType(requested SlotType) bool {
	if s.SlotType == SlotTypeUniversal || requested == SlotTypeUniversal {
		return true
	}
	return s.SlotType == requested
}

// EndsBefore reports whether the slot's window has fully passed at the given moment
func (s *TimeSlot) EndsBefore(now time.Time) bool {
	end, err := time.Parse(TimeFormat, s.TimeEnd.String())
	if err != nil {
		return false
	}
	slotEnd := time.Date(
		s.SlotDate.Year(), s.SlotDate.Month(), s.SlotDate.Day(),
		end.Hour(), end.Minute(), 0, 0, now.Location(),
	)
	return slotEnd.Before(now)
}

// IsRecurring returns true if the slot was created as part of a recurring series
func (s *TimeSlot) IsRecurring() bool {
	return s.RecurringPattern != RecurringNone && s.RecurringPattern != ""
}

// SlotAvailability is a slot together with its remaining capacity
type SlotAvailability struct {
	Slot           TimeSlot
	Occupancy      int
	AvailableSpots int
}

// IsFull returns true if the slot has no remaining capacity
func (a *SlotAvailability) IsFull() bool {
	return a.AvailableSpots <= 0
}

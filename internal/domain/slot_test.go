package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DockService/pkg/types"
)

func TestTimeSlot_Overlaps(t *testing.T) {
	slot := TimeSlot{TimeStart: "10:00", TimeEnd: "12:00"}

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		want  bool
	}{
		{name: "identical range", start: "10:00", end: "12:00", want: true},
		{name: "contained inside", start: "10:30", end: "11:30", want: true},
		{name: "covers the slot", start: "09:00", end: "13:00", want: true},
		{name: "overlaps start", start: "09:00", end: "10:30", want: true},
		{name: "overlaps end", start: "11:30", end: "13:00", want: true},
		{name: "back-to-back before", start: "08:00", end: "10:00", want: false},
		{name: "back-to-back after", start: "12:00", end: "14:00", want: false},
		{name: "fully before", start: "07:00", end: "08:00", want: false},
		{name: "fully after", start: "13:00", end: "14:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.Overlaps(tt.start, tt.end))
		})
	}
}

func TestTimeSlot_MatchesType(t *testing.T) {
	loading := TimeSlot{SlotType: SlotTypeLoading}
	universal := TimeSlot{SlotType: SlotTypeUniversal}

	assert.True(t, loading.MatchesType(SlotTypeLoading))
	assert.False(t, loading.MatchesType(SlotTypeUnloading))

	// Универсальность работает в обе стороны
	assert.True(t, universal.MatchesType(SlotTypeLoading))
	assert.True(t, universal.MatchesType(SlotTypeUnloading))
	assert.True(t, loading.MatchesType(SlotTypeUniversal))
}

func TestTimeSlot_EndsBefore(t *testing.T) {
	slot := TimeSlot{
		SlotDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		TimeEnd:  "12:00",
	}

	assert.True(t, slot.EndsBefore(time.Date(2026, 3, 10, 12, 1, 0, 0, time.UTC)))
	assert.True(t, slot.EndsBefore(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, slot.EndsBefore(time.Date(2026, 3, 10, 11, 59, 0, 0, time.UTC)))
	assert.False(t, slot.EndsBefore(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)))
	assert.False(t, slot.EndsBefore(time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)))
}

func TestTimeSlot_IsRecurring(t *testing.T) {
	assert.False(t, (&TimeSlot{RecurringPattern: RecurringNone}).IsRecurring())
	assert.False(t, (&TimeSlot{RecurringPattern: ""}).IsRecurring())
	assert.True(t, (&TimeSlot{RecurringPattern: RecurringDaily}).IsRecurring())
	assert.True(t, (&TimeSlot{RecurringPattern: RecurringWeekly}).IsRecurring())
}

func TestSlotAvailability_IsFull(t *testing.T) {
	assert.True(t, (&SlotAvailability{AvailableSpots: 0}).IsFull())
	assert.True(t, (&SlotAvailability{AvailableSpots: -1}).IsFull())
	assert.False(t, (&SlotAvailability{AvailableSpots: 1}).IsFull())
}

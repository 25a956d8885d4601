package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_StatusGuards(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		booking     Booking
		canApprove  bool
		canCheckIn  bool
		canCheckOut bool
		canCancel   bool
		canUpdate   bool
		active      bool
	}{
		{
			name:       "pending",
			booking:    Booking{Status: StatusPending},
			canApprove: true,
			canCancel:  true,
			canUpdate:  true,
			active:     true,
		},
		{
			name:       "confirmed",
			booking:    Booking{Status: StatusConfirmed},
			canCheckIn: true,
			canCancel:  true,
			canUpdate:  true,
			active:     true,
		},
		{
			name:        "checked in",
			booking:     Booking{Status: StatusCheckedIn, CheckInTime: &now},
			canCheckOut: true,
			canCancel:   true,
			active:      true,
		},
		{
			name:      "checked out",
			booking:   Booking{Status: StatusCheckedOut, CheckInTime: &now, CheckOutTime: &now},
			canCancel: true,
			active:    true,
		},
		{
			name:    "completed",
			booking: Booking{Status: StatusCompleted},
			active:  true,
		},
		{
			name:    "cancelled",
			booking: Booking{Status: StatusCancelled},
			active:  false,
		},
		{
			name:      "delayed",
			booking:   Booking{Status: StatusDelayed},
			canCancel: true,
			canUpdate: true,
			active:    true,
		},
		{
			name:      "rescheduled",
			booking:   Booking{Status: StatusRescheduled},
			canCancel: true,
			canUpdate: true,
			active:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canApprove, tt.booking.CanBeApproved())
			assert.Equal(t, tt.canCheckIn, tt.booking.CanCheckIn())
			assert.Equal(t, tt.canCheckOut, tt.booking.CanCheckOut())
			assert.Equal(t, tt.canCancel, tt.booking.CanBeCancelled())
			assert.Equal(t, tt.canUpdate, tt.booking.CanBeUpdated())
			assert.Equal(t, tt.active, tt.booking.IsActive())
		})
	}
}

func TestBooking_CanCheckIn_AlreadyCheckedIn(t *testing.T) {
	now := time.Now()
	b := Booking{Status: StatusConfirmed, CheckInTime: &now}
	assert.False(t, b.CanCheckIn())
}

func TestBooking_IsTerminal(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCancelled}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusCheckedOut}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusPending}).IsTerminal())
}

func TestBooking_MatchesQR(t *testing.T) {
	b := Booking{QRCode: "abc123"}

	assert.True(t, b.MatchesQR("abc123"))
	assert.True(t, b.MatchesQR(""), "empty code skips QR verification")
	assert.False(t, b.MatchesQR("wrong"))
}

func TestPagination_Offset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, Pagination{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, Pagination{Page: 10, Limit: 10}.Offset())
}

func TestPagination_PageCount(t *testing.T) {
	p := Pagination{Page: 1, Limit: 20}

	assert.Equal(t, 0, p.PageCount(0))
	assert.Equal(t, 1, p.PageCount(1))
	assert.Equal(t, 1, p.PageCount(20))
	assert.Equal(t, 2, p.PageCount(21))
	assert.Equal(t, 5, p.PageCount(100))

	assert.Equal(t, 0, Pagination{Limit: 0}.PageCount(50))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("archived"))
	assert.False(t, IsValidStatus(""))
}

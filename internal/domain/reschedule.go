package domain

import (
	"time"

	"github.com/m04kA/SMC-DockService/pkg/types"
)

// DelayedBooking is a delayed booking together with the slot fields the
// rescheduler needs to pick a replacement
type DelayedBooking struct {
	Booking     Booking
	WarehouseID int64
	SlotDate    time.Time
	TimeEnd     types.TimeString
}

package domain

import "time"

// BookingStatus represents the status of a dock booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCheckedIn   BookingStatus = "checked_in"
	StatusCheckedOut  BookingStatus = "checked_out"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusDelayed     BookingStatus = "delayed"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Booking represents a company's reservation of one unit of a slot's capacity
type Booking struct {
	ID            int64
	BookingNumber string
	QRCode        string
	TimeSlotID    int64
	CompanyID     int64
	DriverID      *int64
	VehicleID     *int64
	BookingType   SlotType

	ReferenceNumber *string
	Notes           *string
	Status          BookingStatus

	CheckInTime  *time.Time
	CheckOutTime *time.Time

	ApprovedBy *int64
	ApprovedAt *time.Time

	CancelledAt        *time.Time
	CancellationReason *string

	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies a capacity unit.
// Only cancellation releases the slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeApproved returns true if the booking is waiting for approval
func (b *Booking) CanBeApproved() bool {
	return b.Status == StatusPending
}

// CanCheckIn returns true if the booking is confirmed and not yet checked in
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusConfirmed && b.CheckInTime == nil
}

// CanCheckOut returns true if the booking is checked in and not yet checked out
func (b *Booking) CanCheckOut() bool {
	return b.Status == StatusCheckedIn && b.CheckOutTime == nil
}

// CanBeCancelled returns true if the booking has not reached a terminal state
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// CanBeUpdated returns true if the booking's mutable fields may still change
func (b *Booking) CanBeUpdated() bool {
	switch b.Status {
	case StatusPending, StatusConfirmed, StatusDelayed, StatusRescheduled:
		return true
	default:
		return false
	}
}

// MatchesQR reports whether the given code matches the stored QR token.
// An empty given code passes: QR verification is optional at the gate.
func (b *Booking) MatchesQR(code string) bool {
	return code == "" || code == b.QRCode
}

// BookingsFilter describes the filters of the booking list operation.
// Warehouse, date and free-text filters reach booking rows through the slot join.
type BookingsFilter struct {
	Status      *BookingStatus
	CompanyID   *int64
	WarehouseID *int64
	DriverID    *int64
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      *string
}

// Pagination describes an offset-based page request
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the row offset of the page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageCount returns the number of pages for total rows: ceil(total/limit)
func (p Pagination) PageCount(total int) int {
	if p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

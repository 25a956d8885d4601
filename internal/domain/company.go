package domain

import "time"

// Company represents a transport company booking dock slots
type Company struct {
	ID               int64
	Name             string
	RequiresApproval bool
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InitialBookingStatus returns the status a fresh booking of this company gets
func (c *Company) InitialBookingStatus() BookingStatus {
	if c.RequiresApproval {
		return StatusPending
	}
	return StatusConfirmed
}

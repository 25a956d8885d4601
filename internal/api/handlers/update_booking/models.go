package update_booking

import (
	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model. nil-поле означает "не менять".
type UpdateBookingRequest struct {
	TimeSlotID      *int64  `json:"timeSlotId,omitempty"`
	DriverID        *int64  `json:"driverId,omitempty"`
	VehicleID       *int64  `json:"vehicleId,omitempty"`
	BookingType     *string `json:"bookingType,omitempty"`
	ReferenceNumber *string `json:"referenceNumber,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() *models.UpdateBookingRequest {
	var bookingType *domain.SlotType
	if r.BookingType != nil {
		bt := domain.SlotType(*r.BookingType)
		bookingType = &bt
	}

	return &models.UpdateBookingRequest{
		TimeSlotID:      r.TimeSlotID,
		DriverID:        r.DriverID,
		VehicleID:       r.VehicleID,
		BookingType:     bookingType,
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
	}
}

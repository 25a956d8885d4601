package create_booking

import (
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	createBooking "github.com/m04kA/SMC-DockService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TimeSlotID      int64   `json:"timeSlotId"`
	CompanyID       int64   `json:"companyId"`
	DriverID        *int64  `json:"driverId,omitempty"`
	VehicleID       *int64  `json:"vehicleId,omitempty"`
	BookingType     string  `json:"bookingType"`
	ReferenceNumber *string `json:"referenceNumber,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateBookingRequest) ToUseCaseRequest(createdBy int64) *createBooking.Request {
	return &createBooking.Request{
		TimeSlotID:      r.TimeSlotID,
		CompanyID:       r.CompanyID,
		DriverID:        r.DriverID,
		VehicleID:       r.VehicleID,
		BookingType:     domain.SlotType(r.BookingType),
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
		CreatedBy:       createdBy,
	}
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID               int64     `json:"id"`
	BookingNumber    string    `json:"bookingNumber"`
	QRCode           string    `json:"qrCode"`
	TimeSlotID       int64     `json:"timeSlotId"`
	CompanyID        int64     `json:"companyId"`
	DriverID         *int64    `json:"driverId,omitempty"`
	VehicleID        *int64    `json:"vehicleId,omitempty"`
	BookingType      string    `json:"bookingType"`
	Status           string    `json:"status"`
	RequiresApproval bool      `json:"requiresApproval"`
	ReferenceNumber  *string   `json:"referenceNumber,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedBy        int64     `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:               resp.ID,
		BookingNumber:    resp.BookingNumber,
		QRCode:           resp.QRCode,
		TimeSlotID:       resp.TimeSlotID,
		CompanyID:        resp.CompanyID,
		DriverID:         resp.DriverID,
		VehicleID:        resp.VehicleID,
		BookingType:      resp.BookingType,
		Status:           resp.Status,
		RequiresApproval: resp.RequiresApproval,
		ReferenceNumber:  resp.ReferenceNumber,
		Notes:            resp.Notes,
		CreatedBy:        resp.CreatedBy,
		CreatedAt:        resp.CreatedAt,
		UpdatedAt:        resp.UpdatedAt,
	}
}

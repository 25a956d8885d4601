package models

import (
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
)

// ListBookingsRequest параметры списка бронирований:
// фильтры + пагинация
type ListBookingsRequest struct {
	Status      *domain.BookingStatus
	CompanyID   *int64
	WarehouseID *int64
	DriverID    *int64
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      *string

	Page  int
	Limit int
}

// UpdateBookingRequest запрос на частичное обновление бронирования.
// nil-поле означает "не менять".
type UpdateBookingRequest struct {
	TimeSlotID      *int64
	DriverID        *int64
	VehicleID       *int64
	BookingType     *domain.SlotType
	ReferenceNumber *string
	Notes           *string
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	BookingNumber   string  `json:"bookingNumber"`
	QRCode          string  `json:"qrCode"`
	TimeSlotID      int64   `json:"timeSlotId"`
	CompanyID       int64   `json:"companyId"`
	DriverID        *int64  `json:"driverId,omitempty"`
	VehicleID       *int64  `json:"vehicleId,omitempty"`
	BookingType     string  `json:"bookingType"`
	ReferenceNumber *string `json:"referenceNumber,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status"`

	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`

	ApprovedBy *int64     `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`

	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaginationResponse блок пагинации списочного ответа
type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// BookingListResponse страница бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse  `json:"bookings"`
	Pagination PaginationResponse `json:"pagination"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		QRCode:             b.QRCode,
		TimeSlotID:         b.TimeSlotID,
		CompanyID:          b.CompanyID,
		DriverID:           b.DriverID,
		VehicleID:          b.VehicleID,
		BookingType:        string(b.BookingType),
		ReferenceNumber:    b.ReferenceNumber,
		Notes:              b.Notes,
		Status:             string(b.Status),
		CheckInTime:        b.CheckInTime,
		CheckOutTime:       b.CheckOutTime,
		ApprovedBy:         b.ApprovedBy,
		ApprovedAt:         b.ApprovedAt,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		CreatedBy:          b.CreatedBy,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

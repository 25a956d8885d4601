package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-DockService/internal/domain"
)

// validateRequest валидирует запрос на создание бронирования
func validateRequest(req *Request) error {
	if req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotId must be positive", ErrInvalidInput)
	}

	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyId must be positive", ErrInvalidInput)
	}

	if req.CreatedBy <= 0 {
		return fmt.Errorf("%w: createdBy must be positive", ErrInvalidInput)
	}

	if !domain.IsValidSlotType(req.BookingType) {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	if req.ReferenceNumber != nil && len(*req.ReferenceNumber) > domain.MaxReferenceNumberLength {
		return fmt.Errorf("%w: referenceNumber is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/service/slots/models"
	"github.com/m04kA/SMC-DockService/pkg/types"
)

// validateCreateRequest валидирует запрос на создание слота
func validateCreateRequest(req *models.CreateSlotRequest) error {
	if req.WarehouseID <= 0 {
		return fmt.Errorf("%w: warehouseID must be positive", ErrInvalidInput)
	}

	if req.SlotDate.IsZero() {
		return fmt.Errorf("%w: slotDate is required", ErrInvalidInput)
	}

	if err := validateTimeRange(req.TimeStart, req.TimeEnd); err != nil {
		return err
	}

	if err := validateCapacity(req.Capacity); err != nil {
		return err
	}

	if !domain.IsValidSlotType(req.SlotType) {
		return fmt.Errorf("%w: unknown slot type %q", ErrInvalidInput, req.SlotType)
	}

	if !domain.IsValidRecurringPattern(req.RecurringPattern) {
		return fmt.Errorf("%w: unknown recurring pattern %q", ErrInvalidInput, req.RecurringPattern)
	}

	// Для повторяющихся серий обязательна дата окончания
	if req.RecurringPattern != domain.RecurringNone {
		if req.RecurringUntil == nil {
			return fmt.Errorf("%w: recurringUntil is required for recurring slots", ErrInvalidInput)
		}
		if !req.RecurringUntil.After(req.SlotDate) {
			return fmt.Errorf("%w: recurringUntil must be after slotDate", ErrInvalidInput)
		}
		maxUntil := req.SlotDate.AddDate(0, 0, domain.MaxRecurringDays)
		if req.RecurringUntil.After(maxUntil) {
			return fmt.Errorf("%w: recurring series may span at most %d days", ErrInvalidInput, domain.MaxRecurringDays)
		}
	}

	return nil
}

// validateUpdateRequest валидирует запрос на обновление слота
func validateUpdateRequest(req *models.UpdateSlotRequest) error {
	if req.SlotDate.IsZero() {
		return fmt.Errorf("%w: slotDate is required", ErrInvalidInput)
	}

	if err := validateTimeRange(req.TimeStart, req.TimeEnd); err != nil {
		return err
	}

	if err := validateCapacity(req.Capacity); err != nil {
		return err
	}

	if !domain.IsValidSlotType(req.SlotType) {
		return fmt.Errorf("%w: unknown slot type %q", ErrInvalidInput, req.SlotType)
	}

	return nil
}

func validateTimeRange(start, end types.TimeString) error {
	if start.IsZero() {
		return fmt.Errorf("%w: timeStart is required", ErrInvalidInput)
	}
	if end.IsZero() {
		return fmt.Errorf("%w: timeEnd is required", ErrInvalidInput)
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeStart: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeEnd: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: timeStart must be before timeEnd", ErrInvalidInput)
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < domain.MinSlotCapacity || capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	return nil
}

// seriesDates разворачивает повторяющийся паттерн в список дат серии.
// Первая дата - сам slotDate, далее шаг по паттерну до recurringUntil включительно.
func seriesDates(start time.Time, pattern domain.RecurringPattern, until *time.Time) []time.Time {
	if pattern == domain.RecurringNone || until == nil {
		return []time.Time{start}
	}

	dates := make([]time.Time, 0)
	for d := start; !d.After(*until); d = nextOccurrence(d, pattern) {
		dates = append(dates, d)
	}

	return dates
}

func nextOccurrence(d time.Time, pattern domain.RecurringPattern) time.Time {
	switch pattern {
	case domain.RecurringDaily:
		return d.AddDate(0, 0, 1)
	case domain.RecurringWeekly:
		return d.AddDate(0, 0, 7)
	case domain.RecurringMonthly:
		return d.AddDate(0, 1, 0)
	default:
		// Недостижимо после валидации; защищает цикл от зависания
		return d.AddDate(1, 0, 0)
	}
}

package domain

// Business validation constants
const (
	MinSlotCapacity = 1
	MaxSlotCapacity = 100

	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxBlockReasonLength        = 500
	MaxReferenceNumberLength    = 100

	// MaxRecurringDays максимальная глубина повторяющейся серии слотов
	MaxRecurringDays = 366
)

// Pagination defaults
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BookingNumberPrefix префикс человекочитаемого номера бронирования
const BookingNumberPrefix = "DCK"

// ValidStatuses список всех допустимых статусов бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCheckedOut,
	StatusCompleted,
	StatusCancelled,
	StatusDelayed,
	StatusRescheduled,
}

// ValidSlotTypes список всех допустимых типов слотов
var ValidSlotTypes = []SlotType{
	SlotTypeLoading,
	SlotTypeUnloading,
	SlotTypeUniversal,
}

// ValidRecurringPatterns список всех допустимых паттернов повторения
var ValidRecurringPatterns = []RecurringPattern{
	RecurringNone,
	RecurringDaily,
	RecurringWeekly,
	RecurringMonthly,
}

// IsValidStatus reports whether s is one of the defined booking statuses
func IsValidStatus(s BookingStatus) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// IsValidSlotType reports whether t is one of the defined slot types
func IsValidSlotType(t SlotType) bool {
	for _, valid := range ValidSlotTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// IsValidRecurringPattern reports whether p is one of the defined patterns
func IsValidRecurringPattern(p RecurringPattern) bool {
	for _, valid := range ValidRecurringPatterns {
		if p == valid {
			return true
		}
	}
	return false
}

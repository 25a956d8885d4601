package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots: slot not found")

	// ErrSlotConflict возвращается, когда временной диапазон слота
	// пересекается с существующим слотом того же склада и даты
	ErrSlotConflict = errors.New("slots: time range overlaps an existing slot")

	// ErrHasActiveBookings возвращается при попытке удалить слот
	// с неотмененными бронированиями
	ErrHasActiveBookings = errors.New("slots: slot has non-cancelled bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)

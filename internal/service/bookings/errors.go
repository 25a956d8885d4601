package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotPending возвращается при approve бронирования не в статусе pending
	ErrNotPending = errors.New("booking is not pending approval")

	// ErrNotConfirmed возвращается при check-in бронирования не в статусе confirmed
	ErrNotConfirmed = errors.New("booking is not confirmed")

	// ErrAlreadyCheckedIn возвращается при повторном check-in
	ErrAlreadyCheckedIn = errors.New("check-in already performed")

	// ErrNotCheckedIn возвращается при check-out без предшествующего check-in
	ErrNotCheckedIn = errors.New("booking is not checked in")

	// ErrAlreadyCheckedOut возвращается при повторном check-out
	ErrAlreadyCheckedOut = errors.New("check-out already performed")

	// ErrInvalidQRCode возвращается, когда предъявленный QR-код не совпадает
	ErrInvalidQRCode = errors.New("invalid QR code")

	// ErrAlreadyCancelled возвращается при отмене уже отмененного бронирования
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrAlreadyCompleted возвращается при отмене завершенного бронирования
	ErrAlreadyCompleted = errors.New("booking is already completed")

	// ErrCannotUpdate возвращается, когда статус бронирования
	// не допускает изменения полей
	ErrCannotUpdate = errors.New("booking cannot be updated in its current status")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrSlotNotFound возвращается, когда целевой слот не найден
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrSlotUnavailable возвращается, когда целевой слот заполнен или заблокирован
	ErrSlotUnavailable = errors.New("time slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)

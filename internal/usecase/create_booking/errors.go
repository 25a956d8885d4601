package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: time slot not found")

	// ErrSlotUnavailable возвращается, когда слот заблокирован или заполнен
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrSlotTypeMismatch возвращается, когда тип операции несовместим с типом слота
	ErrSlotTypeMismatch = errors.New("create_booking: booking type does not match slot type")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_booking: company not found")

	// ErrCompanyInactive возвращается, когда компания деактивирована
	ErrCompanyInactive = errors.New("create_booking: company is inactive")

	// ErrLicenseLimitExceeded возвращается, когда тарифный план компании
	// не позволяет создать еще одно бронирование
	ErrLicenseLimitExceeded = errors.New("create_booking: license booking limit exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

package notifyservice

import "errors"

var (
	// ErrInvalidResponse возвращается при некорректном ответе NotifyService
	ErrInvalidResponse = errors.New("notifyservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice: internal error")
)

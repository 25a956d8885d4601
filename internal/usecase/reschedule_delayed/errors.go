package reschedule_delayed

import "errors"

var (
	// ErrAlreadyRunning возвращается при попытке запустить перенос,
	// пока предыдущий запуск не завершился
	ErrAlreadyRunning = errors.New("reschedule_delayed: previous run is still in progress")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_delayed: internal error")
)

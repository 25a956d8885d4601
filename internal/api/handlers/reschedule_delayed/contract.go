package reschedule_delayed

import (
	"context"

	rescheduleDelayed "github.com/m04kA/SMC-DockService/internal/usecase/reschedule_delayed"
)

type RescheduleDelayedUseCase interface {
	Execute(ctx context.Context) (*rescheduleDelayed.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package change_status

import (
	"context"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/service/bookings/models"
)

type BookingService interface {
	ChangeStatus(ctx context.Context, id int64, newStatus domain.BookingStatus, note *string, actorID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

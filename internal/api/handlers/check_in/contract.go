package check_in

import (
	"context"

	"github.com/m04kA/SMC-DockService/internal/service/bookings/models"
)

type BookingService interface {
	CheckIn(ctx context.Context, id int64, qrCode string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

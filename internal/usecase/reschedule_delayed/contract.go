package reschedule_delayed

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListDelayedPastSlotEnd(ctx context.Context, now time.Time) ([]*domain.DelayedBooking, error)
	Reassign(ctx context.Context, id int64, newSlotID int64) error
	AppendNote(ctx context.Context, id int64, note string) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindNextAvailable(ctx context.Context, warehouseID int64, bookingType domain.SlotType, after time.Time, excludeSlotID int64, horizonDays int) (*domain.TimeSlot, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendBookingRescheduled(ctx context.Context, n *notifyservice.BookingRescheduledNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

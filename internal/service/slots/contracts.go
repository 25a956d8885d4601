package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	Update(ctx context.Context, slot *domain.TimeSlot) error
	SetBlocked(ctx context.Context, id int64, blocked bool, reason *string) error
	Delete(ctx context.Context, id int64) error
	CountOverlapping(ctx context.Context, warehouseID int64, date time.Time, timeStart, timeEnd string, excludeSlotID *int64) (int, error)
	GetAvailable(ctx context.Context, warehouseID int64, date time.Time, slotType *domain.SlotType) ([]*domain.SlotAvailability, error)
}

// BookingRepository интерфейс репозитория бронирований
// (сервису слотов нужна только занятость)
type BookingRepository interface {
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter, page domain.Pagination) ([]*domain.Booking, int, error)
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
	UpdateFields(ctx context.Context, b *domain.Booking) error
	Approve(ctx context.Context, id int64, approvedBy int64) error
	SetCheckIn(ctx context.Context, id int64, at time.Time) error
	SetCheckOut(ctx context.Context, id int64, at time.Time) error
	Cancel(ctx context.Context, id int64, reason *string) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	AppendNote(ctx context.Context, id int64, note string) error
}

// SlotRepository интерфейс репозитория слотов
// (нужен для проверки доступности при смене слота бронирования)
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

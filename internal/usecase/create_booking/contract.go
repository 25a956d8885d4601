package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/internal/integrations/licenseservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}

// LicenseServiceClient интерфейс клиента для LicenseService
type LicenseServiceClient interface {
	GetAllowanceWithGracefulDegradation(ctx context.Context, companyID int64) (*licenseservice.Allowance, error)
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

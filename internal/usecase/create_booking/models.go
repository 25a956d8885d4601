package create_booking

import (
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	TimeSlotID      int64           // ID слота дока
	CompanyID       int64           // ID компании-перевозчика
	DriverID        *int64          // ID водителя (опционально)
	VehicleID       *int64          // ID транспортного средства (опционально)
	BookingType     domain.SlotType // Тип операции: loading / unloading / universal
	ReferenceNumber *string         // Номер заказа или накладной (опционально)
	Notes           *string         // Дополнительные заметки (опционально)
	CreatedBy       int64           // ID пользователя, создающего бронирование
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64  // ID созданного бронирования
	BookingNumber string // Человекочитаемый номер
	QRCode        string // Токен для check-in/check-out
	TimeSlotID    int64  // ID слота
	CompanyID     int64  // ID компании
	DriverID      *int64 // ID водителя
	VehicleID     *int64 // ID транспортного средства
	BookingType   string // Тип операции
	Status        string // Начальный статус: pending или confirmed

	// Требуется ли подтверждение диспетчером (политика компании)
	RequiresApproval bool

	ReferenceNumber *string // Номер заказа
	Notes           *string // Заметки

	CreatedBy int64     // Автор бронирования
	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

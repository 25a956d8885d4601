package reschedule_delayed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-DockService/internal/domain"
	slotRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-DockService/internal/integrations/notifyservice"
)

// UseCase use case переноса отложенных бронирований.
// Запускается планировщиком по таймеру и вручную через API.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	horizonDays int

	// mu не допускает параллельных запусков: таймер и ручной вызов
	// могут совпасть
	mu sync.Mutex
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		horizonDays:  horizonDays,
	}
}

// Execute переносит бронирования в статусе delayed, чей слот уже
// закончился, на ближайший подходящий слот того же склада.
// Каждое бронирование переносится в собственной сериализуемой
// транзакции: сбой одного не откатывает остальные, а прерывание
// между итерациями не оставляет частичного состояния.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	if !uc.mu.TryLock() {
		uc.logger.Warn("RescheduleDelayed: previous run is still in progress, skipping")
		return nil, ErrAlreadyRunning
	}
	defer uc.mu.Unlock()

	now := uc.timeProvider.Now()

	delayed, err := uc.bookingRepo.ListDelayedPastSlotEnd(ctx, now)
	if err != nil {
		uc.logger.Error("RescheduleDelayed: failed to list delayed bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list delayed bookings: %v", ErrInternal, err)
	}

	resp := &Response{ProcessedCount: len(delayed)}

	if len(delayed) == 0 {
		return resp, nil
	}

	uc.logger.Info("RescheduleDelayed: found %d delayed booking(s) past slot end", len(delayed))

	for _, d := range delayed {
		if ctx.Err() != nil {
			uc.logger.Warn("RescheduleDelayed: run interrupted: %v", ctx.Err())
			break
		}

		newSlot, err := uc.rescheduleOne(ctx, d, now)
		switch {
		case err == nil:
			resp.RescheduledCount++
			uc.notifyRescheduled(ctx, d, newSlot)
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			// Нет подходящего слота в горизонте поиска - бронирование
			// остается delayed до следующего запуска
			resp.SkippedCount++
			uc.logger.Warn("RescheduleDelayed: no available slot for booking id=%d (warehouse=%d)",
				d.Booking.ID, d.WarehouseID)
		default:
			resp.FailedCount++
			uc.logger.Error("RescheduleDelayed: failed to reschedule booking id=%d: %v", d.Booking.ID, err)
		}
	}

	uc.logger.Info("RescheduleDelayed: processed=%d rescheduled=%d skipped=%d failed=%d",
		resp.ProcessedCount, resp.RescheduledCount, resp.SkippedCount, resp.FailedCount)
	return resp, nil
}

// rescheduleOne переносит одно бронирование на ближайший доступный слот.
// Поиск ведется строго после текущего момента и без текущего слота
// бронирования: уже закончившийся слот не может быть целью переноса.
func (uc *UseCase) rescheduleOne(ctx context.Context, d *domain.DelayedBooking, now time.Time) (*domain.TimeSlot, error) {
	var newSlot *domain.TimeSlot

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.FindNextAvailable(txCtx, d.WarehouseID, d.Booking.BookingType, now, d.Booking.TimeSlotID, uc.horizonDays)
		if err != nil {
			return err
		}

		if err := uc.bookingRepo.Reassign(txCtx, d.Booking.ID, slot.ID); err != nil {
			return err
		}

		note := fmt.Sprintf("[%s] rescheduled from slot %d to slot %d (%s %s-%s)",
			now.Format("2006-01-02 15:04:05"), d.Booking.TimeSlotID, slot.ID,
			slot.SlotDate.Format(domain.DateFormat), slot.TimeStart, slot.TimeEnd)
		if err := uc.bookingRepo.AppendNote(txCtx, d.Booking.ID, note); err != nil {
			return err
		}

		newSlot = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleDelayed: booking id=%d moved to slot id=%d (%s %s-%s)",
		d.Booking.ID, newSlot.ID, newSlot.SlotDate.Format(domain.DateFormat),
		newSlot.TimeStart, newSlot.TimeEnd)
	return newSlot, nil
}

// notifyRescheduled отправляет уведомление о переносе.
// Ошибка доставки не влияет на результат переноса.
func (uc *UseCase) notifyRescheduled(ctx context.Context, d *domain.DelayedBooking, newSlot *domain.TimeSlot) {
	n := &notifyservice.BookingRescheduledNotification{
		BookingID:     d.Booking.ID,
		BookingNumber: d.Booking.BookingNumber,
		CompanyID:     d.Booking.CompanyID,
		DriverID:      d.Booking.DriverID,
		OldSlotID:     d.Booking.TimeSlotID,
		NewSlotID:     newSlot.ID,
		NewSlotDate:   newSlot.SlotDate.Format(domain.DateFormat),
		NewTimeStart:  newSlot.TimeStart.String(),
		NewTimeEnd:    newSlot.TimeEnd.String(),
	}

	if err := uc.notifyClient.SendBookingRescheduled(ctx, n); err != nil {
		uc.logger.Warn("RescheduleDelayed: failed to notify about booking id=%d: %v", d.Booking.ID, err)
	}
}

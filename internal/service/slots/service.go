package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DockService/internal/domain"
	slotRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-DockService/internal/service/slots/models"
	"github.com/m04kA/SMC-DockService/pkg/ptr"
)

// Service сервис для работы со слотами доков
type Service struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает слот или серию слотов по повторяющемуся паттерну.
// Проверка пересечений и вставка выполняются в одной сериализуемой
// транзакции - между проверкой и вставкой не может вклиниться
// конкурентное создание пересекающегося слота.
//
// Для серии: конфликт базовой даты отклоняет запрос целиком,
// конфликтующие последующие даты пропускаются и возвращаются
// в SkippedDates.
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.CreateSlotResponse, error) {
	s.logger.Info("CreateSlot: warehouse=%d, date=%s, %s-%s, type=%s, capacity=%d, pattern=%s",
		req.WarehouseID, req.SlotDate.Format(domain.DateFormat), req.TimeStart, req.TimeEnd,
		req.SlotType, req.Capacity, req.RecurringPattern)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	dates := seriesDates(req.SlotDate, req.RecurringPattern, req.RecurringUntil)

	var batchID *string
	if len(dates) > 1 {
		batchID = ptr.Ptr(uuid.NewString())
	}

	resp := &models.CreateSlotResponse{
		Slots:        make([]models.SlotResponse, 0, len(dates)),
		SkippedDates: make([]string, 0),
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for i, date := range dates {
			overlapping, err := s.slotRepo.CountOverlapping(
				txCtx, req.WarehouseID, date, req.TimeStart.String(), req.TimeEnd.String(), nil,
			)
			if err != nil {
				s.logger.Error("CreateSlot: conflict check failed for %s: %v", date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
			}

			if overlapping > 0 {
				// Конфликт базовой даты - ошибка всего запроса,
				// конфликт очередной даты серии - пропуск
				if i == 0 {
					s.logger.Warn("CreateSlot: time range conflicts with %d slot(s) on %s",
						overlapping, date.Format(domain.DateFormat))
					return ErrSlotConflict
				}
				resp.SkippedDates = append(resp.SkippedDates, date.Format(domain.DateFormat))
				continue
			}

			slot := &domain.TimeSlot{
				WarehouseID:      req.WarehouseID,
				ZoneID:           req.ZoneID,
				SlotDate:         date,
				TimeStart:        req.TimeStart,
				TimeEnd:          req.TimeEnd,
				SlotType:         req.SlotType,
				Capacity:         req.Capacity,
				RecurringPattern: req.RecurringPattern,
				RecurringBatchID: batchID,
			}

			created, err := s.slotRepo.Create(txCtx, slot)
			if err != nil {
				s.logger.Error("CreateSlot: insert failed for %s: %v", date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: insert failed: %v", ErrInternal, err)
			}

			resp.Slots = append(resp.Slots, models.FromDomainSlot(created))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateSlot: created %d slot(s), skipped %d date(s)",
		len(resp.Slots), len(resp.SkippedDates))
	return resp, nil
}

// Update обновляет слот с повторной проверкой пересечений,
// исключая сам слот из проверки
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: id=%d, date=%s, %s-%s", id, req.SlotDate.Format(domain.DateFormat), req.TimeStart, req.TimeEnd)

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("UpdateSlot: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.TimeSlot

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: fetch slot: %v", ErrInternal, err)
		}

		overlapping, err := s.slotRepo.CountOverlapping(
			txCtx, slot.WarehouseID, req.SlotDate, req.TimeStart.String(), req.TimeEnd.String(), &id,
		)
		if err != nil {
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if overlapping > 0 {
			s.logger.Warn("UpdateSlot: id=%d conflicts with %d slot(s)", id, overlapping)
			return ErrSlotConflict
		}

		slot.ZoneID = req.ZoneID
		slot.SlotDate = req.SlotDate
		slot.TimeStart = req.TimeStart
		slot.TimeEnd = req.TimeEnd
		slot.SlotType = req.SlotType
		slot.Capacity = req.Capacity

		if err := s.slotRepo.Update(txCtx, slot); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: update slot: %v", ErrInternal, err)
		}

		updated = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSlot: successfully updated slot id=%d", id)
	resp := models.FromDomainSlot(updated)
	return &resp, nil
}

// Delete удаляет слот. Отклоняется, пока на слот ссылается хотя бы одно
// неотмененное бронирование.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteSlot: id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.GetByID(txCtx, id); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: fetch slot: %v", ErrInternal, err)
		}

		active, err := s.bookingRepo.CountActiveBySlot(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: count active bookings: %v", ErrInternal, err)
		}
		if active > 0 {
			s.logger.Warn("DeleteSlot: id=%d has %d non-cancelled booking(s)", id, active)
			return ErrHasActiveBookings
		}

		if err := s.slotRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: delete slot: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("DeleteSlot: successfully deleted slot id=%d", id)
	return nil
}

// Block блокирует слот. Заблокированный слот исключается из выдачи
// доступности и новых бронирований независимо от вместимости.
func (s *Service) Block(ctx context.Context, id int64, reason *string) error {
	s.logger.Info("BlockSlot: id=%d", id)

	if reason != nil && len(*reason) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: block reason is too long", ErrInvalidInput)
	}

	if err := s.slotRepo.SetBlocked(ctx, id, true, reason); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("BlockSlot: slot id=%d not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("BlockSlot: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: set blocked: %v", ErrInternal, err)
	}

	s.logger.Info("BlockSlot: successfully blocked slot id=%d", id)
	return nil
}

// Unblock снимает блокировку слота
func (s *Service) Unblock(ctx context.Context, id int64) error {
	s.logger.Info("UnblockSlot: id=%d", id)

	if err := s.slotRepo.SetBlocked(ctx, id, false, nil); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("UnblockSlot: slot id=%d not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("UnblockSlot: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: set blocked: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockSlot: successfully unblocked slot id=%d", id)
	return nil
}

// GetAvailable возвращает доступные слоты склада на дату:
// незаблокированные, с остатком вместимости, совместимые по типу
func (s *Service) GetAvailable(
	ctx context.Context,
	warehouseID int64,
	date time.Time,
	slotType *domain.SlotType,
) ([]models.AvailableSlotResponse, error) {
	if warehouseID <= 0 {
		return nil, fmt.Errorf("%w: warehouseID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if slotType != nil && !domain.IsValidSlotType(*slotType) {
		return nil, fmt.Errorf("%w: unknown slot type %q", ErrInvalidInput, *slotType)
	}

	availabilities, err := s.slotRepo.GetAvailable(ctx, warehouseID, date, slotType)
	if err != nil {
		s.logger.Error("GetAvailableSlots: repository error for warehouse=%d: %v", warehouseID, err)
		return nil, fmt.Errorf("%w: fetch available slots: %v", ErrInternal, err)
	}

	resp := make([]models.AvailableSlotResponse, 0, len(availabilities))
	for _, a := range availabilities {
		resp = append(resp, models.FromDomainAvailability(a))
	}

	s.logger.Info("GetAvailableSlots: warehouse=%d date=%s -> %d slot(s)",
		warehouseID, date.Format(domain.DateFormat), len(resp))
	return resp, nil
}

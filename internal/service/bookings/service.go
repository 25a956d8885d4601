package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-DockService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: переходы статусов,
// чтение, списки и частичное обновление
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID возвращает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetBooking: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: fetch booking: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(b)
	return &resp, nil
}

// GetByQRCode возвращает бронирование по QR-коду
func (s *Service) GetByQRCode(ctx context.Context, qrCode string) (*models.BookingResponse, error) {
	if qrCode == "" {
		return nil, fmt.Errorf("%w: qrCode is required", ErrInvalidInput)
	}

	b, err := s.bookingRepo.GetByQRCode(ctx, qrCode)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetBookingByQR: repository error: %v", err)
		return nil, fmt.Errorf("%w: fetch booking: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(b)
	return &resp, nil
}

// List возвращает страницу бронирований по фильтрам
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if req.Status != nil && !domain.IsValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo must not be before dateFrom", ErrInvalidInput)
	}

	page := normalizePagination(req.Page, req.Limit)

	filter := domain.BookingsFilter{
		Status:      req.Status,
		CompanyID:   req.CompanyID,
		WarehouseID: req.WarehouseID,
		DriverID:    req.DriverID,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Search:      req.Search,
	}

	items, total, err := s.bookingRepo.ListWithFilter(ctx, filter, page)
	if err != nil {
		s.logger.Error("GetBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: list bookings: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(items)),
		Pagination: models.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
			Pages: page.PageCount(total),
		},
	}
	for _, b := range items {
		resp.Bookings = append(resp.Bookings, models.FromDomainBooking(b))
	}

	return resp, nil
}

// Update частично обновляет бронирование. Допускается только для
// статусов, открытых для изменения. Смена слота повторяет проверку
// доступности целевого слота в сериализуемой транзакции.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateBooking: id=%d", id)

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: fetch booking: %v", ErrInternal, err)
		}

		if !b.CanBeUpdated() {
			s.logger.Warn("UpdateBooking: id=%d has status %s", id, b.Status)
			return ErrCannotUpdate
		}

		if req.TimeSlotID != nil && *req.TimeSlotID != b.TimeSlotID {
			if err := s.checkSlotAvailable(txCtx, *req.TimeSlotID); err != nil {
				return err
			}
			b.TimeSlotID = *req.TimeSlotID
		}
		if req.DriverID != nil {
			b.DriverID = req.DriverID
		}
		if req.VehicleID != nil {
			b.VehicleID = req.VehicleID
		}
		if req.BookingType != nil {
			b.BookingType = *req.BookingType
		}
		if req.ReferenceNumber != nil {
			b.ReferenceNumber = req.ReferenceNumber
		}
		if req.Notes != nil {
			b.Notes = req.Notes
		}

		if err := s.bookingRepo.UpdateFields(txCtx, b); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: update booking: %v", ErrInternal, err)
		}

		updated = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateBooking: successfully updated booking id=%d", id)
	resp := models.FromDomainBooking(updated)
	return &resp, nil
}

// Approve подтверждает бронирование (pending -> confirmed)
func (s *Service) Approve(ctx context.Context, id int64, approvedBy int64) (*models.BookingResponse, error) {
	s.logger.Info("ApproveBooking: id=%d, approvedBy=%d", id, approvedBy)

	return s.transition(ctx, id, func(txCtx context.Context, b *domain.Booking) error {
		if !b.CanBeApproved() {
			s.logger.Warn("ApproveBooking: id=%d has status %s", id, b.Status)
			return ErrNotPending
		}
		return s.bookingRepo.Approve(txCtx, id, approvedBy)
	})
}

// CheckIn регистрирует прибытие водителя (confirmed -> checked_in).
// QR-код, если предъявлен, должен совпадать с кодом бронирования.
func (s *Service) CheckIn(ctx context.Context, id int64, qrCode string) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: id=%d", id)

	return s.transition(ctx, id, func(txCtx context.Context, b *domain.Booking) error {
		if !b.MatchesQR(qrCode) {
			s.logger.Warn("CheckIn: id=%d QR code mismatch", id)
			return ErrInvalidQRCode
		}
		if b.CheckInTime != nil {
			return ErrAlreadyCheckedIn
		}
		if !b.CanCheckIn() {
			s.logger.Warn("CheckIn: id=%d has status %s", id, b.Status)
			return ErrNotConfirmed
		}
		return s.bookingRepo.SetCheckIn(txCtx, id, s.timeProvider.Now())
	})
}

// CheckOut регистрирует убытие водителя (checked_in -> completed)
func (s *Service) CheckOut(ctx context.Context, id int64, qrCode string) (*models.BookingResponse, error) {
	s.logger.Info("CheckOut: id=%d", id)

	return s.transition(ctx, id, func(txCtx context.Context, b *domain.Booking) error {
		if !b.MatchesQR(qrCode) {
			s.logger.Warn("CheckOut: id=%d QR code mismatch", id)
			return ErrInvalidQRCode
		}
		if b.CheckOutTime != nil {
			return ErrAlreadyCheckedOut
		}
		if !b.CanCheckOut() {
			s.logger.Warn("CheckOut: id=%d has status %s", id, b.Status)
			return ErrNotCheckedIn
		}
		return s.bookingRepo.SetCheckOut(txCtx, id, s.timeProvider.Now())
	})
}

// Cancel отменяет бронирование из любого нетерминального статуса.
// Отмена отмененного или завершенного бронирования отклоняется.
func (s *Service) Cancel(ctx context.Context, id int64, reason *string) (*models.BookingResponse, error) {
	s.logger.Info("CancelBooking: id=%d", id)

	if reason != nil && len(*reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	return s.transition(ctx, id, func(txCtx context.Context, b *domain.Booking) error {
		switch {
		case b.Status == domain.StatusCancelled:
			return ErrAlreadyCancelled
		case b.Status == domain.StatusCompleted:
			return ErrAlreadyCompleted
		}
		return s.bookingRepo.Cancel(txCtx, id, reason)
	})
}

// ChangeStatus административно переводит бронирование в произвольный
// статус в обход state machine. Каждое использование фиксируется
// в заметках бронирования.
func (s *Service) ChangeStatus(ctx context.Context, id int64, newStatus domain.BookingStatus, note *string, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("ChangeStatus: id=%d, status=%s, actor=%d", id, newStatus, actorID)

	if !domain.IsValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	return s.transition(ctx, id, func(txCtx context.Context, b *domain.Booking) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			return err
		}

		entry := fmt.Sprintf("[%s] status %s -> %s by user %d",
			s.timeProvider.Now().Format("2006-01-02 15:04:05"), b.Status, newStatus, actorID)
		if note != nil && *note != "" {
			entry += ": " + *note
		}
		return s.bookingRepo.AppendNote(txCtx, id, entry)
	})
}

// transition выполняет переход статуса в транзакции: бронирование
// блокируется FOR UPDATE, проверка precondition и запись атомарны
func (s *Service) transition(
	ctx context.Context,
	id int64,
	fn func(txCtx context.Context, b *domain.Booking) error,
) (*models.BookingResponse, error) {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: fetch booking: %v", ErrInternal, err)
		}

		if err := fn(txCtx, b); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			if isDomainError(err) {
				return err
			}
			return fmt.Errorf("%w: apply transition: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Перечитываем вне транзакции, чтобы вернуть актуальные поля
	// (timestamps проставляются на стороне БД)
	return s.GetByID(ctx, id)
}

// checkSlotAvailable проверяет, что целевой слот существует,
// не заблокирован и имеет остаток вместимости. Вызывается внутри
// транзакции - слот блокируется FOR UPDATE.
func (s *Service) checkSlotAvailable(ctx context.Context, slotID int64) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("%w: fetch slot: %v", ErrInternal, err)
	}

	if slot.IsBlocked {
		s.logger.Warn("UpdateBooking: target slot id=%d is blocked", slotID)
		return ErrSlotUnavailable
	}

	occupancy, err := s.bookingRepo.CountActiveBySlot(ctx, slotID)
	if err != nil {
		return fmt.Errorf("%w: count active bookings: %v", ErrInternal, err)
	}
	if occupancy >= slot.Capacity {
		s.logger.Warn("UpdateBooking: target slot id=%d is full (%d/%d)", slotID, occupancy, slot.Capacity)
		return ErrSlotUnavailable
	}

	return nil
}

func validateUpdateRequest(req *models.UpdateBookingRequest) error {
	if req.TimeSlotID != nil && *req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotId must be positive", ErrInvalidInput)
	}
	if req.BookingType != nil && !domain.IsValidSlotType(*req.BookingType) {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, *req.BookingType)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}
	return nil
}

func normalizePagination(page, limit int) domain.Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return domain.Pagination{Page: page, Limit: limit}
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound, ErrNotPending, ErrNotConfirmed,
		ErrAlreadyCheckedIn, ErrNotCheckedIn, ErrAlreadyCheckedOut,
		ErrInvalidQRCode, ErrAlreadyCancelled, ErrAlreadyCompleted,
		ErrCannotUpdate, ErrInvalidStatus, ErrSlotNotFound, ErrSlotUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package create_booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DockService/internal/domain"
	companyRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/company"
	slotRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/timeslot"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	companyRepo   CompanyRepository
	licenseClient LicenseServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	companyRepo CompanyRepository,
	licenseClient LicenseServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		companyRepo:   companyRepo,
		licenseClient: licenseClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости слота и вставка выполняются в одной сериализуемой
// транзакции: при конкурентных запросах на последнее место ровно один
// получает бронирование, остальные - ErrSlotUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, company=%d, type=%s, createdBy=%d",
		req.TimeSlotID, req.CompanyID, req.BookingType, req.CreatedBy)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем компанию - от нее зависит начальный статус
	company, err := uc.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			uc.logger.Warn("CreateBooking: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateBooking: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if !company.IsActive {
		uc.logger.Warn("CreateBooking: company id=%d is inactive", req.CompanyID)
		return nil, ErrCompanyInactive
	}

	// 3. Проверяем лимит тарифного плана. При недоступности LicenseService
	// деградируем и пропускаем бронирование без проверки.
	if err := uc.checkLicense(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	var result *domain.Booking

	// 4. Проверка доступности слота и вставка - в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем слот с блокировкой (FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, req.TimeSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.TimeSlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.TimeSlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 4.2. Заблокированный слот недоступен независимо от вместимости
		if slot.IsBlocked {
			uc.logger.Warn("CreateBooking: slot id=%d is blocked", req.TimeSlotID)
			return ErrSlotUnavailable
		}

		// 4.3. Тип операции должен быть совместим с типом слота
		if !slot.MatchesType(req.BookingType) {
			uc.logger.Warn("CreateBooking: booking type %s does not match slot type %s",
				req.BookingType, slot.SlotType)
			return ErrSlotTypeMismatch
		}

		// 4.4. Инвариант вместимости: occupancy < capacity
		occupancy, err := uc.bookingRepo.CountActiveBySlot(txCtx, req.TimeSlotID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count occupancy for slot id=%d: %v", req.TimeSlotID, err)
			return fmt.Errorf("%w: failed to count occupancy: %v", ErrInternal, err)
		}

		if occupancy >= slot.Capacity {
			uc.logger.Warn("CreateBooking: slot id=%d is full (%d/%d)",
				req.TimeSlotID, occupancy, slot.Capacity)
			return ErrSlotUnavailable
		}

		uc.logger.Info("CreateBooking: slot id=%d available, %d/%d spots taken",
			req.TimeSlotID, occupancy, slot.Capacity)

		// 4.5. Генерируем номер и QR-код, статус зависит от политики компании
		now := uc.timeProvider.Now()
		bookingNumber := uc.generateBookingNumber(now)

		booking := &domain.Booking{
			BookingNumber:   bookingNumber,
			QRCode:          uc.generateQRCode(bookingNumber, now.UnixNano()),
			TimeSlotID:      req.TimeSlotID,
			CompanyID:       req.CompanyID,
			DriverID:        req.DriverID,
			VehicleID:       req.VehicleID,
			BookingType:     req.BookingType,
			ReferenceNumber: req.ReferenceNumber,
			Notes:           req.Notes,
			Status:          company.InitialBookingStatus(),
			CreatedBy:       req.CreatedBy,
		}

		// 4.6. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, number=%s, status=%s",
		result.ID, result.BookingNumber, result.Status)

	return &Response{
		ID:               result.ID,
		BookingNumber:    result.BookingNumber,
		QRCode:           result.QRCode,
		TimeSlotID:       result.TimeSlotID,
		CompanyID:        result.CompanyID,
		DriverID:         result.DriverID,
		VehicleID:        result.VehicleID,
		BookingType:      string(result.BookingType),
		Status:           string(result.Status),
		RequiresApproval: company.RequiresApproval,
		ReferenceNumber:  result.ReferenceNumber,
		Notes:            result.Notes,
		CreatedBy:        result.CreatedBy,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// checkLicense проверяет лимит бронирований компании
func (uc *UseCase) checkLicense(ctx context.Context, companyID int64) error {
	allowance, err := uc.licenseClient.GetAllowanceWithGracefulDegradation(ctx, companyID)
	if err != nil {
		// Без записи в LicenseService и при его недоступности
		// бронирование не блокируем
		uc.logger.Warn("CreateBooking: license check skipped for company id=%d: %v", companyID, err)
		return nil
	}

	if !allowance.HasCapacity() {
		uc.logger.Warn("CreateBooking: license limit reached for company id=%d (%d/%d)",
			companyID, allowance.BookingsUsed, allowance.BookingsLimit)
		return ErrLicenseLimitExceeded
	}

	return nil
}

// generateBookingNumber генерирует человекочитаемый номер бронирования:
// DCK-YYYYMMDD-XXXXXX
func (uc *UseCase) generateBookingNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", domain.BookingNumberPrefix, now.Format("20060102"), suffix)
}

// generateQRCode генерирует непрозрачный токен для check-in/check-out
func (uc *UseCase) generateQRCode(bookingNumber string, nanos int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", bookingNumber, nanos, uuid.NewString())))
	return hex.EncodeToString(sum[:])
}

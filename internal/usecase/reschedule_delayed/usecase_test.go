package reschedule_delayed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockService/internal/domain"
	slotRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-DockService/internal/integrations/notifyservice"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListDelayedPastSlotEnd(ctx context.Context, now time.Time) ([]*domain.DelayedBooking, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DelayedBooking), args.Error(1)
}

func (m *MockBookingRepository) Reassign(ctx context.Context, id int64, newSlotID int64) error {
	args := m.Called(ctx, id, newSlotID)
	return args.Error(0)
}

func (m *MockBookingRepository) AppendNote(ctx context.Context, id int64, note string) error {
	args := m.Called(ctx, id, note)
	return args.Error(0)
}

// MockSlotRepository is a mock implementation of SlotRepository
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) FindNextAvailable(ctx context.Context, warehouseID int64, bookingType domain.SlotType, after time.Time, excludeSlotID int64, horizonDays int) (*domain.TimeSlot, error) {
	args := m.Called(ctx, warehouseID, bookingType, after, excludeSlotID, horizonDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

// MockNotifyClient is a mock implementation of NotifyServiceClient
type MockNotifyClient struct {
	mock.Mock
}

func (m *MockNotifyClient) SendBookingRescheduled(ctx context.Context, n *notifyservice.BookingRescheduledNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// fakeTxManager runs the callback directly without a real transaction
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestUseCase(bRepo *MockBookingRepository, sRepo *MockSlotRepository, notify *MockNotifyClient) *UseCase {
	uc := NewUseCase(bRepo, sRepo, notify, fakeTxManager{}, 30, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func delayedBooking(id int64) *domain.DelayedBooking {
	return &domain.DelayedBooking{
		Booking: domain.Booking{
			ID:            id,
			BookingNumber: "DCK-20260309-AA11BB",
			TimeSlotID:    5,
			CompanyID:     3,
			BookingType:   domain.SlotTypeLoading,
			Status:        domain.StatusDelayed,
		},
		WarehouseID: 1,
		SlotDate:    time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		TimeEnd:     "12:00",
	}
}

func nextSlot() *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:          9,
		WarehouseID: 1,
		SlotDate:    time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		TimeStart:   "08:00",
		TimeEnd:     "10:00",
		SlotType:    domain.SlotTypeLoading,
		Capacity:    2,
	}
}

func TestUseCase_Execute_MovesDelayedBooking(t *testing.T) {
	bRepo := new(MockBookingRepository)
	sRepo := new(MockSlotRepository)
	notify := new(MockNotifyClient)

	bRepo.On("ListDelayedPastSlotEnd", mock.Anything, testNow).
		Return([]*domain.DelayedBooking{delayedBooking(42)}, nil)
	sRepo.On("FindNextAvailable", mock.Anything, int64(1), domain.SlotTypeLoading, testNow, int64(5), 30).
		Return(nextSlot(), nil)
	bRepo.On("Reassign", mock.Anything, int64(42), int64(9)).Return(nil)
	bRepo.On("AppendNote", mock.Anything, int64(42),
		"[2026-03-10 14:00:00] rescheduled from slot 5 to slot 9 (2026-03-11 08:00-10:00)").Return(nil)
	notify.On("SendBookingRescheduled", mock.Anything, mock.MatchedBy(func(n *notifyservice.BookingRescheduledNotification) bool {
		return n.BookingID == 42 && n.OldSlotID == 5 && n.NewSlotID == 9 && n.NewSlotDate == "2026-03-11"
	})).Return(nil)

	uc := newTestUseCase(bRepo, sRepo, notify)
	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, 1, resp.RescheduledCount)
	assert.Equal(t, 0, resp.SkippedCount)
	assert.Equal(t, 0, resp.FailedCount)
	bRepo.AssertExpectations(t)
	notify.AssertExpectations(t)
}

func TestUseCase_Execute_OwnEndedSlotIsNotATarget(t *testing.T) {
	bRepo := new(MockBookingRepository)
	sRepo := new(MockSlotRepository)
	notify := new(MockNotifyClient)

	// Слот бронирования закончился сегодня утром: поиск идет строго
	// после текущего момента и без слота самого бронирования, иначе
	// перенос вернул бы бронирование на тот же закончившийся слот
	d := delayedBooking(42)
	d.SlotDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	d.TimeEnd = "08:00"

	bRepo.On("ListDelayedPastSlotEnd", mock.Anything, testNow).
		Return([]*domain.DelayedBooking{d}, nil)
	sRepo.On("FindNextAvailable", mock.Anything, int64(1), domain.SlotTypeLoading, testNow, int64(5), 30).
		Return(nextSlot(), nil)
	bRepo.On("Reassign", mock.Anything, int64(42), int64(9)).Return(nil)
	bRepo.On("AppendNote", mock.Anything, int64(42), mock.Anything).Return(nil)
	notify.On("SendBookingRescheduled", mock.Anything, mock.Anything).Return(nil)

	uc := newTestUseCase(bRepo, sRepo, notify)
	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.RescheduledCount)
	sRepo.AssertExpectations(t)
}

func TestUseCase_Execute_SkipsWhenNoSlotAvailable(t *testing.T) {
	bRepo := new(MockBookingRepository)
	sRepo := new(MockSlotRepository)
	notify := new(MockNotifyClient)

	bRepo.On("ListDelayedPastSlotEnd", mock.Anything, testNow).
		Return([]*domain.DelayedBooking{delayedBooking(42)}, nil)
	sRepo.On("FindNextAvailable", mock.Anything, int64(1), domain.SlotTypeLoading, testNow, int64(5), 30).
		Return(nil, slotRepo.ErrSlotNotFound)

	uc := newTestUseCase(bRepo, sRepo, notify)
	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, 0, resp.RescheduledCount)
	assert.Equal(t, 1, resp.SkippedCount)
	bRepo.AssertNotCalled(t, "Reassign", mock.Anything, mock.Anything, mock.Anything)
	notify.AssertNotCalled(t, "SendBookingRescheduled", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_CountsFailures(t *testing.T) {
	bRepo := new(MockBookingRepository)
	sRepo := new(MockSlotRepository)
	notify := new(MockNotifyClient)

	first := delayedBooking(1)
	second := delayedBooking(2)

	bRepo.On("ListDelayedPastSlotEnd", mock.Anything, testNow).
		Return([]*domain.DelayedBooking{first, second}, nil)
	sRepo.On("FindNextAvailable", mock.Anything, int64(1), domain.SlotTypeLoading, testNow, int64(5), 30).
		Return(nextSlot(), nil)
	bRepo.On("Reassign", mock.Anything, int64(1), int64(9)).Return(errors.New("pq: deadlock detected"))
	bRepo.On("Reassign", mock.Anything, int64(2), int64(9)).Return(nil)
	bRepo.On("AppendNote", mock.Anything, int64(2), mock.Anything).Return(nil)
	notify.On("SendBookingRescheduled", mock.Anything, mock.Anything).Return(nil)

	uc := newTestUseCase(bRepo, sRepo, notify)
	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.ProcessedCount)
	assert.Equal(t, 1, resp.RescheduledCount)
	assert.Equal(t, 1, resp.FailedCount)
}

func TestUseCase_Execute_NotificationFailureDoesNotFailRun(t *testing.T) {
	bRepo := new(MockBookingRepository)
	sRepo := new(MockSlotRepository)
	notify := new(MockNotifyClient)

	bRepo.On("ListDelayedPastSlotEnd", mock.Anything, testNow).
		Return([]*domain.DelayedBooking{delayedBooking(42)}, nil)
	sRepo.On("FindNextAvailable", mock.Anything, int64(1), domain.SlotTypeLoading, testNow, int64(5), 30).
		Return(nextSlot(), nil)
	bRepo.On("Reassign", mock.Anything, int64(42), int64(9)).Return(nil)
	bRepo.On("AppendNote", mock.Anything, int64(42), mock.Anything).Return(nil)
	notify.On("SendBookingRescheduled", mock.Anything, mock.Anything).
		Return(notifyservice.ErrInternal)

	uc := newTestUseCase(bRepo, sRepo, notify)
	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.RescheduledCount)
}

func TestUseCase_Execute_EmptyRun(t *testing.T) {
	bRepo := new(MockBookingRepository)

	bRepo.On("ListDelayedPastSlotEnd", mock.Anything, testNow).
		Return([]*domain.DelayedBooking{}, nil)

	uc := newTestUseCase(bRepo, new(MockSlotRepository), new(MockNotifyClient))
	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.ProcessedCount)
}

func TestUseCase_Execute_ListError(t *testing.T) {
	bRepo := new(MockBookingRepository)
	bRepo.On("ListDelayedPastSlotEnd", mock.Anything, testNow).
		Return(nil, errors.New("pq: connection refused"))

	uc := newTestUseCase(bRepo, new(MockSlotRepository), new(MockNotifyClient))
	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_SingleRunner(t *testing.T) {
	bRepo := new(MockBookingRepository)
	sRepo := new(MockSlotRepository)
	notify := new(MockNotifyClient)

	started := make(chan struct{})
	release := make(chan struct{})

	bRepo.On("ListDelayedPastSlotEnd", mock.Anything, testNow).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]*domain.DelayedBooking{}, nil)

	uc := newTestUseCase(bRepo, sRepo, notify)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := uc.Execute(context.Background())
		assert.NoError(t, err)
	}()

	<-started

	// Пока первый запуск держит lock, второй отклоняется
	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	close(release)
	wg.Wait()
}

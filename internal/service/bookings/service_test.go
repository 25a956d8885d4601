package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-DockService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DockService/pkg/ptr"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Booking, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter, page domain.Pagination) ([]*domain.Booking, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingRepository) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	args := m.Called(ctx, slotID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateFields(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Approve(ctx context.Context, id int64, approvedBy int64) error {
	args := m.Called(ctx, id, approvedBy)
	return args.Error(0)
}

func (m *MockBookingRepository) SetCheckIn(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockBookingRepository) SetCheckOut(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64, reason *string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
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

func (m *MockSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

// fakeTxManager runs the callback directly without a real transaction
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedTimeProvider returns a fixed moment for deterministic assertions
type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC)

func newTestService(bRepo *MockBookingRepository, sRepo *MockSlotRepository) *Service {
	return NewService(bRepo, sRepo, fakeTxManager{}, fixedTimeProvider{now: testNow}, nopLogger{})
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            42,
		BookingNumber: "DCK-20260310-A1B2C3",
		QRCode:        "qr-token",
		TimeSlotID:    7,
		CompanyID:     3,
		BookingType:   domain.SlotTypeLoading,
		Status:        status,
		CreatedBy:     100,
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusPending), nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.GetByID(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "DCK-20260310-A1B2C3", resp.BookingNumber)
	})

	t.Run("not found", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, bookingRepo.ErrBookingNotFound)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.GetByID(context.Background(), 42)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_GetByQRCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByQRCode", mock.Anything, "qr-token").Return(testBooking(domain.StatusConfirmed), nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.GetByQRCode(context.Background(), "qr-token")

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
	})

	t.Run("empty code", func(t *testing.T) {
		svc := newTestService(new(MockBookingRepository), new(MockSlotRepository))
		_, err := svc.GetByQRCode(context.Background(), "")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByQRCode", mock.Anything, "missing").Return(nil, bookingRepo.ErrBookingNotFound)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.GetByQRCode(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_List(t *testing.T) {
	t.Run("pagination normalization", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("ListWithFilter", mock.Anything, mock.Anything, domain.Pagination{Page: 1, Limit: domain.DefaultPageLimit}).
			Return([]*domain.Booking{testBooking(domain.StatusPending)}, 41, nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Page: 0, Limit: 0})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Pagination.Page)
		assert.Equal(t, 20, resp.Pagination.Limit)
		assert.Equal(t, 41, resp.Pagination.Total)
		assert.Equal(t, 3, resp.Pagination.Pages)
	})

	t.Run("limit capped", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("ListWithFilter", mock.Anything, mock.Anything, domain.Pagination{Page: 2, Limit: domain.MaxPageLimit}).
			Return([]*domain.Booking{}, 0, nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Page: 2, Limit: 500})

		require.NoError(t, err)
		assert.Equal(t, 100, resp.Pagination.Limit)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := newTestService(new(MockBookingRepository), new(MockSlotRepository))
		bad := domain.BookingStatus("archived")
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: &bad})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted date range", func(t *testing.T) {
		svc := newTestService(new(MockBookingRepository), new(MockSlotRepository))
		from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{DateFrom: &from, DateTo: &to})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Approve(t *testing.T) {
	t.Run("pending is approved", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		pending := testBooking(domain.StatusPending)
		confirmed := testBooking(domain.StatusConfirmed)

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(pending, nil).Once()
		bRepo.On("Approve", mock.Anything, int64(42), int64(9)).Return(nil)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(confirmed, nil).Once()

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.Approve(context.Background(), 42, 9)

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		bRepo.AssertExpectations(t)
	})

	t.Run("not pending", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusConfirmed, domain.StatusCheckedIn, domain.StatusCompleted, domain.StatusCancelled,
		} {
			bRepo := new(MockBookingRepository)
			bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(status), nil)

			svc := newTestService(bRepo, new(MockSlotRepository))
			_, err := svc.Approve(context.Background(), 42, 9)

			assert.ErrorIs(t, err, ErrNotPending, "status %s", status)
			bRepo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("not found", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, bookingRepo.ErrBookingNotFound)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.Approve(context.Background(), 42, 9)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_CheckIn(t *testing.T) {
	t.Run("confirmed with matching QR", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		confirmed := testBooking(domain.StatusConfirmed)
		checkedIn := testBooking(domain.StatusCheckedIn)
		checkedIn.CheckInTime = &testNow

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(confirmed, nil).Once()
		bRepo.On("SetCheckIn", mock.Anything, int64(42), testNow).Return(nil)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(checkedIn, nil).Once()

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.CheckIn(context.Background(), 42, "qr-token")

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
		require.NotNil(t, resp.CheckInTime)
	})

	t.Run("empty QR skips verification", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusConfirmed), nil)
		bRepo.On("SetCheckIn", mock.Anything, int64(42), testNow).Return(nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.CheckIn(context.Background(), 42, "")

		require.NoError(t, err)
	})

	t.Run("wrong QR", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusConfirmed), nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.CheckIn(context.Background(), 42, "forged")

		assert.ErrorIs(t, err, ErrInvalidQRCode)
		bRepo.AssertNotCalled(t, "SetCheckIn", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already checked in", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		b := testBooking(domain.StatusCheckedIn)
		b.CheckInTime = &testNow
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.CheckIn(context.Background(), 42, "qr-token")

		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	})

	t.Run("not confirmed", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusPending), nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.CheckIn(context.Background(), 42, "qr-token")

		assert.ErrorIs(t, err, ErrNotConfirmed)
	})
}

func TestService_CheckOut(t *testing.T) {
	t.Run("checked in is checked out", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		b := testBooking(domain.StatusCheckedIn)
		b.CheckInTime = &testNow
		completed := testBooking(domain.StatusCompleted)
		completed.CheckInTime = &testNow
		completed.CheckOutTime = &testNow

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(b, nil).Once()
		bRepo.On("SetCheckOut", mock.Anything, int64(42), testNow).Return(nil)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(completed, nil).Once()

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.CheckOut(context.Background(), 42, "qr-token")

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	})

	t.Run("not checked in", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusConfirmed), nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.CheckOut(context.Background(), 42, "")

		assert.ErrorIs(t, err, ErrNotCheckedIn)
	})

	t.Run("already checked out", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		b := testBooking(domain.StatusCheckedOut)
		b.CheckInTime = &testNow
		b.CheckOutTime = &testNow
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.CheckOut(context.Background(), 42, "")

		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	})

	t.Run("wrong QR", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		b := testBooking(domain.StatusCheckedIn)
		b.CheckInTime = &testNow
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.CheckOut(context.Background(), 42, "forged")

		assert.ErrorIs(t, err, ErrInvalidQRCode)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("active booking is cancelled", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		reason := ptr.Ptr("truck broke down")
		cancelled := testBooking(domain.StatusCancelled)
		cancelled.CancellationReason = reason

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusConfirmed), nil).Once()
		bRepo.On("Cancel", mock.Anything, int64(42), reason).Return(nil)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(cancelled, nil).Once()

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.Cancel(context.Background(), 42, reason)

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("already cancelled", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusCancelled), nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.Cancel(context.Background(), 42, nil)

		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("already completed", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusCompleted), nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		_, err := svc.Cancel(context.Background(), 42, nil)

		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})

	t.Run("reason too long", func(t *testing.T) {
		long := make([]byte, domain.MaxCancellationReasonLength+1)
		for i := range long {
			long[i] = 'x'
		}

		svc := newTestService(new(MockBookingRepository), new(MockSlotRepository))
		_, err := svc.Cancel(context.Background(), 42, ptr.Ptr(string(long)))

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_ChangeStatus(t *testing.T) {
	t.Run("override writes audit note", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		b := testBooking(domain.StatusCheckedIn)
		delayed := testBooking(domain.StatusDelayed)

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(b, nil).Once()
		bRepo.On("UpdateStatus", mock.Anything, int64(42), domain.StatusDelayed).Return(nil)
		bRepo.On("AppendNote", mock.Anything, int64(42),
			"[2026-03-10 11:30:00] status checked_in -> delayed by user 9: gate congestion").Return(nil)
		bRepo.On("GetByID", mock.Anything, int64(42)).Return(delayed, nil).Once()

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.ChangeStatus(context.Background(), 42, domain.StatusDelayed, ptr.Ptr("gate congestion"), 9)

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusDelayed), resp.Status)
		bRepo.AssertExpectations(t)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := newTestService(new(MockBookingRepository), new(MockSlotRepository))
		_, err := svc.ChangeStatus(context.Background(), 42, "archived", nil, 9)

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("partial update without slot change", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		b := testBooking(domain.StatusPending)

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
		bRepo.On("UpdateFields", mock.Anything, mock.MatchedBy(func(u *domain.Booking) bool {
			return u.ID == 42 && u.Notes != nil && *u.Notes == "pallets on the left"
		})).Return(nil)

		svc := newTestService(bRepo, new(MockSlotRepository))
		resp, err := svc.Update(context.Background(), 42, &models.UpdateBookingRequest{
			Notes: ptr.Ptr("pallets on the left"),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
	})

	t.Run("terminal status rejects update", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusCheckedIn, domain.StatusCheckedOut, domain.StatusCompleted, domain.StatusCancelled,
		} {
			bRepo := new(MockBookingRepository)
			bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(status), nil)

			svc := newTestService(bRepo, new(MockSlotRepository))
			_, err := svc.Update(context.Background(), 42, &models.UpdateBookingRequest{Notes: ptr.Ptr("x")})

			assert.ErrorIs(t, err, ErrCannotUpdate, "status %s", status)
		}
	})

	t.Run("slot change checks target availability", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		sRepo := new(MockSlotRepository)

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusConfirmed), nil)
		sRepo.On("GetByID", mock.Anything, int64(8)).Return(&domain.TimeSlot{ID: 8, Capacity: 2}, nil)
		bRepo.On("CountActiveBySlot", mock.Anything, int64(8)).Return(1, nil)
		bRepo.On("UpdateFields", mock.Anything, mock.MatchedBy(func(u *domain.Booking) bool {
			return u.TimeSlotID == 8
		})).Return(nil)

		svc := newTestService(bRepo, sRepo)
		_, err := svc.Update(context.Background(), 42, &models.UpdateBookingRequest{TimeSlotID: ptr.Ptr(int64(8))})

		require.NoError(t, err)
		sRepo.AssertExpectations(t)
	})

	t.Run("target slot full", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		sRepo := new(MockSlotRepository)

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusConfirmed), nil)
		sRepo.On("GetByID", mock.Anything, int64(8)).Return(&domain.TimeSlot{ID: 8, Capacity: 2}, nil)
		bRepo.On("CountActiveBySlot", mock.Anything, int64(8)).Return(2, nil)

		svc := newTestService(bRepo, sRepo)
		_, err := svc.Update(context.Background(), 42, &models.UpdateBookingRequest{TimeSlotID: ptr.Ptr(int64(8))})

		assert.ErrorIs(t, err, ErrSlotUnavailable)
		bRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
	})

	t.Run("target slot blocked", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		sRepo := new(MockSlotRepository)

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusConfirmed), nil)
		sRepo.On("GetByID", mock.Anything, int64(8)).Return(&domain.TimeSlot{ID: 8, Capacity: 2, IsBlocked: true}, nil)

		svc := newTestService(bRepo, sRepo)
		_, err := svc.Update(context.Background(), 42, &models.UpdateBookingRequest{TimeSlotID: ptr.Ptr(int64(8))})

		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("target slot missing", func(t *testing.T) {
		bRepo := new(MockBookingRepository)
		sRepo := new(MockSlotRepository)

		bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusConfirmed), nil)
		sRepo.On("GetByID", mock.Anything, int64(8)).Return(nil, slotRepo.ErrSlotNotFound)

		svc := newTestService(bRepo, sRepo)
		_, err := svc.Update(context.Background(), 42, &models.UpdateBookingRequest{TimeSlotID: ptr.Ptr(int64(8))})

		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestService(new(MockBookingRepository), new(MockSlotRepository))

		_, err := svc.Update(context.Background(), 42, &models.UpdateBookingRequest{TimeSlotID: ptr.Ptr(int64(0))})
		assert.ErrorIs(t, err, ErrInvalidInput)

		bad := domain.SlotType("parking")
		_, err = svc.Update(context.Background(), 42, &models.UpdateBookingRequest{BookingType: &bad})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Transition_RepoErrorWrapped(t *testing.T) {
	bRepo := new(MockBookingRepository)
	bRepo.On("GetByID", mock.Anything, int64(42)).Return(testBooking(domain.StatusPending), nil)
	bRepo.On("Approve", mock.Anything, int64(42), int64(9)).Return(errors.New("connection reset"))

	svc := newTestService(bRepo, new(MockSlotRepository))
	_, err := svc.Approve(context.Background(), 42, 9)

	assert.ErrorIs(t, err, ErrInternal)
}

package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DockService/internal/domain"
	"github.com/m04kA/SMC-DockService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"bookings.id",
	"bookings.booking_number",
	"bookings.qr_code",
	"bookings.time_slot_id",
	"bookings.company_id",
	"bookings.driver_id",
	"bookings.vehicle_id",
	"bookings.booking_type",
	"bookings.reference_number",
	"bookings.notes",
	"bookings.status",
	"bookings.check_in_time",
	"bookings.check_out_time",
	"bookings.approved_by",
	"bookings.approved_at",
	"bookings.cancelled_at",
	"bookings.cancellation_reason",
	"bookings.created_by",
	"bookings.created_at",
	"bookings.updated_at",
}

// Repository репозиторий для работы с бронированиями доков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается только внутри сериализуемой транзакции, в которой уже
// прочитан и заблокирован слот - иначе возможна гонка на вместимости.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"qr_code",
			"time_slot_id",
			"company_id",
			"driver_id",
			"vehicle_id",
			"booking_type",
			"reference_number",
			"notes",
			"status",
			"created_by",
		).
		Values(
			b.BookingNumber,
			b.QRCode,
			b.TimeSlotID,
			b.CompanyID,
			b.DriverID,
			b.VehicleID,
			b.BookingType,
			b.ReferenceNumber,
			b.Notes,
			b.Status,
			b.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции блокирует строку (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByField(ctx, squirrel.Eq{"bookings.id": id}, "GetByID")
}

// GetByQRCode получает бронирование по QR-коду (терминал на проходной)
func (r *Repository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Booking, error) {
	return r.getByField(ctx, squirrel.Eq{"bookings.qr_code": qrCode}, "GetByQRCode")
}

func (r *Repository) getByField(ctx context.Context, cond squirrel.Eq, fn string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(cond)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, fn, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, fn, err)
	}

	return b, nil
}

// CountActiveBySlot подсчитывает эффективную занятость слота:
// бронирования со статусом, отличным от cancelled
func (r *Repository) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"time_slot_id": slotID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListWithFilter получает страницу бронирований с гибкой фильтрацией.
// Фильтры по складу и датам идут через JOIN слотов, текстовый поиск -
// по номеру бронирования, референсу, имени водителя и названию компании.
// Возвращает срез и общее количество строк под фильтром.
func (r *Repository) ListWithFilter(
	ctx context.Context,
	filter domain.BookingsFilter,
	page domain.Pagination,
) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		b = b.
			Join("time_slots ON time_slots.id = bookings.time_slot_id").
			LeftJoin("users drivers ON drivers.id = bookings.driver_id").
			Join("companies ON companies.id = bookings.company_id")

		if filter.Status != nil {
			b = b.Where(squirrel.Eq{"bookings.status": *filter.Status})
		}
		if filter.CompanyID != nil {
			b = b.Where(squirrel.Eq{"bookings.company_id": *filter.CompanyID})
		}
		if filter.WarehouseID != nil {
			b = b.Where(squirrel.Eq{"time_slots.warehouse_id": *filter.WarehouseID})
		}
		if filter.DriverID != nil {
			b = b.Where(squirrel.Eq{"bookings.driver_id": *filter.DriverID})
		}
		if filter.DateFrom != nil {
			b = b.Where(squirrel.GtOrEq{"time_slots.slot_date": *filter.DateFrom})
		}
		if filter.DateTo != nil {
			b = b.Where(squirrel.LtOrEq{"time_slots.slot_date": *filter.DateTo})
		}
		if filter.Search != nil && *filter.Search != "" {
			pattern := "%" + *filter.Search + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"bookings.booking_number": pattern},
				squirrel.ILike{"bookings.reference_number": pattern},
				squirrel.ILike{"drivers.name": pattern},
				squirrel.ILike{"companies.name": pattern},
			})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(
		psqlbuilder.Select("COUNT(*)").From("bookings"),
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - scan count: %v", ErrScanRow, err)
	}

	query, args, err := applyFilter(
		psqlbuilder.Select(bookingColumns...).From("bookings"),
	).
		OrderBy("time_slots.slot_date DESC", "time_slots.time_start DESC", "bookings.id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// UpdateFields обновляет разрешенный к изменению набор полей бронирования
func (r *Repository) UpdateFields(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("time_slot_id", b.TimeSlotID).
		Set("driver_id", b.DriverID).
		Set("vehicle_id", b.VehicleID).
		Set("booking_type", b.BookingType).
		Set("reference_number", b.ReferenceNumber).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateFields - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdateFields")
}

// Approve переводит бронирование в confirmed с фиксацией одобрившего
func (r *Repository) Approve(ctx context.Context, id int64, approvedBy int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("approved_by", approvedBy).
		Set("approved_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Approve - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "Approve")
}

// SetCheckIn фиксирует прибытие водителя
func (r *Repository) SetCheckIn(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCheckedIn).
		Set("check_in_time", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCheckIn - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "SetCheckIn")
}

// SetCheckOut фиксирует убытие водителя и завершает бронирование
func (r *Repository) SetCheckOut(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("check_out_time", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCheckOut - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "SetCheckOut")
}

// Cancel отменяет бронирование с указанием причины.
// Физическое удаление бронирований не поддерживается - отмена и есть
// терминальное "удаление" с сохранением истории.
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "Cancel")
}

// UpdateStatus выставляет статус без проверки переходов.
// Используется только административным override - обычные переходы
// идут через Approve/SetCheckIn/SetCheckOut/Cancel.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdateStatus")
}

// AppendNote дописывает строку в журнал заметок бронирования
func (r *Repository) AppendNote(ctx context.Context, id int64, note string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("notes", squirrel.Expr("CONCAT(COALESCE(notes, ''), ?::text)", "\n"+note)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendNote - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "AppendNote")
}

// Reassign переносит бронирование на другой слот со статусом rescheduled
func (r *Repository) Reassign(ctx context.Context, id int64, newSlotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("time_slot_id", newSlotID).
		Set("status", domain.StatusRescheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reassign - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "Reassign")
}

// ListDelayedPastSlotEnd находит отложенные бронирования, чей слот уже
// закончился к моменту now. Кандидаты автоматического переноса.
func (r *Repository) ListDelayedPastSlotEnd(ctx context.Context, now time.Time) ([]*domain.DelayedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, bookingColumns...),
		"time_slots.warehouse_id",
		"time_slots.slot_date",
		"time_slots.time_end",
	)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Join("time_slots ON time_slots.id = bookings.time_slot_id").
		Where(squirrel.Eq{"bookings.status": domain.StatusDelayed}).
		Where(squirrel.Expr("(time_slots.slot_date + time_slots.time_end) < ?", now)).
		OrderBy("time_slots.slot_date ASC", "time_slots.time_end ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDelayedPastSlotEnd - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDelayedPastSlotEnd - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	delayed := make([]*domain.DelayedBooking, 0)
	for rows.Next() {
		var d domain.DelayedBooking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&d.Booking.ID,
			&d.Booking.BookingNumber,
			&d.Booking.QRCode,
			&d.Booking.TimeSlotID,
			&d.Booking.CompanyID,
			&d.Booking.DriverID,
			&d.Booking.VehicleID,
			&d.Booking.BookingType,
			&d.Booking.ReferenceNumber,
			&d.Booking.Notes,
			&d.Booking.Status,
			&d.Booking.CheckInTime,
			&d.Booking.CheckOutTime,
			&d.Booking.ApprovedBy,
			&d.Booking.ApprovedAt,
			&d.Booking.CancelledAt,
			&d.Booking.CancellationReason,
			&d.Booking.CreatedBy,
			&createdAt,
			&updatedAt,
			&d.WarehouseID,
			&d.SlotDate,
			&d.TimeEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDelayedPastSlotEnd - scan row: %v", ErrScanRow, err)
		}

		d.Booking.CreatedAt = createdAt.Time
		d.Booking.UpdatedAt = updatedAt.Time

		delayed = append(delayed, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDelayedPastSlotEnd - rows error: %v", ErrScanRow, err)
	}

	return delayed, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, query string, args []interface{}, fn string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, fn, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, fn, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.QRCode,
		&b.TimeSlotID,
		&b.CompanyID,
		&b.DriverID,
		&b.VehicleID,
		&b.BookingType,
		&b.ReferenceNumber,
		&b.Notes,
		&b.Status,
		&b.CheckInTime,
		&b.CheckOutTime,
		&b.ApprovedBy,
		&b.ApprovedAt,
		&b.CancelledAt,
		&b.CancellationReason,
		&b.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

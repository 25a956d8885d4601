package timeslot

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

// occupancyExpr подзапрос эффективной занятости слота:
// количество бронирований слота со статусом, отличным от cancelled
const occupancyExpr = "(SELECT COUNT(*) FROM bookings b WHERE b.time_slot_id = time_slots.id AND b.status <> 'cancelled')"

var slotColumns = []string{
	"id",
	"warehouse_id",
	"zone_id",
	"slot_date",
	"time_start",
	"time_end",
	"slot_type",
	"capacity",
	"is_blocked",
	"block_reason",
	"recurring_pattern",
	"recurring_batch_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами доков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот.
// Если в контексте передана активная транзакция, использует её -
// это обязательно при создании с проверкой пересечений (race window
// между проверкой и вставкой).
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns(
			"warehouse_id",
			"zone_id",
			"slot_date",
			"time_start",
			"time_end",
			"slot_type",
			"capacity",
			"is_blocked",
			"block_reason",
			"recurring_pattern",
			"recurring_batch_id",
		).
		Values(
			slot.WarehouseID,
			slot.ZoneID,
			slot.SlotDate,
			slot.TimeStart,
			slot.TimeEnd,
			slot.SlotType,
			slot.Capacity,
			slot.IsBlocked,
			slot.BlockReason,
			slot.RecurringPattern,
			slot.RecurringBatchID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID.
// Внутри транзакции блокирует строку слота (FOR UPDATE) - на этой блокировке
// держится инвариант вместимости при создании бронирования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Update обновляет слот
func (r *Repository) Update(ctx context.Context, slot *domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("zone_id", slot.ZoneID).
		Set("slot_date", slot.SlotDate).
		Set("time_start", slot.TimeStart).
		Set("time_end", slot.TimeEnd).
		Set("slot_type", slot.SlotType).
		Set("capacity", slot.Capacity).
		Set("is_blocked", slot.IsBlocked).
		Set("block_reason", slot.BlockReason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// SetBlocked выставляет флаг блокировки слота
func (r *Repository) SetBlocked(ctx context.Context, id int64, blocked bool, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_blocked", blocked).
		Set("block_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetBlocked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBlocked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetBlocked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete физически удаляет слот.
// Проверка отсутствия активных бронирований выполняется на уровне сервиса
// в одной транзакции с удалением.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// CountOverlapping подсчитывает слоты того же склада и даты, чей полуоткрытый
// интервал [time_start, time_end) пересекается с заданным:
// existing.time_start < end AND existing.time_end > start.
// zone_id намеренно не участвует в проверке - зоны одного склада сейчас
// считаются единым расписанием (текущее поведение, ждёт решения продукта).
// excludeSlotID исключает сам слот при обновлении.
// Внутри транзакции блокирует найденные строки (FOR UPDATE), чтобы два
// конкурентных создания не прошли проверку одновременно.
func (r *Repository) CountOverlapping(
	ctx context.Context,
	warehouseID int64,
	date time.Time,
	timeStart, timeEnd string,
	excludeSlotID *int64,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("time_slots").
		Where(squirrel.Eq{"warehouse_id": warehouseID}).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Lt{"time_start": timeEnd}).
		Where(squirrel.Gt{"time_end": timeStart})

	if excludeSlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeSlotID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountOverlapping - scan id: %v", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetAvailable получает слоты склада на дату вместе с занятостью.
// Возвращает только незаблокированные слоты с остатком вместимости,
// опционально отфильтрованные по совместимости типов
// (universal совместим с любым запрошенным типом).
func (r *Repository) GetAvailable(
	ctx context.Context,
	warehouseID int64,
	date time.Time,
	slotType *domain.SlotType,
) ([]*domain.SlotAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, slotColumns...), occupancyExpr+" AS occupancy")

	selectBuilder := psqlbuilder.Select(columns...).
		From("time_slots").
		Where(squirrel.Eq{"warehouse_id": warehouseID}).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Eq{"is_blocked": false}).
		Where("capacity > " + occupancyExpr).
		OrderBy("time_start ASC")

	if slotType != nil && *slotType != domain.SlotTypeUniversal {
		selectBuilder = selectBuilder.Where(squirrel.Eq{
			"slot_type": []string{string(*slotType), string(domain.SlotTypeUniversal)},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	availabilities := make([]*domain.SlotAvailability, 0)
	for rows.Next() {
		av, err := scanSlotWithOccupancy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAvailable - scan row: %v", ErrScanRow, err)
		}
		availabilities = append(availabilities, av)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailable - rows error: %v", ErrScanRow, err)
	}

	return availabilities, nil
}

// FindNextAvailable находит ближайший подходящий слот для переноса:
// тот же склад, совместимый тип, не заблокирован, с остатком вместимости,
// начало строго позже after, дата не дальше after+horizonDays.
// Слот excludeSlotID исключается: перенос на тот же слот не перенос.
// Сортировка: по дате, затем по времени начала.
func (r *Repository) FindNextAvailable(
	ctx context.Context,
	warehouseID int64,
	bookingType domain.SlotType,
	after time.Time,
	excludeSlotID int64,
	horizonDays int,
) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromDate := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location())
	toDate := fromDate.AddDate(0, 0, horizonDays)
	afterClock := after.Format(domain.TimeFormat)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"warehouse_id": warehouseID}).
		Where(squirrel.Eq{"is_blocked": false}).
		Where(squirrel.NotEq{"id": excludeSlotID}).
		Where(squirrel.Or{
			squirrel.Gt{"slot_date": fromDate},
			squirrel.And{
				squirrel.Eq{"slot_date": fromDate},
				squirrel.Gt{"time_start": afterClock},
			},
		}).
		Where(squirrel.LtOrEq{"slot_date": toDate}).
		Where("capacity > "+occupancyExpr).
		OrderBy("slot_date ASC", "time_start ASC").
		Limit(1)

	if bookingType != domain.SlotTypeUniversal {
		selectBuilder = selectBuilder.Where(squirrel.Eq{
			"slot_type": []string{string(bookingType), string(domain.SlotTypeUniversal)},
		})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindNextAvailable - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindNextAvailable - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.WarehouseID,
		&slot.ZoneID,
		&slot.SlotDate,
		&slot.TimeStart,
		&slot.TimeEnd,
		&slot.SlotType,
		&slot.Capacity,
		&slot.IsBlocked,
		&slot.BlockReason,
		&slot.RecurringPattern,
		&slot.RecurringBatchID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func scanSlotWithOccupancy(row rowScanner) (*domain.SlotAvailability, error) {
	var av domain.SlotAvailability
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&av.Slot.ID,
		&av.Slot.WarehouseID,
		&av.Slot.ZoneID,
		&av.Slot.SlotDate,
		&av.Slot.TimeStart,
		&av.Slot.TimeEnd,
		&av.Slot.SlotType,
		&av.Slot.Capacity,
		&av.Slot.IsBlocked,
		&av.Slot.BlockReason,
		&av.Slot.RecurringPattern,
		&av.Slot.RecurringBatchID,
		&createdAt,
		&updatedAt,
		&av.Occupancy,
	)
	if err != nil {
		return nil, err
	}

	av.Slot.CreatedAt = createdAt.Time
	av.Slot.UpdatedAt = updatedAt.Time
	av.AvailableSpots = av.Slot.Capacity - av.Occupancy

	return &av, nil
}

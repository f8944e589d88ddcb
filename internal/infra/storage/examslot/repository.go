package examslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ExamBookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var columns = []string{
	"id",
	"exam_date",
	"start_time",
	"end_time",
	"level",
	"exam_option",
	"capacity",
	"booked",
	"location",
	"created_at",
	"updated_at",
}

// Repository репозиторий сессий экзамена
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает слот экзамена
func (r *Repository) Create(ctx context.Context, slot *domain.ExamSlot) (*domain.ExamSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("exam_slots").
		Columns(
			"exam_date",
			"start_time",
			"end_time",
			"level",
			"exam_option",
			"capacity",
			"booked",
			"location",
		).
		Values(
			slot.ExamDate,
			slot.StartTime,
			slot.EndTime,
			slot.Level,
			slot.ExamOption,
			slot.Capacity,
			slot.Booked,
			slot.Location,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrSlotOverlap
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ExamSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("exam_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ListForDay слоты на дату для уровня и формата, по времени начала
func (r *Repository) ListForDay(ctx context.Context, date time.Time, level domain.Level, option domain.ExamOption) ([]*domain.ExamSlot, error) {
	day := domain.TruncateToDate(date)
	return r.List(ctx, domain.ExamSlotFilter{
		StartDate:  &day,
		EndDate:    &day,
		Level:      &level,
		ExamOption: &option,
	})
}

// List слоты с фильтрацией по периоду, уровню и формату
func (r *Repository) List(ctx context.Context, filter domain.ExamSlotFilter) ([]*domain.ExamSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From("exam_slots")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"exam_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"exam_date": *filter.EndDate})
	}
	if filter.Level != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"level": *filter.Level})
	}
	if filter.ExamOption != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"exam_option": *filter.ExamOption})
	}

	query, args, err := selectBuilder.OrderBy("exam_date ASC", "start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.ExamSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Update обновляет время, вместимость и место проведения
func (r *Repository) Update(ctx context.Context, slot *domain.ExamSlot) (*domain.ExamSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("exam_slots").
		Set("exam_date", slot.ExamDate).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("capacity", slot.Capacity).
		Set("location", slot.Location).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrSlotOverlap
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	slot.UpdatedAt = updatedAt.Time
	return slot, nil
}

// IncrementBooked занимает одно место; ErrSlotFull если мест нет
func (r *Repository) IncrementBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("exam_slots").
		Set("booked", squirrel.Expr("booked + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("booked < capacity").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotFull
	}

	return nil
}

// Delete удаляет слот, только если на него нет бронирований
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("exam_slots").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"booked": 0}).
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.ExamSlot, error) {
	var slot domain.ExamSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.ExamDate,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Level,
		&slot.ExamOption,
		&slot.Capacity,
		&slot.Booked,
		&slot.Location,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.ExamDate = domain.TruncateToDate(slot.ExamDate)
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

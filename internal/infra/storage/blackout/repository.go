package blackout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ExamBookingService/pkg/psqlbuilder"
)

// Repository репозиторий периодов закрытия
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает период закрытия
func (r *Repository) Create(ctx context.Context, period *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_periods").
		Columns("title", "type", "start_date", "end_date", "description", "recurring").
		Values(period.Title, period.Type, period.StartDate, period.EndDate, period.Description, period.Recurring).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&period.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	period.CreatedAt = createdAt.Time

	return period, nil
}

// List все периоды, по дате начала
func (r *Repository) List(ctx context.Context) ([]*domain.BlackoutPeriod, error) {
	return r.list(ctx, nil)
}

// ListCovering периоды, которые могут покрывать дату
// Ежегодные периоды отбираются все, точное попадание проверяет BlackoutPeriod.Covers
func (r *Repository) ListCovering(ctx context.Context, date time.Time) ([]*domain.BlackoutPeriod, error) {
	day := domain.TruncateToDate(date)
	periods, err := r.list(ctx, squirrel.Or{
		squirrel.Eq{"recurring": true},
		squirrel.And{
			squirrel.LtOrEq{"start_date": day},
			squirrel.GtOrEq{"end_date": day},
		},
	})
	if err != nil {
		return nil, err
	}

	covering := make([]*domain.BlackoutPeriod, 0, len(periods))
	for _, p := range periods {
		if p.Covers(day) {
			covering = append(covering, p)
		}
	}
	return covering, nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"title",
		"type",
		"start_date",
		"end_date",
		"description",
		"recurring",
		"created_at",
	).From("blackout_periods")

	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.OrderBy("start_date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make([]*domain.BlackoutPeriod, 0)
	for rows.Next() {
		var p domain.BlackoutPeriod
		var description sql.NullString
		var createdAt sql.NullTime

		if err := rows.Scan(&p.ID, &p.Title, &p.Type, &p.StartDate, &p.EndDate, &description, &p.Recurring, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		p.Description = description.String
		p.CreatedAt = createdAt.Time
		periods = append(periods, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return periods, nil
}

// Delete удаляет период
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_periods").
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
		return ErrBlackoutNotFound
	}

	return nil
}

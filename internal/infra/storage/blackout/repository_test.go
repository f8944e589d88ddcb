package blackout

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

var blackoutColumns = []string{"id", "title", "type", "start_date", "end_date", "description", "recurring", "created_at"}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO blackout_periods (title,type,start_date,end_date,description,recurring)")).
		WithArgs("New Year", "holiday", date(2025, 12, 31), date(2026, 1, 1), "", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, now))

	p, err := NewRepository(db).Create(context.Background(), &domain.BlackoutPeriod{
		Title:     "New Year",
		Type:      domain.BlackoutHoliday,
		StartDate: date(2025, 12, 31),
		EndDate:   date(2026, 1, 1),
		Recurring: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListCovering(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := date(2026, 1, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, type, start_date, end_date, description, recurring, created_at FROM blackout_periods WHERE (recurring = $1 OR (start_date <= $2 AND end_date >= $3)) ORDER BY start_date ASC")).
		WithArgs(true, day, day).
		WillReturnRows(sqlmock.NewRows(blackoutColumns).
			AddRow(1, "New Year", "holiday", date(2024, 12, 31), date(2025, 1, 1), nil, true, day).
			AddRow(2, "Independence Day", "holiday", date(2024, 8, 15), date(2024, 8, 15), "national", true, day).
			AddRow(3, "Server upgrade", "maintenance", date(2025, 12, 30), date(2026, 1, 2), "", false, day))

	periods, err := NewRepository(db).ListCovering(context.Background(), day.Add(10*time.Hour))
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "New Year", periods[0].Title)
	assert.Equal(t, domain.BlackoutMaintenance, periods[1].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blackout_periods WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blackout_periods WHERE id = $1")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	require.NoError(t, repo.Delete(context.Background(), 1))

	err = repo.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBlackoutNotFound)
}

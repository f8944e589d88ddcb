package examslot

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/dbmetrics"
)

var examDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func slotRows() *sqlmock.Rows {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).
		AddRow(1, examDate, "09:00:00", "12:00:00", "C1", "both", 20, 16, "Hall A", now, now).
		AddRow(2, examDate, "14:00:00", "17:00:00", "C1", "both", 10, 10, "Hall B", now, now)
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO exam_slots")).
		WithArgs(examDate, "09:00", "12:00", "C1", "both", 20, 0, "Hall A").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	slot, err := repo.Create(context.Background(), &domain.ExamSlot{
		ExamDate:   examDate,
		StartTime:  "09:00",
		EndTime:    "12:00",
		Level:      domain.LevelC1,
		ExamOption: domain.ExamBoth,
		Capacity:   20,
		Location:   "Hall A",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), slot.ID)
	assert.Equal(t, now, slot.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Overlap(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO exam_slots")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &domain.ExamSlot{ExamDate: examDate, StartTime: "09:00", EndTime: "12:00"})
	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func TestRepository_ListForDay(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM exam_slots WHERE exam_date >= \$1 AND exam_date <= \$2 AND level = \$3 AND exam_option = \$4 ORDER BY exam_date ASC, start_time ASC`).
		WithArgs(examDate, examDate, "C1", "both").
		WillReturnRows(slotRows())

	slots, err := repo.ListForDay(context.Background(), examDate.Add(9*time.Hour), domain.LevelC1, domain.ExamBoth)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, domain.ExamSlotNearlyFull, slots[0].Status())
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, 180, slots[0].DurationMinutes())
	assert.Equal(t, domain.ExamSlotFull, slots[1].Status())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM exam_slots WHERE id = \$1$`).
			WithArgs(1).
			WillReturnRows(slotRows())

		slot, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Hall A", slot.Location)
		assert.Equal(t, domain.LevelC1, slot.Level)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM exam_slots`).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("locks row inside transaction", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM exam_slots WHERE id = \$1 FOR UPDATE`).
			WithArgs(1).
			WillReturnRows(slotRows())
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), tx)

		_, err = repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_IncrementBooked(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE exam_slots SET booked = booked + 1, updated_at = NOW() WHERE id = $1 AND booked < capacity")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE exam_slots SET booked = booked + 1")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.IncrementBooked(context.Background(), 1))
	assert.ErrorIs(t, repo.IncrementBooked(context.Background(), 2), ErrSlotFull)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE exam_slots SET")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE exam_slots SET")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	slot := &domain.ExamSlot{ID: 1, ExamDate: examDate, StartTime: "10:00", EndTime: "13:00", Capacity: 25, Location: "Hall C"}
	updated, err := repo.Update(context.Background(), slot)
	require.NoError(t, err)
	assert.Equal(t, now, updated.UpdatedAt)

	slot.ID = 99
	_, err = repo.Update(context.Background(), slot)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_slots WHERE id = $1 AND booked = $2")).
		WithArgs(1, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_slots")).
		WithArgs(2, 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), ErrSlotNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

var examDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

func newBooking() *domain.Booking {
	return &domain.Booking{
		Reference:       "BK-1A2B3C4D",
		ExamSlotID:      1,
		Level:           domain.LevelC1,
		ExamOption:      domain.ExamBoth,
		ExamDate:        examDate,
		StartTime:       "09:00",
		DurationMinutes: 180,
		Location:        "Hall A",
		Status:          domain.StatusConfirmed,
		Amount:          140.25,
		Currency:        domain.CurrencyEUR,
		PaymentMethod:   domain.PaymentCard,
		TransactionID:   "TXN1741000000000",
		CandidateName:   "Jane Doe",
		CandidateEmail:  "jane@example.com",
	}
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (reference,exam_slot_id,level,exam_option,exam_date,start_time,duration_minutes,location,status,amount,currency,payment_method,transaction_id,candidate_name,candidate_email)")).
		WithArgs("BK-1A2B3C4D", 1, "C1", "both", examDate, "09:00", 180, "Hall A", "confirmed", 140.25, "EUR", "card", "TXN1741000000000", "Jane Doe", "jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))

	b, err := NewRepository(db).Create(context.Background(), newBooking())
	require.NoError(t, err)
	assert.Equal(t, int64(11), b.ID)
	assert.Equal(t, now, b.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err = NewRepository(db).Create(context.Background(), newBooking())
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestRepository_GetByReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE reference = \$1`).
		WithArgs("BK-1A2B3C4D").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			11, "BK-1A2B3C4D", 1, "C1", "both", examDate, "09:00:00", 180, "Hall A", "confirmed",
			140.25, "EUR", "card", "TXN1741000000000", "Jane Doe", "jane@example.com", now, now,
		))
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE reference = \$1`).
		WithArgs("BK-MISSING0").
		WillReturnRows(sqlmock.NewRows(columns))

	repo := NewRepository(db)

	b, err := repo.GetByReference(context.Background(), "BK-1A2B3C4D")
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyEUR, b.Currency)
	assert.Equal(t, "09:00", b.StartTime.String())
	assert.Equal(t, 3*time.Hour, b.Duration())
	assert.True(t, b.IsActive())

	_, err = repo.GetByReference(context.Background(), "BK-MISSING0")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ExamBookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var columns = []string{
	"id",
	"reference",
	"exam_slot_id",
	"level",
	"exam_option",
	"exam_date",
	"start_time",
	"duration_minutes",
	"location",
	"status",
	"amount",
	"currency",
	"payment_method",
	"transaction_id",
	"candidate_name",
	"candidate_email",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет подтвержденное бронирование
// Вызывается внутри транзакции вместе с IncrementBooked слота
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"exam_slot_id",
			"level",
			"exam_option",
			"exam_date",
			"start_time",
			"duration_minutes",
			"location",
			"status",
			"amount",
			"currency",
			"payment_method",
			"transaction_id",
			"candidate_name",
			"candidate_email",
		).
		Values(
			booking.Reference,
			booking.ExamSlotID,
			booking.Level,
			booking.ExamOption,
			booking.ExamDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Location,
			booking.Status,
			booking.Amount,
			booking.Currency,
			booking.PaymentMethod,
			booking.TransactionID,
			booking.CandidateName,
			booking.CandidateEmail,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateReference
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByReference получает бронирование по номеру
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"reference": reference}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Booking
	var transactionID, candidateName, candidateEmail sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Reference,
		&b.ExamSlotID,
		&b.Level,
		&b.ExamOption,
		&b.ExamDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.Location,
		&b.Status,
		&b.Amount,
		&b.Currency,
		&b.PaymentMethod,
		&transactionID,
		&candidateName,
		&candidateEmail,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan booking: %v", ErrScanRow, err)
	}

	b.ExamDate = domain.TruncateToDate(b.ExamDate)
	b.TransactionID = transactionID.String
	b.CandidateName = candidateName.String
	b.CandidateEmail = candidateEmail.String
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

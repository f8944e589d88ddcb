package submit_payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/infra/storage/examslot"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
)

const amountTolerance = 0.005

// UseCase оплата удержанного слота и оформление бронирования
type UseCase struct {
	sessions    SessionRegistry
	holdStore   HoldStore
	slotRepo    ExamSlotRepository
	bookingRepo BookingRepository
	gateway     PaymentGateway
	mailer      Mailer
	txManager   TransactionManager
	clock       clock.Clock
	recorder    Recorder
	logger      Logger

	newReference func() string
}

// NewUseCase создает новый экземпляр use case
// holdStore и recorder могут быть nil
func NewUseCase(
	sessions SessionRegistry,
	holdStore HoldStore,
	slotRepo ExamSlotRepository,
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	mailer Mailer,
	txManager TransactionManager,
	clk clock.Clock,
	recorder Recorder,
	logger Logger,
) *UseCase {
	if clk == nil {
		clk = clock.New()
	}
	return &UseCase{
		sessions:     sessions,
		holdStore:    holdStore,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		gateway:      gateway,
		mailer:       mailer,
		txManager:    txManager,
		clock:        clk,
		recorder:     recorder,
		logger:       logger,
		newReference: NewReference,
	}
}

// NewReference номер бронирования вида BK-1A2B3C4D
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return domain.BookingReferencePrefix + strings.ToUpper(id[:8])
}

// Execute выполняет use case оплаты
// Платеж проводится один раз; бронирование создается в сериализуемой транзакции
// Если место заняли уже после списания, вместе с ErrSlotFull возвращается ответ с номером транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitPayment: session=%s, method=%s", req.SessionID, req.Method)

	// 1. Валидация формы оплаты
	if err := validateRequest(req, uc.clock.Now()); err != nil {
		uc.logger.Warn("SubmitPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Сессия и активное удержание
	session, err := uc.sessions.Get(req.SessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			uc.logger.Warn("SubmitPayment: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	// Удержание закрепляется до конца оплаты; без бронирования закрепление снимается
	snap, err := session.BeginPayment(req.HoldID)
	if err != nil {
		return nil, uc.mapSessionError(req.SessionID, err)
	}
	completed := false
	defer func() {
		if !completed {
			session.AbortPayment()
		}
	}()

	// 3. Реестр удержаний должен подтверждать удержание
	if uc.holdStore != nil {
		active, err := uc.holdStore.IsActive(ctx, req.SessionID, snap.Hold.ID)
		if err != nil {
			uc.logger.Error("SubmitPayment: session=%s, failed to check hold: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: failed to check hold: %v", ErrInternal, err)
		}
		if !active {
			uc.logger.Warn("SubmitPayment: session=%s, hold=%s is not registered", req.SessionID, snap.Hold.ID)
			return nil, ErrHoldNotActive
		}
	}

	if snap.Slot == nil || snap.Slot.SlotID == 0 {
		uc.logger.Error("SubmitPayment: session=%s has no exam slot selected", req.SessionID)
		return nil, fmt.Errorf("%w: exam slot is not selected", ErrInternal)
	}

	// 4. Цена в выбранной валюте
	amount, currency, err := session.Quote(ctx)
	if err != nil {
		uc.logger.Error("SubmitPayment: session=%s, failed to price booking: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to price booking: %v", ErrInternal, err)
	}
	if req.Amount != nil && math.Abs(*req.Amount-amount) > amountTolerance {
		uc.logger.Warn("SubmitPayment: session=%s, amount %.2f != price %.2f %s",
			req.SessionID, *req.Amount, amount, currency)
		return nil, fmt.Errorf("%w: expected %.2f %s", ErrAmountMismatch, amount, currency)
	}

	// 5. Места в слоте проверяются до списания
	if err := uc.checkSeat(ctx, snap.Slot.SlotID); err != nil {
		uc.logger.Warn("SubmitPayment: session=%s, slot=%d: %v", req.SessionID, snap.Slot.SlotID, err)
		return nil, err
	}

	// 6. Платеж
	outcome, err := uc.gateway.Charge(ctx, paymentgateway.Request{
		SessionID: req.SessionID,
		Method:    req.Method,
		Amount:    amount,
		Currency:  currency,
	})
	if err != nil {
		uc.logger.Error("SubmitPayment: session=%s, gateway error: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: payment gateway: %v", ErrInternal, err)
	}
	uc.observe(req.Method, outcome.Status)

	resp := &Response{
		Outcome:         outcome,
		RecoveryActions: outcome.RecoveryActions(),
		Amount:          amount,
		Currency:        currency,
	}

	// Неуспешный платеж: удержание остается, пользователь может повторить
	if outcome.Status != domain.PaymentSuccess {
		uc.logger.Warn("SubmitPayment: session=%s, payment status=%s, code=%s",
			req.SessionID, outcome.Status, outcome.ErrorCode)
		return resp, nil
	}

	// 7. Бронирование места в сериализуемой транзакции
	var booking *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокируем строку слота (FOR UPDATE) и перепроверяем вместимость
		slot, err := uc.slotRepo.GetByID(txCtx, snap.Slot.SlotID)
		if err != nil {
			if errors.Is(err, examslot.ErrSlotNotFound) {
				return ErrSlotFull
			}
			return fmt.Errorf("%w: failed to get exam slot: %v", ErrInternal, err)
		}
		if !slot.HasSeat() {
			return ErrSlotFull
		}

		// 7.2. Занимаем место
		if err := uc.slotRepo.IncrementBooked(txCtx, slot.ID); err != nil {
			if errors.Is(err, examslot.ErrSlotFull) {
				return ErrSlotFull
			}
			return fmt.Errorf("%w: failed to book seat: %v", ErrInternal, err)
		}

		// 7.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Reference:       uc.newReference(),
			ExamSlotID:      slot.ID,
			Level:           snap.State.Level,
			ExamOption:      snap.State.ExamOption,
			ExamDate:        snap.State.Date,
			StartTime:       snap.State.Time,
			DurationMinutes: slot.DurationMinutes(),
			Location:        slot.Location,
			Status:          domain.StatusConfirmed,
			Amount:          amount,
			Currency:        currency,
			PaymentMethod:   req.Method,
			TransactionID:   outcome.TransactionID,
			CandidateName:   strings.TrimSpace(req.CandidateName),
			CandidateEmail:  strings.TrimSpace(req.CandidateEmail),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		booking = created
		return nil
	})
	if err != nil {
		uc.logger.Error("SubmitPayment: session=%s, transaction=%s charged but booking failed: %v",
			req.SessionID, outcome.TransactionID, err)
		if errors.Is(err, ErrSlotFull) {
			return resp, err
		}
		return nil, err
	}

	// 8. Сессия переходит в режим чтения, удержание снимается
	if _, err := session.CompleteBooking(ctx, booking.Reference); err != nil {
		uc.logger.Warn("SubmitPayment: session=%s, failed to complete wizard: %v", req.SessionID, err)
	}
	completed = true

	// 9. Письмо-подтверждение
	resp.EmailStatus = domain.EmailFailed
	if status, err := uc.mailer.Send(booking.Reference, booking.CandidateEmail); err != nil {
		uc.logger.Warn("SubmitPayment: reference=%s, failed to send confirmation: %v", booking.Reference, err)
	} else {
		resp.EmailStatus = status.Status
	}

	uc.logger.Info("SubmitPayment: booking %s confirmed, slot=%d, %.2f %s",
		booking.Reference, booking.ExamSlotID, booking.Amount, booking.Currency)

	resp.Booking = booking
	return resp, nil
}

// checkSeat слот существует и в нем есть свободное место
func (uc *UseCase) checkSeat(ctx context.Context, slotID int64) error {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, examslot.ErrSlotNotFound) {
			return ErrSlotFull
		}
		return fmt.Errorf("%w: failed to get exam slot: %v", ErrInternal, err)
	}
	if !slot.HasSeat() {
		return ErrSlotFull
	}
	return nil
}

func (uc *UseCase) mapSessionError(sessionID string, err error) error {
	switch {
	case errors.Is(err, wizard.ErrHoldNotActive):
		uc.logger.Warn("SubmitPayment: session=%s has no active hold", sessionID)
		return ErrHoldNotActive
	case errors.Is(err, wizard.ErrPaymentInProgress):
		uc.logger.Warn("SubmitPayment: session=%s, payment already in progress", sessionID)
		return ErrPaymentInProgress
	case errors.Is(err, wizard.ErrBookingCompleted):
		return ErrAlreadyBooked
	case errors.Is(err, wizard.ErrSessionClosed):
		return ErrSessionNotFound
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(method domain.PaymentMethod, status domain.PaymentStatus) {
	if uc.recorder != nil {
		uc.recorder.ObservePayment(string(method), string(status))
	}
}

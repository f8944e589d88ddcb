package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/upload"
	"github.com/m04kA/SMC-ExamBookingService/pkg/types"
)

// registryTimeout таймаут обращения к реестру удержаний из колбэка таймера
const registryTimeout = 2 * time.Second

// Wizard контроллер мастера бронирования одной сессии
// Владеет состоянием выбора, таймером удержания и уведомлением.
// Все методы безопасны для конкурентного вызова.
type Wizard struct {
	mu sync.Mutex

	id    string
	clock clock.Clock
	deps  Dependencies

	state        domain.SelectionState
	slot         *domain.TimeSlot
	hold         *HoldTimer
	notice       string
	reference    string
	closed       bool
	lastActivity time.Time

	// paying идет оплата: выбор заблокирован, истечение удержания откладывается
	paying         bool
	expiredPending *domain.HoldReservation
}

// New создает мастер в начальном состоянии (шаг 1, удержание Idle)
func New(id string, clk clock.Clock, holdDuration time.Duration, deps Dependencies) *Wizard {
	w := &Wizard{
		id:           id,
		clock:        clk,
		deps:         deps,
		state:        domain.NewSelectionState(),
		lastActivity: clk.Now(),
	}
	w.hold = NewHoldTimer(clk, holdDuration, w.onHoldExpired)
	return w
}

func (w *Wizard) ID() string {
	return w.id
}

// Snapshot текущее состояние сессии
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// LastActivity время последнего изменения состояния
func (w *Wizard) LastActivity() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActivity
}

// SelectLevel шаг 1; доступен всегда, сбрасывает все последующие шаги
func (w *Wizard) SelectLevel(ctx context.Context, level domain.Level) (Snapshot, error) {
	if !level.Valid() {
		return Snapshot{}, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, level)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return w.snapshotLocked(), err
	}

	w.mutateLocked(ctx, func(s *domain.SelectionState) { s.SetLevel(level) })
	w.logInfo("SelectLevel: session=%s, level=%s", w.id, level)
	return w.snapshotLocked(), nil
}

// SelectExamOption шаг 2; требует выбранного уровня
func (w *Wizard) SelectExamOption(ctx context.Context, option domain.ExamOption) (Snapshot, error) {
	if !option.Valid() {
		return Snapshot{}, fmt.Errorf("%w: unknown exam option %q", ErrInvalidInput, option)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return w.snapshotLocked(), err
	}
	if !w.state.HasLevel() {
		w.logWarn("SelectExamOption: session=%s, level is not selected", w.id)
		return w.snapshotLocked(), fmt.Errorf("%w: select a level first", ErrStepLocked)
	}

	w.mutateLocked(ctx, func(s *domain.SelectionState) { s.SetExamOption(option) })
	w.logInfo("SelectExamOption: session=%s, option=%s", w.id, option)
	return w.snapshotLocked(), nil
}

// UploadPrerequisite шаг 3; отклоненный файл не меняет состояние
func (w *Wizard) UploadPrerequisite(ctx context.Context, f upload.File) (upload.Result, Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return upload.Result{}, w.snapshotLocked(), err
	}
	if !w.state.HasExamOption() {
		return upload.Result{}, w.snapshotLocked(), fmt.Errorf("%w: select an exam option first", ErrStepLocked)
	}
	if !w.state.ExamOption.RequiresPrerequisite() {
		return upload.Result{}, w.snapshotLocked(), ErrPrerequisiteNotRequired
	}

	result := w.deps.Uploads.Validate(f)
	if w.deps.Recorder != nil {
		w.deps.Recorder.ObserveUpload(result.Accepted)
	}
	if !result.Accepted {
		w.logWarn("UploadPrerequisite: session=%s, file=%q rejected: %s", w.id, f.Name, result.Reason)
		return result, w.snapshotLocked(), nil
	}

	w.mutateLocked(ctx, func(s *domain.SelectionState) { s.SetPrerequisiteUploaded(true) })
	w.logInfo("UploadPrerequisite: session=%s, file=%q accepted", w.id, f.Name)
	return result, w.snapshotLocked(), nil
}

// RevokePrerequisite удаление загруженного документа
// Дата и время сохраняются, но шаг откатывается на 3
func (w *Wizard) RevokePrerequisite(ctx context.Context) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return w.snapshotLocked(), err
	}
	if !w.state.HasExamOption() {
		return w.snapshotLocked(), fmt.Errorf("%w: select an exam option first", ErrStepLocked)
	}
	if !w.state.ExamOption.RequiresPrerequisite() {
		return w.snapshotLocked(), ErrPrerequisiteNotRequired
	}

	w.mutateLocked(ctx, func(s *domain.SelectionState) { s.SetPrerequisiteUploaded(false) })
	w.logInfo("RevokePrerequisite: session=%s", w.id)
	return w.snapshotLocked(), nil
}

// SelectDate шаг 4; дата должна быть доступна и иметь свободный слот
func (w *Wizard) SelectDate(ctx context.Context, date time.Time) (Snapshot, error) {
	if date.IsZero() {
		return Snapshot{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date = domain.TruncateToDate(date)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return w.snapshotLocked(), err
	}
	if domain.ResolveStep(w.state) < domain.StepDate {
		w.logWarn("SelectDate: session=%s, step %d is not reached", w.id, domain.StepDate)
		return w.snapshotLocked(), fmt.Errorf("%w: complete previous steps first", ErrStepLocked)
	}

	day, err := w.deps.Availability.GetAvailability(ctx, date, w.state.Level, w.state.ExamOption)
	if err != nil {
		w.logError("SelectDate: session=%s, availability lookup failed: %v", w.id, err)
		return w.snapshotLocked(), fmt.Errorf("%w: availability lookup: %v", ErrInternal, err)
	}
	if !day.IsSelectable() {
		w.logWarn("SelectDate: session=%s, date=%s is not selectable", w.id, date.Format(domain.DateFormat))
		return w.snapshotLocked(), ErrDateUnavailable
	}

	w.mutateLocked(ctx, func(s *domain.SelectionState) { s.SetDate(date) })
	w.logInfo("SelectDate: session=%s, date=%s", w.id, date.Format(domain.DateFormat))
	return w.snapshotLocked(), nil
}

// SelectTime шаг 5; слот должен существовать и иметь свободное место
func (w *Wizard) SelectTime(ctx context.Context, t types.TimeString) (Snapshot, error) {
	if err := t.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return w.snapshotLocked(), err
	}
	if domain.ResolveStep(w.state) < domain.StepTime {
		w.logWarn("SelectTime: session=%s, step %d is not reached", w.id, domain.StepTime)
		return w.snapshotLocked(), fmt.Errorf("%w: select a date first", ErrStepLocked)
	}

	day, err := w.deps.Availability.GetAvailability(ctx, w.state.Date, w.state.Level, w.state.ExamOption)
	if err != nil {
		w.logError("SelectTime: session=%s, availability lookup failed: %v", w.id, err)
		return w.snapshotLocked(), fmt.Errorf("%w: availability lookup: %v", ErrInternal, err)
	}

	slot, ok := day.Slot(t)
	if !day.Available || !ok || slot.IsFull() {
		w.logWarn("SelectTime: session=%s, slot %s on %s is not available",
			w.id, t, w.state.Date.Format(domain.DateFormat))
		return w.snapshotLocked(), ErrSlotUnavailable
	}

	w.mutateLocked(ctx, func(s *domain.SelectionState) { s.SetTime(t) })
	w.slot = &slot
	w.logInfo("SelectTime: session=%s, time=%s, remaining=%d", w.id, t, slot.Remaining())
	return w.snapshotLocked(), nil
}

// SelectCurrency валюта отображения; на шаги и удержание не влияет
func (w *Wizard) SelectCurrency(currency domain.Currency) (Snapshot, error) {
	if !currency.Valid() {
		return Snapshot{}, fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, currency)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return w.snapshotLocked(), ErrSessionClosed
	}
	w.state.SetCurrency(currency)
	w.lastActivity = w.clock.Now()
	return w.snapshotLocked(), nil
}

// Quote цена выбранного формата в текущей валюте
func (w *Wizard) Quote(ctx context.Context) (float64, domain.Currency, error) {
	w.mu.Lock()
	option, currency := w.state.ExamOption, w.state.Currency
	w.mu.Unlock()

	if option == "" {
		return 0, currency, fmt.Errorf("%w: select an exam option first", ErrStepLocked)
	}

	amount, err := w.deps.Pricing.GetPrice(ctx, option, currency)
	if err != nil {
		return 0, currency, fmt.Errorf("%w: pricing lookup: %v", ErrInternal, err)
	}
	return amount, currency, nil
}

// ProceedToPayment запускает удержание; требуется шаг 6
// Повторный вызов при активном удержании возвращает его же
func (w *Wizard) ProceedToPayment(ctx context.Context) (domain.HoldReservation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return domain.HoldReservation{}, err
	}
	if step := domain.ResolveStep(w.state); step != domain.StepSummary {
		w.logWarn("ProceedToPayment: session=%s, current step is %d", w.id, step)
		return domain.HoldReservation{}, fmt.Errorf("%w: booking summary is not reached", ErrStepLocked)
	}

	if res, ok := w.hold.Active(); ok {
		return res, nil
	}

	res := w.hold.Start()
	if w.deps.HoldRegistry != nil {
		if err := w.deps.HoldRegistry.Acquire(ctx, w.id, res.ID, res.Duration); err != nil {
			w.hold.Stop()
			w.logError("ProceedToPayment: session=%s, failed to register hold: %v", w.id, err)
			return domain.HoldReservation{}, fmt.Errorf("%w: register hold: %v", ErrInternal, err)
		}
	}

	w.notice = ""
	w.lastActivity = w.clock.Now()
	w.observeHold("started")
	w.logInfo("ProceedToPayment: session=%s, hold=%s, expires_at=%s",
		w.id, res.ID, res.ExpiresAt().Format(time.RFC3339))
	return res, nil
}

// ActiveHold удержание, по которому можно оплатить, вместе с состоянием выбора
func (w *Wizard) ActiveHold() (domain.HoldReservation, Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return domain.HoldReservation{}, w.snapshotLocked(), err
	}
	res, ok := w.hold.Active()
	if !ok || domain.ResolveStep(w.state) != domain.StepSummary {
		return domain.HoldReservation{}, w.snapshotLocked(), ErrHoldNotActive
	}
	return res, w.snapshotLocked(), nil
}

// BeginPayment закрепляет удержание holdID на время оплаты
// Пока оплата идет, выбор не меняется, а истечение удержания применяется только после AbortPayment.
// Вторая оплата той же сессии получает ErrPaymentInProgress.
func (w *Wizard) BeginPayment(holdID string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritableLocked(); err != nil {
		return w.snapshotLocked(), err
	}
	res, ok := w.hold.Active()
	if !ok || domain.ResolveStep(w.state) != domain.StepSummary {
		return w.snapshotLocked(), ErrHoldNotActive
	}
	if holdID != "" && res.ID != holdID {
		return w.snapshotLocked(), ErrHoldNotActive
	}

	w.paying = true
	w.lastActivity = w.clock.Now()
	w.logInfo("BeginPayment: session=%s, hold=%s", w.id, res.ID)
	return w.snapshotLocked(), nil
}

// AbortPayment снимает закрепление после неуспешной оплаты
// Истечение, случившееся во время оплаты, применяется сейчас.
func (w *Wizard) AbortPayment() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.paying {
		return w.snapshotLocked()
	}
	w.paying = false
	pending := w.expiredPending
	w.expiredPending = nil

	if pending != nil && !w.closed && w.reference == "" {
		if _, state := w.hold.Last(); state == domain.HoldExpired {
			w.expireLocked(*pending)
		}
	}
	return w.snapshotLocked()
}

// CompleteBooking фиксирует успешную оплату: снимает удержание и переводит сессию в режим чтения
// Без закрепления BeginPayment требуется активное удержание.
func (w *Wizard) CompleteBooking(ctx context.Context, reference string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return w.snapshotLocked(), ErrSessionClosed
	}
	if w.reference != "" {
		return w.snapshotLocked(), ErrBookingCompleted
	}
	if _, ok := w.hold.Active(); !ok && !w.paying {
		return w.snapshotLocked(), ErrHoldNotActive
	}

	w.releaseHoldLocked(ctx, "completed")
	w.paying = false
	w.expiredPending = nil
	w.reference = reference
	w.notice = ""
	w.lastActivity = w.clock.Now()
	w.logInfo("CompleteBooking: session=%s, reference=%s", w.id, reference)
	return w.snapshotLocked(), nil
}

// DismissNotice закрывает уведомление об истечении удержания
func (w *Wizard) DismissNotice() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notice = ""
	return w.snapshotLocked()
}

// Close завершает сессию: отменяет таймер и освобождает удержание. Идемпотентен.
func (w *Wizard) Close(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.releaseHoldLocked(ctx, "released")
	w.closed = true
	w.logInfo("Close: session=%s closed", w.id)
}

func (w *Wizard) checkWritableLocked() error {
	if w.closed {
		return ErrSessionClosed
	}
	if w.reference != "" {
		return ErrBookingCompleted
	}
	if w.paying {
		return ErrPaymentInProgress
	}
	return nil
}

// mutateLocked применяет сеттер; любое изменение выбора снимает активное удержание
func (w *Wizard) mutateLocked(ctx context.Context, apply func(s *domain.SelectionState)) {
	before := w.state
	apply(&w.state)

	if !w.state.HasTime() {
		w.slot = nil
	}
	if before != w.state {
		w.releaseHoldLocked(ctx, "released")
	}

	w.lastActivity = w.clock.Now()
	if w.deps.Recorder != nil {
		w.deps.Recorder.ObserveStep(int(domain.ResolveStep(w.state)))
	}
}

// releaseHoldLocked останавливает таймер и снимает запись в реестре
// Истекшее удержание тоже снимается: его колбэк после Stop уже ничего не делает.
func (w *Wizard) releaseHoldLocked(ctx context.Context, event string) {
	res, state := w.hold.Last()
	w.hold.Stop()
	switch state {
	case domain.HoldHeld:
		w.observeHold(event)
	case domain.HoldExpired:
	default:
		return
	}
	if w.deps.HoldRegistry != nil {
		if err := w.deps.HoldRegistry.Release(ctx, w.id, res.ID); err != nil {
			w.logWarn("release hold: session=%s, hold=%s: %v", w.id, res.ID, err)
		}
	}
}

// onHoldExpired колбэк таймера: возвращает мастер на шаг 4 и показывает уведомление
func (w *Wizard) onHoldExpired(res domain.HoldReservation) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.reference != "" {
		return
	}
	// Пока колбэк ждал блокировку, удержание могли перезапустить
	if last, state := w.hold.Last(); state != domain.HoldExpired || last.ID != res.ID {
		return
	}
	if w.paying {
		w.expiredPending = &res
		w.logInfo("Hold expired during payment: session=%s, hold=%s", w.id, res.ID)
		return
	}
	w.expireLocked(res)
}

// expireLocked возврат на шаг 4 с уведомлением и снятие записи в реестре
func (w *Wizard) expireLocked(res domain.HoldReservation) {
	w.state.ClearSchedule()
	w.slot = nil
	w.notice = domain.HoldExpiredNotice
	w.observeHold("expired")
	w.logWarn("Hold expired: session=%s, hold=%s", w.id, res.ID)

	if w.deps.HoldRegistry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
		defer cancel()
		if err := w.deps.HoldRegistry.Release(ctx, w.id, res.ID); err != nil {
			w.logWarn("Hold expired: session=%s, failed to release registry entry: %v", w.id, err)
		}
	}
}

func (w *Wizard) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:        w.id,
		State:            w.state,
		Step:             domain.ResolveStep(w.state),
		ProgressAllowed:  w.state.HasExamOption() && domain.IsProgressAllowed(w.state),
		RequiredDocument: domain.RequiredDocument(w.state.ExamOption),
		Notice:           w.notice,
		BookingReference: w.reference,
		LastActivity:     w.lastActivity,
	}
	if w.slot != nil {
		slot := *w.slot
		snap.Slot = &slot
	}

	res, state := w.hold.Last()
	snap.HoldState = state
	if state != domain.HoldIdle {
		snap.Hold = &res
		if state == domain.HoldHeld {
			snap.HoldRemaining = res.Remaining(w.clock.Now())
		}
	}
	return snap
}

func (w *Wizard) observeHold(event string) {
	if w.deps.Recorder != nil {
		w.deps.Recorder.ObserveHold(event)
	}
}

func (w *Wizard) logInfo(format string, v ...interface{}) {
	if w.deps.Logger != nil {
		w.deps.Logger.Info(format, v...)
	}
}

func (w *Wizard) logWarn(format string, v ...interface{}) {
	if w.deps.Logger != nil {
		w.deps.Logger.Warn(format, v...)
	}
}

func (w *Wizard) logError(format string, v ...interface{}) {
	if w.deps.Logger != nil {
		w.deps.Logger.Error(format, v...)
	}
}

// IsGateViolation ошибка означает попытку перейти на недоступный шаг
func IsGateViolation(err error) bool {
	return errors.Is(err, ErrStepLocked) ||
		errors.Is(err, ErrDateUnavailable) ||
		errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, ErrPrerequisiteNotRequired)
}

package wizard

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// HoldTimer удержание слота на время оплаты: Idle -> Held -> Expired
//
// Колбэк истечения вызывается ровно один раз на каждое удержание, ровно
// через duration после Start. Stop отменяет ожидающий колбэк; запоздавший
// колбэк отмененного или перезапущенного удержания игнорируется по номеру поколения.
type HoldTimer struct {
	mu       sync.Mutex
	clock    clock.Clock
	duration time.Duration
	onExpire func(domain.HoldReservation)

	state   domain.HoldState
	current domain.HoldReservation
	timer   *clock.Timer
	gen     uint64
}

// NewHoldTimer onExpire вызывается в отдельной горутине без удерживаемых блокировок таймера
func NewHoldTimer(clk clock.Clock, duration time.Duration, onExpire func(domain.HoldReservation)) *HoldTimer {
	if duration <= 0 {
		duration = domain.DefaultHoldDuration
	}
	return &HoldTimer{
		clock:    clk,
		duration: duration,
		onExpire: onExpire,
		state:    domain.HoldIdle,
	}
}

// Start переводит Idle/Expired в Held. Повторный вызов в Held возвращает текущее удержание.
func (h *HoldTimer) Start() domain.HoldReservation {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == domain.HoldHeld {
		return h.current
	}

	h.gen++
	gen := h.gen
	h.current = domain.HoldReservation{
		ID:        uuid.NewString(),
		CreatedAt: h.clock.Now(),
		Duration:  h.duration,
	}
	h.state = domain.HoldHeld
	h.timer = h.clock.AfterFunc(h.duration, func() { h.expire(gen) })

	return h.current
}

// Stop отменяет удержание и возвращает таймер в Idle.
// Возвращает true, если было активное удержание.
func (h *HoldTimer) Stop() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	wasHeld := h.state == domain.HoldHeld
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.gen++
	h.state = domain.HoldIdle
	return wasHeld
}

func (h *HoldTimer) expire(gen uint64) {
	h.mu.Lock()
	if gen != h.gen || h.state != domain.HoldHeld {
		h.mu.Unlock()
		return
	}
	h.state = domain.HoldExpired
	h.timer = nil
	res := h.current
	cb := h.onExpire
	h.mu.Unlock()

	if cb != nil {
		cb(res)
	}
}

func (h *HoldTimer) State() domain.HoldState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Active текущее удержание, если оно в состоянии Held
func (h *HoldTimer) Active() (domain.HoldReservation, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != domain.HoldHeld {
		return domain.HoldReservation{}, false
	}
	return h.current, true
}

// Last последнее удержание (в любом состоянии кроме Idle)
func (h *HoldTimer) Last() (domain.HoldReservation, domain.HoldState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current, h.state
}

func (h *HoldTimer) Duration() time.Duration {
	return h.duration
}

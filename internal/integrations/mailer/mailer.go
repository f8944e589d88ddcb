package mailer

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Recorder метрики писем
type Recorder interface {
	ObserveEmail(event string)
}

// Config параметры симулятора доставки
type Config struct {
	DeliveryDelay time.Duration
	MaxResends    int
}

type delivery struct {
	status Status
	timer  *clock.Timer
	gen    uint64
}

// Mailer симулятор отправки письма-подтверждения: sending -> delivered через DeliveryDelay
// Все ожидающие доставки отменяются в Shutdown.
type Mailer struct {
	mu         sync.Mutex
	cfg        Config
	clock      clock.Clock
	log        Logger
	recorder   Recorder
	deliveries map[string]*delivery
	closed     bool
}

func New(cfg Config, clk clock.Clock, log Logger, recorder Recorder) *Mailer {
	if cfg.DeliveryDelay <= 0 {
		cfg.DeliveryDelay = 2 * time.Second
	}
	if cfg.MaxResends <= 0 {
		cfg.MaxResends = domain.MaxResendCount
	}
	return &Mailer{
		cfg:        cfg,
		clock:      clk,
		log:        log,
		recorder:   recorder,
		deliveries: make(map[string]*delivery),
	}
}

// Send начинает отправку подтверждения; повторный Send для той же брони возвращает текущий статус
func (m *Mailer) Send(reference, email string) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Status{}, ErrClosed
	}
	if d, ok := m.deliveries[reference]; ok {
		return d.status, nil
	}

	d := &delivery{status: Status{
		Reference:   reference,
		Email:       email,
		ResendsLeft: m.cfg.MaxResends,
	}}
	m.deliveries[reference] = d
	m.startLocked(d)

	m.log.Info("Mailer: sending confirmation for %s to %s", reference, email)
	m.observe("sent")
	return d.status, nil
}

// Resend повторная отправка; доступна после доставки, не более MaxResends раз
func (m *Mailer) Resend(reference string) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Status{}, ErrClosed
	}
	d, ok := m.deliveries[reference]
	if !ok {
		return Status{}, ErrNotFound
	}
	if d.status.Status == domain.EmailSending {
		return d.status, ErrDeliveryInProgress
	}
	if d.status.ResendsLeft <= 0 {
		return d.status, ErrResendLimit
	}

	d.status.Resends++
	d.status.ResendsLeft--
	m.startLocked(d)

	m.log.Info("Mailer: resending confirmation for %s (%d/%d)", reference, d.status.Resends, m.cfg.MaxResends)
	m.observe("resent")
	return d.status, nil
}

// Status текущий статус письма
func (m *Mailer) Status(reference string) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.deliveries[reference]
	if !ok {
		return Status{}, ErrNotFound
	}
	return d.status, nil
}

// Shutdown отменяет все ожидающие доставки
func (m *Mailer) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	pending := 0
	for _, d := range m.deliveries {
		if d.timer != nil {
			d.timer.Stop()
			d.timer = nil
			d.gen++
			pending++
		}
	}
	if pending > 0 {
		m.log.Warn("Mailer: shutdown cancelled %d pending deliveries", pending)
	}
}

func (m *Mailer) startLocked(d *delivery) {
	d.gen++
	gen := d.gen
	ref := d.status.Reference

	d.status.Status = domain.EmailSending
	d.status.SentAt = m.clock.Now()
	d.status.DeliveredAt = time.Time{}
	d.timer = m.clock.AfterFunc(m.cfg.DeliveryDelay, func() { m.delivered(ref, gen) })
}

func (m *Mailer) delivered(reference string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.deliveries[reference]
	if !ok || m.closed || d.gen != gen {
		return
	}
	d.timer = nil
	d.status.Status = domain.EmailDelivered
	d.status.DeliveredAt = m.clock.Now()
	m.observe("delivered")
}

func (m *Mailer) observe(event string) {
	if m.recorder != nil {
		m.recorder.ObserveEmail(event)
	}
}

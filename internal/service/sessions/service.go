package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
)

const (
	DefaultIdleTimeout   = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Config параметры реестра сессий
type Config struct {
	HoldDuration  time.Duration
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	// MaxSessions 0 - без ограничения
	MaxSessions int
}

// Service реестр сессий мастера бронирования
// Создает мастера, выдает его по ID и закрывает простаивающие сессии
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*wizard.Wizard

	cfg    Config
	clock  clock.Clock
	deps   wizard.Dependencies
	gauge  Gauge
	logger Logger
}

// NewService создает реестр; gauge может быть nil
func NewService(cfg Config, clk clock.Clock, deps wizard.Dependencies, gauge Gauge, logger Logger) *Service {
	if cfg.HoldDuration <= 0 {
		cfg.HoldDuration = domain.DefaultHoldDuration
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Service{
		sessions: make(map[string]*wizard.Wizard),
		cfg:      cfg,
		clock:    clk,
		deps:     deps,
		gauge:    gauge,
		logger:   logger,
	}
}

// StartSession создает новую сессию мастера (шаг 1)
func (s *Service) StartSession() (*wizard.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		s.logger.Warn("StartSession: limit of %d sessions reached", s.cfg.MaxSessions)
		return nil, ErrTooManySessions
	}

	id := uuid.NewString()
	w := wizard.New(id, s.clock, s.cfg.HoldDuration, s.deps)
	s.sessions[id] = w
	s.reportLocked()

	s.logger.Info("StartSession: session=%s started", id)
	return w, nil
}

// Get возвращает сессию по ID
func (s *Service) Get(id string) (*wizard.Wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return w, nil
}

// End закрывает сессию: отменяет таймер удержания и удаляет ее из реестра
func (s *Service) End(ctx context.Context, id string) error {
	s.mu.Lock()
	w, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		s.reportLocked()
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	w.Close(ctx)
	s.logger.Info("End: session=%s ended", id)
	return nil
}

// Count количество активных сессий
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Start запускает фоновую очистку простаивающих сессий
func (s *Service) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	s.logger.Info("sessions: sweeper started, interval=%s, idle_timeout=%s", s.cfg.SweepInterval, s.cfg.IdleTimeout)

	ticker := s.clock.Ticker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sessions: sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep закрывает сессии без активности дольше IdleTimeout, возвращает их количество
func (s *Service) Sweep(ctx context.Context) int {
	now := s.clock.Now()

	s.mu.Lock()
	idle := make([]*wizard.Wizard, 0)
	for id, w := range s.sessions {
		if now.Sub(w.LastActivity()) >= s.cfg.IdleTimeout {
			idle = append(idle, w)
			delete(s.sessions, id)
		}
	}
	if len(idle) > 0 {
		s.reportLocked()
	}
	s.mu.Unlock()

	for _, w := range idle {
		w.Close(ctx)
		s.logger.Info("Sweep: idle session=%s closed", w.ID())
	}
	return len(idle)
}

// CloseAll закрывает все сессии (остановка сервиса)
func (s *Service) CloseAll(ctx context.Context) {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*wizard.Wizard)
	s.reportLocked()
	s.mu.Unlock()

	for _, w := range all {
		w.Close(ctx)
	}
	s.logger.Info("CloseAll: %d sessions closed", len(all))
}

func (s *Service) reportLocked() {
	if s.gauge != nil {
		s.gauge.SetActiveSessions(len(s.sessions))
	}
}

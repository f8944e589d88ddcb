package paymentgateway

import (
	"math/rand"
	"sync"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Decider определяет исход платежа
type Decider interface {
	Decide(req Request) domain.PaymentStatus
}

// FixedDecider всегда возвращает один и тот же исход
type FixedDecider domain.PaymentStatus

func (d FixedDecider) Decide(Request) domain.PaymentStatus {
	return domain.PaymentStatus(d)
}

// RandomDecider успех с вероятностью successRate, иначе равновероятно success/failed/verification_required
type RandomDecider struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	successRate float64
}

func NewRandomDecider(successRate float64, seed int64) *RandomDecider {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}
	return &RandomDecider{rnd: rand.New(rand.NewSource(seed)), successRate: successRate}
}

func (d *RandomDecider) Decide(Request) domain.PaymentStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rnd.Float64() < d.successRate {
		return domain.PaymentSuccess
	}
	scenarios := []domain.PaymentStatus{
		domain.PaymentSuccess,
		domain.PaymentFailed,
		domain.PaymentVerificationRequired,
	}
	return scenarios[d.rnd.Intn(len(scenarios))]
}

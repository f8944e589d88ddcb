package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

var (
	ErrUnknownExamOption = errors.New("pricing: unknown exam option")
	ErrUnknownCurrency   = errors.New("pricing: unknown currency")
)

// RatesProvider удаленная таблица курсов (ratesservice)
type RatesProvider interface {
	GetRatesWithGracefulDegradation(ctx context.Context) (map[domain.Currency]float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Config цены в базовой валюте и статические курсы
type Config struct {
	BasePrices  map[domain.ExamOption]float64
	Rates       map[domain.Currency]float64
	ZeroDecimal map[domain.Currency]bool
	// CacheTTL сколько держать удаленные курсы; 0 - запрашивать каждый раз
	CacheTTL time.Duration
}

// DefaultConfig таблицы из справочника domain
func DefaultConfig() Config {
	cfg := Config{
		BasePrices:  make(map[domain.ExamOption]float64),
		Rates:       make(map[domain.Currency]float64),
		ZeroDecimal: make(map[domain.Currency]bool),
	}
	for _, o := range domain.ExamOptions() {
		cfg.BasePrices[o.Code] = o.BasePrice
	}
	for _, c := range domain.Currencies() {
		cfg.Rates[c.Code] = c.Rate
		cfg.ZeroDecimal[c.Code] = c.ZeroDecimal
	}
	return cfg
}

// Lookup цена формата экзамена в валюте: base * rate с округлением по валюте
type Lookup struct {
	cfg    Config
	remote RatesProvider
	log    Logger

	mu        sync.Mutex
	cached    map[domain.Currency]float64
	fetchedAt time.Time
	now       func() time.Time
}

// NewLookup remote может быть nil - тогда используются только статические курсы
func NewLookup(cfg Config, remote RatesProvider, log Logger) *Lookup {
	return &Lookup{cfg: cfg, remote: remote, log: log, now: time.Now}
}

// BasePrice цена в базовой валюте
func (l *Lookup) BasePrice(option domain.ExamOption) (float64, error) {
	price, ok := l.cfg.BasePrices[option]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownExamOption, option)
	}
	return price, nil
}

// Decimals количество знаков после запятой для валюты
func (l *Lookup) Decimals(currency domain.Currency) int {
	if l.cfg.ZeroDecimal[currency] {
		return 0
	}
	return 2
}

// GetPrice возвращает base_price * rate(currency), округленную до 2 (или 0) знаков
func (l *Lookup) GetPrice(ctx context.Context, option domain.ExamOption, currency domain.Currency) (float64, error) {
	base, err := l.BasePrice(option)
	if err != nil {
		return 0, err
	}

	rates, err := l.Rates(ctx)
	if err != nil {
		return 0, err
	}
	rate, ok := rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}

	return Round(base*rate, l.Decimals(currency)), nil
}

// Rates таблица курсов: статическая, поверх нее удаленные значения, если сервис доступен
func (l *Lookup) Rates(ctx context.Context) (map[domain.Currency]float64, error) {
	rates := make(map[domain.Currency]float64, len(l.cfg.Rates))
	for c, r := range l.cfg.Rates {
		rates[c] = r
	}
	if l.remote == nil {
		return rates, nil
	}

	for c, r := range l.remoteRates(ctx) {
		if _, known := rates[c]; known {
			rates[c] = r
		}
	}
	return rates, nil
}

func (l *Lookup) remoteRates(ctx context.Context) map[domain.Currency]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil && l.cfg.CacheTTL > 0 && l.now().Sub(l.fetchedAt) < l.cfg.CacheTTL {
		return l.cached
	}

	remote, err := l.remote.GetRatesWithGracefulDegradation(ctx)
	if err != nil {
		if l.log != nil {
			l.log.Warn("Pricing: using static rates: %v", err)
		}
		return l.cached
	}

	l.cached = remote
	l.fetchedAt = l.now()
	return remote
}

// Round округление до decimals знаков, половина от нуля
func Round(amount float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(amount*p) / p
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Wizard       WizardConfig       `toml:"wizard"`
	Pricing      PricingConfig      `toml:"pricing"`
	Upload       UploadConfig       `toml:"upload"`
	Payment      PaymentConfig      `toml:"payment"`
	Mail         MailConfig         `toml:"mail"`
	RatesService RatesServiceConfig `toml:"rates_service"`
	Calendar     CalendarConfig     `toml:"calendar"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig реестр удержаний; пустой Addr - удержания только в памяти
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type WizardConfig struct {
	HoldDuration  int `toml:"hold_duration"`  // секунды
	IdleTimeout   int `toml:"idle_timeout"`   // секунды
	SweepInterval int `toml:"sweep_interval"` // секунды
	MaxSessions   int `toml:"max_sessions"`
}

// PricingConfig цены в базовой валюте; пустые таблицы берутся из справочника
type PricingConfig struct {
	BaseCurrency string             `toml:"base_currency"`
	BasePrices   map[string]float64 `toml:"base_prices"`
	Rates        map[string]float64 `toml:"rates"`
	ZeroDecimal  []string           `toml:"zero_decimal"`
	CacheTTL     int                `toml:"cache_ttl"` // секунды
}

type UploadConfig struct {
	MaxSize      int64    `toml:"max_size"` // байты
	AllowedTypes []string `toml:"allowed_types"`
}

// PaymentConfig mode: random или fixed
type PaymentConfig struct {
	ProcessingDelay int     `toml:"processing_delay"` // миллисекунды
	SuccessRate     float64 `toml:"success_rate"`
	Mode            string  `toml:"mode"`
	FixedOutcome    string  `toml:"fixed_outcome"`
	Seed            int64   `toml:"seed"`
	VerificationURL string  `toml:"verification_url"`
}

type MailConfig struct {
	DeliveryDelay int `toml:"delivery_delay"` // миллисекунды
	MaxResends    int `toml:"max_resends"`
}

// RatesServiceConfig пустой URL - только статические курсы
type RatesServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type CalendarConfig struct {
	UIDDomain string `toml:"uid_domain"`
	ProductID string `toml:"product_id"`
	Location  string `toml:"location"`
}

// RateLimitConfig лимит на загрузку документа и оплату, по IP
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

const (
	PaymentModeRandom = "random"
	PaymentModeFixed  = "fixed"
)

// Load читает конфигурацию из TOML-файла, заполняет значения по умолчанию и проверяет ее
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse то же, что Load, но из строки
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "exam_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{KeyPrefix: "exam-booking:hold:"},
		Logs:  LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "exam_booking_service",
		},
		Wizard: WizardConfig{
			HoldDuration:  int(domain.DefaultHoldDuration / time.Second),
			IdleTimeout:   1800,
			SweepInterval: 60,
		},
		Pricing: PricingConfig{BaseCurrency: string(domain.BaseCurrency), CacheTTL: 600},
		Upload: UploadConfig{
			MaxSize:      domain.MaxUploadSizeBytes,
			AllowedTypes: []string{"application/pdf", "image/jpeg", "image/jpg", "image/png"},
		},
		Payment: PaymentConfig{
			ProcessingDelay: 2000,
			SuccessRate:     0.8,
			Mode:            PaymentModeRandom,
		},
		Mail:         MailConfig{DeliveryDelay: 2000, MaxResends: 3},
		RatesService: RatesServiceConfig{Timeout: 5},
		Calendar: CalendarConfig{
			UIDDomain: "ielts-booking.com",
			ProductID: "-//IELTS Booking Platform//EN",
		},
		RateLimit: RateLimitConfig{RPS: 5, Burst: 10},
	}
}

// applyDefaults восстанавливает значения, обнуленные явными нулями в файле
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = def.Server.HTTPPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Logs.Level == "" {
		c.Logs.Level = def.Logs.Level
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = def.Metrics.ServiceName
	}
	if c.Wizard.HoldDuration == 0 {
		c.Wizard.HoldDuration = def.Wizard.HoldDuration
	}
	if c.Pricing.BaseCurrency == "" {
		c.Pricing.BaseCurrency = def.Pricing.BaseCurrency
	}
	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = def.Upload.MaxSize
	}
	if len(c.Upload.AllowedTypes) == 0 {
		c.Upload.AllowedTypes = def.Upload.AllowedTypes
	}
	if c.Payment.Mode == "" {
		c.Payment.Mode = def.Payment.Mode
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = def.Redis.KeyPrefix
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var errs []string

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Wizard.HoldDuration < 0 || c.Wizard.IdleTimeout < 0 || c.Wizard.SweepInterval < 0 {
		errs = append(errs, "wizard durations must not be negative")
	}
	if c.Wizard.MaxSessions < 0 {
		errs = append(errs, "wizard.max_sessions must not be negative")
	}
	if _, err := domain.ParseCurrency(c.Pricing.BaseCurrency); err != nil {
		errs = append(errs, fmt.Sprintf("pricing.base_currency: %v", err))
	}
	for option, price := range c.Pricing.BasePrices {
		if _, err := domain.ParseExamOption(option); err != nil {
			errs = append(errs, fmt.Sprintf("pricing.base_prices: %v", err))
		}
		if price <= 0 {
			errs = append(errs, fmt.Sprintf("pricing.base_prices.%s must be positive", option))
		}
	}
	for code, rate := range c.Pricing.Rates {
		if _, err := domain.ParseCurrency(code); err != nil {
			errs = append(errs, fmt.Sprintf("pricing.rates: %v", err))
		}
		if rate <= 0 {
			errs = append(errs, fmt.Sprintf("pricing.rates.%s must be positive", code))
		}
	}
	for _, code := range c.Pricing.ZeroDecimal {
		if _, err := domain.ParseCurrency(code); err != nil {
			errs = append(errs, fmt.Sprintf("pricing.zero_decimal: %v", err))
		}
	}
	if c.Upload.MaxSize < 0 {
		errs = append(errs, "upload.max_size must not be negative")
	}
	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		errs = append(errs, fmt.Sprintf("payment.success_rate %.2f must be within [0, 1]", c.Payment.SuccessRate))
	}
	switch c.Payment.Mode {
	case PaymentModeRandom:
	case PaymentModeFixed:
		if _, err := domain.ParsePaymentStatus(c.Payment.FixedOutcome); err != nil {
			errs = append(errs, fmt.Sprintf("payment.fixed_outcome: %v", err))
		}
	default:
		errs = append(errs, fmt.Sprintf("payment.mode %q must be %q or %q", c.Payment.Mode, PaymentModeRandom, PaymentModeFixed))
	}
	if c.Mail.MaxResends < 0 {
		errs = append(errs, "mail.max_resends must not be negative")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, "rate_limit values must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

// PricingTables таблицы цен для internal/pricing; пустые секции заменяются справочником
func (c *Config) PricingTables() (map[domain.ExamOption]float64, map[domain.Currency]float64, map[domain.Currency]bool) {
	prices := make(map[domain.ExamOption]float64)
	for _, o := range domain.ExamOptions() {
		prices[o.Code] = o.BasePrice
	}
	for code, price := range c.Pricing.BasePrices {
		if o, err := domain.ParseExamOption(code); err == nil {
			prices[o] = price
		}
	}

	rates := make(map[domain.Currency]float64)
	zero := make(map[domain.Currency]bool)
	for _, cur := range domain.Currencies() {
		rates[cur.Code] = cur.Rate
		zero[cur.Code] = cur.ZeroDecimal
	}
	for code, rate := range c.Pricing.Rates {
		if cur, err := domain.ParseCurrency(code); err == nil {
			rates[cur] = rate
		}
	}
	if len(c.Pricing.ZeroDecimal) > 0 {
		zero = make(map[domain.Currency]bool)
		for _, code := range c.Pricing.ZeroDecimal {
			if cur, err := domain.ParseCurrency(code); err == nil {
				zero[cur] = true
			}
		}
	}
	return prices, rates, zero
}

func seconds(n int) time.Duration      { return time.Duration(n) * time.Second }
func milliseconds(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (w WizardConfig) HoldDurationValue() time.Duration { return seconds(w.HoldDuration) }

func (w WizardConfig) IdleTimeoutValue() time.Duration { return seconds(w.IdleTimeout) }

func (w WizardConfig) SweepIntervalValue() time.Duration { return seconds(w.SweepInterval) }

func (p PricingConfig) CacheTTLValue() time.Duration { return seconds(p.CacheTTL) }

func (p PaymentConfig) ProcessingDelayValue() time.Duration { return milliseconds(p.ProcessingDelay) }

func (m MailConfig) DeliveryDelayValue() time.Duration { return milliseconds(m.DeliveryDelay) }

func (r RatesServiceConfig) TimeoutValue() time.Duration { return seconds(r.Timeout) }

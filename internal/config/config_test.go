package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "exam"
password = "secret"
dbname = "booking"

[wizard]
hold_duration = 600

[payment]
mode = "fixed"
fixed_outcome = "failed"
processing_delay = 0

[pricing]
base_prices = { oral = 80.0 }
rates = { EUR = 0.9 }
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "host=db port=5433 user=exam password=secret dbname=booking sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 10*time.Minute, cfg.Wizard.HoldDurationValue())
	assert.Equal(t, 30*time.Minute, cfg.Wizard.IdleTimeoutValue())
	assert.Equal(t, PaymentModeFixed, cfg.Payment.Mode)
	assert.Equal(t, time.Duration(0), cfg.Payment.ProcessingDelayValue())
	assert.Equal(t, 2*time.Second, cfg.Mail.DeliveryDelayValue())
	assert.Equal(t, 3, cfg.Mail.MaxResends)
	assert.Equal(t, []string{"application/pdf", "image/jpeg", "image/jpg", "image/png"}, cfg.Upload.AllowedTypes)

	prices, rates, zero := cfg.PricingTables()
	assert.Equal(t, 80.0, prices[domain.ExamOral])
	assert.Equal(t, 165.0, prices[domain.ExamWritten])
	assert.Equal(t, 0.9, rates[domain.Currency("EUR")])
	assert.Equal(t, 1.0, rates[domain.BaseCurrency])
	assert.True(t, zero[domain.Currency("JPY")])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, domain.DefaultHoldDuration, cfg.Wizard.HoldDurationValue())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, PaymentModeRandom, cfg.Payment.Mode)
	assert.Equal(t, 0.8, cfg.Payment.SuccessRate)
	assert.Equal(t, int64(domain.MaxUploadSizeBytes), cfg.Upload.MaxSize)
	assert.Equal(t, "exam-booking:hold:", cfg.Redis.KeyPrefix)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown base currency", "[pricing]\nbase_currency = \"XYZ\""},
		{"negative price", "[pricing]\nbase_prices = { oral = -1.0 }"},
		{"unknown exam option", "[pricing]\nbase_prices = { speaking = 10.0 }"},
		{"success rate above one", "[payment]\nsuccess_rate = 1.5"},
		{"unknown payment mode", "[payment]\nmode = \"always\""},
		{"fixed mode without outcome", "[payment]\nmode = \"fixed\""},
		{"port out of range", "[server]\nhttp_port = 70000"},
		{"negative rate limit", "[rate_limit]\nrps = -1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("[server\nhttp_port = ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

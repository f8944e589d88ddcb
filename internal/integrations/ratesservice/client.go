package ratesservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом курсов валют
type Client struct {
	baseURL    string
	base       domain.Currency
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, base domain.Currency, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    base,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetRates получает таблицу курсов относительно базовой валюты
// Неизвестные коды валют пропускаются
func (c *Client) GetRates(ctx context.Context) (map[domain.Currency]float64, error) {
	url := fmt.Sprintf("%s/rates?base=%s", c.baseURL, c.base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload RatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if payload.Base != "" && !strings.EqualFold(payload.Base, string(c.base)) {
		return nil, fmt.Errorf("%w: base currency %s, expected %s", ErrInvalidResponse, payload.Base, c.base)
	}

	rates := make(map[domain.Currency]float64, len(payload.Rates))
	for code, rate := range payload.Rates {
		currency, err := domain.ParseCurrency(code)
		if err != nil {
			continue
		}
		if rate <= 0 {
			return nil, fmt.Errorf("%w: non-positive rate %v for %s", ErrInvalidResponse, rate, code)
		}
		rates[currency] = rate
	}
	rates[c.base] = 1

	return rates, nil
}

// GetRatesWithGracefulDegradation получает курсы с graceful degradation
// При недоступности сервиса возвращает ErrServiceDegraded, вызывающий использует статические курсы
func (c *Client) GetRatesWithGracefulDegradation(ctx context.Context) (map[domain.Currency]float64, error) {
	rates, err := c.GetRates(ctx)
	if err != nil {
		c.log.Error("Rates service unavailable, applying graceful degradation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.log.Info("Successfully fetched %d exchange rates", len(rates))
	return rates, nil
}

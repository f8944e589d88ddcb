package get_rates

// RateResponse курс валюты относительно базовой
type RateResponse struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Rate        float64 `json:"rate"`
	ZeroDecimal bool    `json:"zeroDecimal"`
}

// RatesResponse таблица курсов
type RatesResponse struct {
	BaseCurrency string         `json:"baseCurrency"`
	Rates        []RateResponse `json:"rates"`
}

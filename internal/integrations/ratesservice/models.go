package ratesservice

// RatesResponse ответ GET /rates
type RatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// ErrorResponse модель ошибки от сервиса курсов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

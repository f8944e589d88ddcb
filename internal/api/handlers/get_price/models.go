package get_price

// PriceResponse цена формата экзамена в запрошенной валюте
type PriceResponse struct {
	ExamOption     string  `json:"examOption"`
	ExamOptionName string  `json:"examOptionName"`
	BasePrice      float64 `json:"basePrice"`
	BaseCurrency   string  `json:"baseCurrency"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currencySymbol"`
}

package wompi

import "github.com/shopspring/decimal"

// PaymentRequest данные для создания онлайн-платежа
type PaymentRequest struct {
	Amount        decimal.Decimal
	Currency      string
	Reference     string
	Description   string
	CustomerEmail string
	CustomerName  string
}

// Payment созданный платеж
type Payment struct {
	TransactionID string
	PaymentURL    string
	Status        string
}

// paymentLinkRequest тело запроса POST /payment_links
type paymentLinkRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	SingleUse     bool   `json:"single_use"`
	CollectInfo   bool   `json:"collect_shipping"`
	Currency      string `json:"currency"`
	AmountInCents int64  `json:"amount_in_cents"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	Reference     string `json:"reference"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// paymentLinkResponse ответ шлюза
type paymentLinkResponse struct {
	Data struct {
		ID     string `json:"id"`
		Active bool   `json:"active"`
	} `json:"data"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Error struct {
		Type     string      `json:"type"`
		Reason   string      `json:"reason"`
		Messages interface{} `json:"messages,omitempty"`
	} `json:"error"`
}

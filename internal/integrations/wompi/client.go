package wompi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	checkoutBaseURL = "https://checkout.wompi.co/l/"
	statusPending   = "PENDING"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного шлюза Wompi
type Client struct {
	baseURL     string
	privateKey  string
	redirectURL string
	httpClient  *http.Client
	log         Logger
}

// NewClient создает новый экземпляр клиента Wompi
func NewClient(baseURL, privateKey, redirectURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		privateKey:  privateKey,
		redirectURL: redirectURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreatePayment создает одноразовую платежную ссылку на сумму записи.
// Повторов нет: при ошибке вызывающая сторона откатывает запись
func (c *Client) CreatePayment(ctx context.Context, p PaymentRequest) (*Payment, error) {
	body, err := json.Marshal(paymentLinkRequest{
		Name:          p.Reference,
		Description:   p.Description,
		SingleUse:     true,
		Currency:      p.Currency,
		AmountInCents: p.Amount.Shift(2).Round(0).IntPart(),
		RedirectURL:   c.redirectURL,
		Reference:     p.Reference,
		CustomerEmail: p.CustomerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %w", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment_links", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.privateKey)

	c.log.Info("Creating payment link reference=%s amount=%s %s", p.Reference, p.Amount.String(), p.Currency)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("%w: %s %s", ErrPaymentDeclined, errResp.Error.Type, errResp.Error.Reason)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var link paymentLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}
	if link.Data.ID == "" {
		return nil, fmt.Errorf("%w: empty payment link id", ErrInvalidResponse)
	}

	c.log.Info("Payment link created reference=%s id=%s", p.Reference, link.Data.ID)

	return &Payment{
		TransactionID: link.Data.ID,
		PaymentURL:    checkoutBaseURL + link.Data.ID,
		Status:        statusPending,
	}, nil
}

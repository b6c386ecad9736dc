// Package razorpay creates payment orders with the provider's REST API.
package razorpay

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"examreg/internal/platform/config"
	"examreg/internal/platform/tracer"
	dErrors "examreg/pkg/domain-errors"
)

const ordersPath = "/v1/orders"

var (
	minorUnits = decimal.NewFromInt(100)
	maxMinor   = decimal.NewFromInt(math.MaxInt64)
)

// OrderRequest carries the amount in major units (rupees, dollars).
type OrderRequest struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
}

// Order is the provider's order. Raw holds the response body verbatim.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	Raw      []byte `json:"-"`
}

type orderPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type errorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type Client struct {
	baseURL       string
	authorization string
	timeout       time.Duration
	client        *fasthttp.Client
	logger        *slog.Logger
	tracer        tracer.Tracer
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func New(cfg config.RazorpayConfig, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:       cfg.BaseURL,
		authorization: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.KeyID+":"+cfg.KeySecret)),
		timeout:       timeout,
		client: &fasthttp.Client{
			Name:                "examreg",
			MaxIdleConnDuration: time.Minute,
		},
		logger: slog.Default(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToMinorUnits converts a major-unit amount to the provider's integer minor
// units. Amounts with more than two decimal places are rejected.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Mul(minorUnits)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than two decimal places", amount)
	}
	if !minor.IsPositive() {
		return 0, fmt.Errorf("amount must be positive")
	}
	if minor.GreaterThan(maxMinor) {
		return 0, fmt.Errorf("amount %s is too large", amount)
	}
	return minor.IntPart(), nil
}

func (c *Client) CreateOrder(ctx context.Context, in OrderRequest) (order *Order, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanProviderCreate)
	defer func() { span.End(err) }()

	amount, err := ToMinorUnits(in.Amount)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	body, err := sonic.Marshal(orderPayload{Amount: amount, Currency: in.Currency, Receipt: in.Receipt})
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(c.baseURL + ordersPath)
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", c.authorization)
	req.SetBody(body)

	start := time.Now()
	if err := c.client.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		c.logger.ErrorContext(ctx, "order request failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "payment provider timed out")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamFailure, "payment provider unavailable")
	}

	status := resp.StatusCode()
	raw := append([]byte(nil), resp.Body()...)
	if status < 200 || status > 299 {
		msg := providerMessage(raw, status)
		c.logger.WarnContext(ctx, "order rejected by provider", "status", status, "error", msg)
		return nil, dErrors.New(dErrors.CodeUpstreamFailure, msg)
	}

	order = &Order{}
	if err := sonic.Unmarshal(raw, order); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamFailure, "payment provider returned an invalid order")
	}
	order.Raw = raw

	c.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"amount", order.Amount,
		"currency", order.Currency,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return order, nil
}

// deadline is the earlier of the context deadline and the client timeout.
func (c *Client) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(d) {
		return dl
	}
	return d
}

func providerMessage(raw []byte, status int) string {
	var eb errorBody
	if err := sonic.Unmarshal(raw, &eb); err == nil && eb.Error.Description != "" {
		return eb.Error.Description
	}
	return fmt.Sprintf("payment provider returned status %d", status)
}

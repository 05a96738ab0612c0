// Package mollie is a client for the Mollie iDEAL XML API: list the banks,
// create an order and check whether it was paid.
package mollie

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/mollie-ideal/internal/infrastructure/gateway"
)

// Requester sends one operation to the gateway and returns the raw XML body.
type Requester interface {
	Request(ctx context.Context, operation string, params Params) (string, error)
}

type Client struct {
	cfg        Config
	requester  Requester
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the default client, whose timeout is Config.Timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRequester bypasses HTTP entirely.
func WithRequester(requester Requester) Option {
	return func(c *Client) {
		c.requester = requester
	}
}

// NewClient validates cfg and keeps a copy of it; later changes to cfg do not
// affect the client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Update(); err != nil {
		return nil, err
	}
	if cfg.ProfileKey != nil {
		key := *cfg.ProfileKey
		cfg.ProfileKey = &key
	}

	c := &Client{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.requester == nil {
		c.requester = gateway.NewHTTPClient(c.cfg, c.httpClient, c.logger)
	}

	return c, nil
}

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() Config {
	cfg := c.cfg
	if cfg.ProfileKey != nil {
		key := *cfg.ProfileKey
		cfg.ProfileKey = &key
	}
	return cfg
}

func (c *Client) Banks(ctx context.Context) ([]Bank, error) {
	body, err := c.requester.Request(ctx, gateway.OpBanks, c.BanksParams())
	if err != nil {
		return nil, err
	}
	return gateway.ParseBanks(body)
}

type OrderOption func(*NewOrderRequest)

// WithReturnURL overrides the configured return URL for one order.
func WithReturnURL(u string) OrderOption {
	return func(r *NewOrderRequest) {
		r.ReturnURL = u
	}
}

// WithReportURL overrides the configured report URL for one order.
func WithReportURL(u string) OrderOption {
	return func(r *NewOrderRequest) {
		r.ReportURL = u
	}
}

// NewOrder creates a payment of amount cents at the bank identified by bankID.
func (c *Client) NewOrder(ctx context.Context, amount int64, description, bankID string, opts ...OrderOption) (*Order, error) {
	return c.NewOrderFromRequest(ctx, newOrderRequest(amount, description, bankID, opts))
}

func (c *Client) NewOrderFromRequest(ctx context.Context, req NewOrderRequest) (*Order, error) {
	params, err := c.NewOrderRequestParams(req)
	if err != nil {
		return nil, err
	}

	body, err := c.requester.Request(ctx, gateway.OpNewOrder, params)
	if err != nil {
		return nil, err
	}
	return gateway.ParseOrder(body)
}

func (c *Client) CheckOrder(ctx context.Context, transactionID string) (*OrderResult, error) {
	params, err := c.CheckOrderParams(transactionID)
	if err != nil {
		return nil, err
	}

	body, err := c.requester.Request(ctx, gateway.OpCheckOrder, params)
	if err != nil {
		return nil, err
	}
	return gateway.ParseOrderResult(body)
}

func (c *Client) BanksParams() Params {
	return gateway.BanksParams(c.cfg)
}

func (c *Client) NewOrderParams(amount int64, description, bankID string, opts ...OrderOption) (Params, error) {
	return c.NewOrderRequestParams(newOrderRequest(amount, description, bankID, opts))
}

func (c *Client) NewOrderRequestParams(req NewOrderRequest) (Params, error) {
	return gateway.NewOrderParams(c.cfg, req)
}

func (c *Client) CheckOrderParams(transactionID string) (Params, error) {
	return gateway.CheckOrderParams(c.cfg, transactionID)
}

func newOrderRequest(amount int64, description, bankID string, opts []OrderOption) NewOrderRequest {
	req := NewOrderRequest{
		Amount:      amount,
		Description: description,
		BankID:      bankID,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

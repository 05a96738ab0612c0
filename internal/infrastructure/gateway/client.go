package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/DanielPopoola/mollie-ideal/internal/config"
	"github.com/DanielPopoola/mollie-ideal/internal/domain"
)

const maxErrorBody = 512

// HTTPClient sends one GET per operation to the configured endpoint.
type HTTPClient struct {
	cfg        config.GatewayConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient uses httpClient when given, otherwise a client bounded by cfg.Timeout.
func NewHTTPClient(cfg config.GatewayConfig, httpClient *http.Client, logger *slog.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPClient{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Request returns the raw XML body of the gateway's answer.
func (c *HTTPClient) Request(ctx context.Context, operation string, params Params) (string, error) {
	target, err := c.requestURL(operation, params)
	if err != nil {
		return "", &domain.TransportError{Operation: operation, Err: err}
	}

	requestID := uuid.NewString()
	logger := c.logger.With("operation", operation, "request_id", requestID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &domain.TransportError{Operation: operation, Err: fmt.Errorf("error creating request: %w", err)}
	}
	httpReq.Header.Set("Accept", "text/xml")
	httpReq.Header.Set("X-Request-Id", requestID)

	logger.Debug("sending gateway request", "params", params.redacted())

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("gateway request failed", "error", err, "duration", time.Since(start))
		return "", &domain.TransportError{Operation: operation, Err: fmt.Errorf("error making request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("reading gateway response failed", "error", err)
		return "", &domain.TransportError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("error reading response: %w", err),
		}
	}

	if resp.StatusCode/100 != 2 {
		logger.Error("gateway returned non-2xx status", "status", resp.StatusCode, "duration", time.Since(start))
		return "", &domain.TransportError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBody),
		}
	}

	logger.Info("gateway request completed", "status", resp.StatusCode, "duration", time.Since(start))
	return string(body), nil
}

func (c *HTTPClient) requestURL(operation string, params Params) (string, error) {
	u, err := url.Parse(c.cfg.Endpoint())
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}

	q := u.Query()
	q.Set(ParamAction, operation)
	if c.cfg.TestMode {
		q.Set(ParamTestMode, "true")
	}
	for key, values := range params.Values() {
		q[key] = values
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// redacted drops the profile key before params reach the logs.
func (p Params) redacted() url.Values {
	values := p.Values()
	if values.Has(ParamProfileKey) {
		values.Set(ParamProfileKey, "[redacted]")
	}
	return values
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

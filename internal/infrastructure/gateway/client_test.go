package gateway_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/mollie-ideal/internal/domain"
	"github.com/DanielPopoola/mollie-ideal/internal/infrastructure/gateway"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordedRequest struct {
	method    string
	path      string
	query     url.Values
	requestID string
}

type requestRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (r *requestRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, recordedRequest{
		method:    req.Method,
		path:      req.URL.Path,
		query:     req.URL.Query(),
		requestID: req.Header.Get("X-Request-Id"),
	})
}

func (r *requestRecorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.requests...)
}

func newGatewayServer(t *testing.T, status int, body string) (*httptest.Server, *requestRecorder) {
	t.Helper()
	recorder := &requestRecorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder.record(r)
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, recorder
}

func TestHTTPClient_Request(t *testing.T) {
	t.Run("sends operation and params as a query string", func(t *testing.T) {
		server, requests := newGatewayServer(t, http.StatusOK, fixture(t, "banks.xml"))
		cfg := testConfig()
		cfg.BaseURL = server.URL + "/xml/ideal"
		client := gateway.NewHTTPClient(cfg, nil, discardLogger)

		body, err := client.Request(context.Background(), gateway.OpBanks, gateway.BanksParams(cfg))

		require.NoError(t, err)
		assert.Equal(t, fixture(t, "banks.xml"), body)
		require.Len(t, requests.all(), 1)
		got := requests.all()[0]
		assert.Equal(t, http.MethodGet, got.method)
		assert.Equal(t, "/xml/ideal", got.path)
		assert.Equal(t, "banklist", got.query.Get("a"))
		assert.Equal(t, "987654", got.query.Get("partnerid"))
		assert.False(t, got.query.Has("testmode"))
		assert.NotEmpty(t, got.requestID)
	})

	t.Run("test mode uses the sandbox endpoint", func(t *testing.T) {
		production, productionRequests := newGatewayServer(t, http.StatusOK, fixture(t, "banks.xml"))
		sandbox, sandboxRequests := newGatewayServer(t, http.StatusOK, fixture(t, "banks.xml"))
		cfg := testConfig()
		cfg.BaseURL = production.URL
		cfg.TestBaseURL = sandbox.URL
		cfg.TestMode = true
		client := gateway.NewHTTPClient(cfg, nil, discardLogger)

		_, err := client.Request(context.Background(), gateway.OpBanks, gateway.BanksParams(cfg))

		require.NoError(t, err)
		assert.Empty(t, productionRequests.all())
		require.Len(t, sandboxRequests.all(), 1)
		assert.Equal(t, "true", sandboxRequests.all()[0].query.Get("testmode"))
	})

	t.Run("non 2xx status is a transport error", func(t *testing.T) {
		server, _ := newGatewayServer(t, http.StatusBadGateway, "upstream unavailable")
		cfg := testConfig()
		cfg.BaseURL = server.URL
		client := gateway.NewHTTPClient(cfg, nil, discardLogger)

		body, err := client.Request(context.Background(), gateway.OpCheckOrder, gateway.BanksParams(cfg))

		assert.Empty(t, body)
		transportErr, ok := domain.IsTransportError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
		assert.Equal(t, "upstream unavailable", transportErr.Body)
		assert.Equal(t, gateway.OpCheckOrder, transportErr.Operation)
	})

	t.Run("connection refused is a transport error", func(t *testing.T) {
		server, _ := newGatewayServer(t, http.StatusOK, "")
		cfg := testConfig()
		cfg.BaseURL = server.URL
		server.Close()
		client := gateway.NewHTTPClient(cfg, nil, discardLogger)

		_, err := client.Request(context.Background(), gateway.OpBanks, gateway.BanksParams(cfg))

		transportErr, ok := domain.IsTransportError(err)
		require.True(t, ok)
		assert.Zero(t, transportErr.StatusCode)
		assert.Error(t, transportErr.Unwrap())
	})

	t.Run("timeout is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		t.Cleanup(server.Close)
		cfg := testConfig()
		cfg.BaseURL = server.URL
		cfg.Timeout = 20 * time.Millisecond
		client := gateway.NewHTTPClient(cfg, nil, discardLogger)

		_, err := client.Request(context.Background(), gateway.OpBanks, gateway.BanksParams(cfg))

		_, ok := domain.IsTransportError(err)
		assert.True(t, ok)
	})

	t.Run("cancelled context is a transport error", func(t *testing.T) {
		server, requests := newGatewayServer(t, http.StatusOK, fixture(t, "banks.xml"))
		cfg := testConfig()
		cfg.BaseURL = server.URL
		client := gateway.NewHTTPClient(cfg, nil, discardLogger)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Request(ctx, gateway.OpBanks, gateway.BanksParams(cfg))

		transportErr, ok := domain.IsTransportError(err)
		require.True(t, ok)
		assert.ErrorIs(t, transportErr, context.Canceled)
		assert.Empty(t, requests.all())
	})
}

func TestHTTPClient_RequestIDsAreUnique(t *testing.T) {
	server, requests := newGatewayServer(t, http.StatusOK, fixture(t, "banks.xml"))
	cfg := testConfig()
	cfg.BaseURL = server.URL
	client := gateway.NewHTTPClient(cfg, nil, discardLogger)

	for i := 0; i < 2; i++ {
		_, err := client.Request(context.Background(), gateway.OpBanks, gateway.BanksParams(cfg))
		require.NoError(t, err)
	}

	require.Len(t, requests.all(), 2)
	assert.NotEqual(t, requests.all()[0].requestID, requests.all()[1].requestID)
}

package api_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvlabs/yampi2bling/internal/adapters/frenet"
	"github.com/pvlabs/yampi2bling/internal/api"
	"github.com/pvlabs/yampi2bling/internal/api/dto"
	"github.com/pvlabs/yampi2bling/internal/application/quote"
	"github.com/pvlabs/yampi2bling/internal/application/service"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

// noQuoter fails every call; router-level tests never reach the carrier.
type noQuoter struct{}

func (noQuoter) Quote(ctx context.Context, req frenet.QuoteRequest) (*frenet.QuoteResponse, error) {
	return &frenet.QuoteResponse{}, nil
}

func newTestServer(t *testing.T) (*api.Server, *service.Converter) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	engine := quote.NewEngine(noQuoter{}, time.Millisecond, logger)
	converter := service.NewConverter(engine, logger)
	server := api.NewServer(api.DefaultConfig(), converter, logger)
	return server, converter
}

func TestServer_HealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.HealthResponse
	err := json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response.Status)
}

func TestServer_OrdersEndpoint(t *testing.T) {
	server, converter := newTestServer(t)
	require.NoError(t, converter.LoadRecords([]pedido.Record{
		{ID: "1001", SKU: "567-PVLC", Quantidade: "1"},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.OrdersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}

func TestServer_QuoteStatusEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.QuoteStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "idle", response.Status)
}

func TestServer_CORSHeaders(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_UnknownRoute(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

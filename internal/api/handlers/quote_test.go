package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvlabs/yampi2bling/internal/api/dto"
	"github.com/pvlabs/yampi2bling/internal/api/handlers"
	"github.com/pvlabs/yampi2bling/internal/application/service"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

func TestQuoteHandler_Start(t *testing.T) {
	t.Run("rejects a run without records", func(t *testing.T) {
		handler := handlers.NewQuoteHandler(newTestConverter(t))

		req := httptest.NewRequest(http.MethodPost, "/api/quote", nil)
		rec := httptest.NewRecorder()

		handler.Start(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("accepts a run and reports running", func(t *testing.T) {
		converter := newTestConverter(t)
		require.NoError(t, converter.LoadRecords([]pedido.Record{
			{ID: "1001", SKU: "567-PVLC", Quantidade: "1", EntregaCEP: "01310-100"},
		}))
		handler := handlers.NewQuoteHandler(converter)

		req := httptest.NewRequest(http.MethodPost, "/api/quote", nil)
		rec := httptest.NewRecorder()

		handler.Start(rec, req)

		require.Equal(t, http.StatusAccepted, rec.Code)

		var response dto.StartQuoteResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.NotEmpty(t, response.JobID)
		assert.Equal(t, "running", response.Status)
	})
}

func TestQuoteHandler_Status(t *testing.T) {
	t.Run("reports idle before any run", func(t *testing.T) {
		handler := handlers.NewQuoteHandler(newTestConverter(t))

		req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
		rec := httptest.NewRecorder()

		handler.Status(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.QuoteStatusResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "idle", response.Status)
		assert.Nil(t, response.Result)
		assert.Nil(t, response.StartedAt)
	})

	t.Run("reports a finished run with result", func(t *testing.T) {
		converter := newTestConverter(t)
		require.NoError(t, converter.LoadRecords([]pedido.Record{
			{ID: "1001", SKU: "567-PVLC", Quantidade: "1", EntregaCEP: "01310-100"},
			{ID: "1002", SKU: "566-PVLC", Quantidade: "1", EntregaCEP: "bogus"},
		}))
		_, err := converter.StartQuote()
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			return converter.QuoteStatus().Status == service.StatusDone
		}, 2*time.Second, 5*time.Millisecond)

		handler := handlers.NewQuoteHandler(converter)
		req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
		rec := httptest.NewRecorder()

		handler.Status(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.QuoteStatusResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "done", response.Status)
		assert.Equal(t, 100, response.Progress.Percent)
		require.NotNil(t, response.Result)
		assert.Equal(t, 1, response.Result.QuotedCount)
		assert.Equal(t, 1, response.Result.SkippedCount)
		require.NotNil(t, response.StartedAt)
		require.NotNil(t, response.CompletedAt)
	})
}

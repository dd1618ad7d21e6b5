package esi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ganonim/eve-blueprint-master/internal/adapters/esi"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
	"github.com/ganonim/eve-blueprint-master/internal/domain/shared"
)

func newTestClient(serverURL string) *esi.Client {
	return esi.NewClient(esi.ClientConfig{
		BaseURL:     serverURL,
		MaxAttempts: 3,
		RetryDelay:  time.Second,
		RateLimit:   1000,
		RateBurst:   1000,
	}, shared.NewMockClock(time.Now()), zap.NewNop(), nil)
}

func TestFetchLowestSell_PicksCheapestOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets/10000002/orders/", r.URL.Path)
		assert.Equal(t, "sell", r.URL.Query().Get("order_type"))
		assert.Equal(t, "34", r.URL.Query().Get("type_id"))
		w.Write([]byte(`[{"price": 5.1}, {"price": 4.5}, {"price": 6.0}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	price, err := client.FetchLowestSell(context.Background(), 34, 10000002)

	require.NoError(t, err)
	assert.Equal(t, 4.5, price)
}

func TestFetchLowestSell_EmptyOrderBook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchLowestSell(context.Background(), 34, 10000002)

	assert.True(t, errors.Is(err, market.ErrPriceUnavailable))
}

func TestFetchLowestSell_GlobalMarketUsesPriceSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets/prices/", r.URL.Path)
		w.Write([]byte(`[
			{"type_id": 35, "average_price": 10.2},
			{"type_id": 34, "average_price": 4.5}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	price, err := client.FetchLowestSell(context.Background(), 34, market.GlobalMarket)

	require.NoError(t, err)
	assert.Equal(t, 4.5, price)
}

func TestFetchLowestSell_TypeAbsentFromGlobalSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"type_id": 35, "average_price": 10.2}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchLowestSell(context.Background(), 34, market.GlobalMarket)

	assert.True(t, errors.Is(err, market.ErrPriceUnavailable))
}

func TestFetchLowestSell_RetriesServerFaultsThenGivesUp(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchLowestSell(context.Background(), 34, 10000002)

	assert.True(t, errors.Is(err, market.ErrPriceUnavailable))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestFetchLowestSell_RecoversWithinRetryBudget(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"price": 4.5}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	price, err := client.FetchLowestSell(context.Background(), 34, 10000002)

	require.NoError(t, err)
	assert.Equal(t, 4.5, price)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestFetchLowestSell_ClientErrorFailsWithoutRetry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchLowestSell(context.Background(), 34, 10000002)

	require.Error(t, err)
	assert.False(t, errors.Is(err, market.ErrPriceUnavailable))
	assert.Equal(t, int32(1), attempts.Load())
}

func TestFetchLowestSell_DecodeErrorFailsWithoutRetry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchLowestSell(context.Background(), 34, 10000002)

	require.Error(t, err)
	assert.False(t, errors.Is(err, market.ErrPriceUnavailable))
	assert.Equal(t, int32(1), attempts.Load())
}

package esi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ganonim/eve-blueprint-master/internal/adapters/metrics"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
	"github.com/ganonim/eve-blueprint-master/internal/domain/shared"
)

const (
	defaultBaseURL     = "https://esi.evetech.net/latest"
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
	defaultRateLimit   = 20
	defaultRateBurst   = 20

	endpointRegionOrders = "region_orders"
	endpointGlobalPrices = "global_prices"
)

// ClientConfig holds the tunable knobs of the market client
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	RateLimit   float64
	RateBurst   int
	MaxAttempts int
	RetryDelay  time.Duration
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = defaultRateLimit
	}
	if c.RateBurst <= 0 {
		c.RateBurst = defaultRateBurst
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	return c
}

// Client fetches market prices from the EVE Swagger Interface. It
// implements market.PriceSource. Server faults are retried a fixed
// number of times with a fixed delay; client errors fail immediately.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	maxAttempts int
	retryDelay  time.Duration
	clock       shared.Clock
	logger      *zap.Logger
	metrics     *metrics.MarketMetrics
}

// NewClient creates a new market client. A nil clock selects the real
// clock and a nil metrics collector disables recording.
func NewClient(cfg ClientConfig, clock shared.Clock, logger *zap.Logger, collector *metrics.MarketMetrics) *Client {
	cfg = cfg.withDefaults()
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		baseURL:     cfg.BaseURL,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		clock:       clock,
		logger:      logger,
		metrics:     collector,
	}
}

// FetchLowestSell returns the lowest sell price for a type. A region id
// of market.GlobalMarket selects the global average price table instead
// of a regional order book.
func (c *Client) FetchLowestSell(ctx context.Context, typeID, regionID int64) (float64, error) {
	if regionID == market.GlobalMarket {
		return c.globalAveragePrice(ctx, typeID)
	}
	return c.lowestSellOrder(ctx, typeID, regionID)
}

// lowestSellOrder scans the region's sell order book for one type and
// returns the cheapest listing
func (c *Client) lowestSellOrder(ctx context.Context, typeID, regionID int64) (float64, error) {
	path := fmt.Sprintf("/markets/%d/orders/?%s", regionID, url.Values{
		"order_type": {"sell"},
		"type_id":    {fmt.Sprintf("%d", typeID)},
	}.Encode())

	var orders []struct {
		Price float64 `json:"price"`
	}
	if err := c.get(ctx, endpointRegionOrders, path, &orders); err != nil {
		return 0, err
	}

	if len(orders) == 0 {
		return 0, fmt.Errorf("no sell orders for type %d in region %d: %w",
			typeID, regionID, market.ErrPriceUnavailable)
	}

	lowest := orders[0].Price
	for _, order := range orders[1:] {
		if order.Price < lowest {
			lowest = order.Price
		}
	}
	return lowest, nil
}

// globalAveragePrice looks one type up in the game-wide price summary
func (c *Client) globalAveragePrice(ctx context.Context, typeID int64) (float64, error) {
	var entries []struct {
		TypeID       int64   `json:"type_id"`
		AveragePrice float64 `json:"average_price"`
	}
	if err := c.get(ctx, endpointGlobalPrices, "/markets/prices/", &entries); err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if entry.TypeID == typeID {
			return entry.AveragePrice, nil
		}
	}
	return 0, fmt.Errorf("type %d absent from global price summary: %w",
		typeID, market.ErrPriceUnavailable)
}

// get performs a rate-limited GET with retries on server faults. Only
// 5xx responses are retried; everything else settles on first contact.
func (c *Client) get(ctx context.Context, endpoint, path string, result interface{}) error {
	var lastStatus int

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.metrics.ObserveRetry()
			c.logger.Debug("retrying market request",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt),
				zap.Int("last_status", lastStatus))
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.metrics.ObserveRequest(endpoint, metrics.OutcomeNetworkError)
			return fmt.Errorf("request failed: %w", err)
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastStatus = resp.StatusCode
			c.metrics.ObserveRequest(endpoint, metrics.OutcomeServerError)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			c.metrics.ObserveRequest(endpoint, metrics.OutcomeClientError)
			return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			resp.Body.Close()
			c.metrics.ObserveRequest(endpoint, metrics.OutcomeDecodeError)
			return fmt.Errorf("failed to decode response: %w", err)
		}
		resp.Body.Close()

		c.metrics.ObserveRequest(endpoint, metrics.OutcomeOK)
		return nil
	}

	return fmt.Errorf("%s failed after %d attempts, last status %d: %w",
		endpoint, c.maxAttempts, lastStatus, market.ErrPriceUnavailable)
}

// sleep waits through the injected clock so tests can run instantly
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	done := make(chan struct{})
	go func() {
		c.clock.Sleep(d)
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

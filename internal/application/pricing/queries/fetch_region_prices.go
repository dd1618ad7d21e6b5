package queries

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/ganonim/eve-blueprint-master/internal/application/common"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

// DefaultMaterialConcurrency bounds per-material fetches within one region
const DefaultMaterialConcurrency = 10

// FetchRegionPricesQuery requests the lowest sell prices for a set of
// material type ids within one region
type FetchRegionPricesQuery struct {
	TypeIDs     []int64
	RegionID    int64
	Concurrency int64
}

// FetchRegionPricesResponse carries a complete region price map
type FetchRegionPricesResponse struct {
	Prices market.RegionPriceMap
}

// FetchRegionPricesHandler is the region price aggregator: it fans the
// material list out against the price source under a bounded admission
// gate and either returns a complete price map or rejects the region.
type FetchRegionPricesHandler struct {
	prices market.PriceSource
	logger *zap.Logger
}

// NewFetchRegionPricesHandler creates a new aggregator handler
func NewFetchRegionPricesHandler(prices market.PriceSource, logger *zap.Logger) *FetchRegionPricesHandler {
	return &FetchRegionPricesHandler{
		prices: prices,
		logger: logger,
	}
}

// Handle executes the aggregation. A material whose price comes back
// absent or zero renders the whole map incomplete and the handler
// returns market.ErrIncompletePriceData, never a partially filled map.
func (h *FetchRegionPricesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*FetchRegionPricesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	limit := query.Concurrency
	if limit <= 0 {
		limit = DefaultMaterialConcurrency
	}

	var (
		sem      = semaphore.NewWeighted(limit)
		wg       sync.WaitGroup
		mu       sync.Mutex
		priceMap = make(market.RegionPriceMap, len(query.TypeIDs))
	)

	var admissionErr error
	for _, typeID := range query.TypeIDs {
		if err := sem.Acquire(ctx, 1); err != nil {
			admissionErr = err
			break
		}

		wg.Add(1)
		go func(typeID int64) {
			defer wg.Done()
			defer sem.Release(1)

			price, err := h.prices.FetchLowestSell(ctx, typeID, query.RegionID)
			if err != nil {
				// Absent price: degrade to incomplete, never abort siblings.
				h.logger.Debug("material price unavailable",
					zap.Int64("type_id", typeID),
					zap.Int64("region_id", query.RegionID),
					zap.Error(err))
				return
			}
			if price <= 0 {
				return
			}

			mu.Lock()
			priceMap[typeID] = price
			mu.Unlock()
		}(typeID)
	}

	wg.Wait()

	if admissionErr != nil {
		return nil, fmt.Errorf("aggregation cancelled: %w", admissionErr)
	}

	if !priceMap.Covers(query.TypeIDs) {
		return nil, fmt.Errorf("region %d: %w", query.RegionID, market.ErrIncompletePriceData)
	}

	return &FetchRegionPricesResponse{Prices: priceMap}, nil
}

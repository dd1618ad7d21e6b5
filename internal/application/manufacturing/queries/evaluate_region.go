package queries

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ganonim/eve-blueprint-master/internal/application/common"
	pricingQueries "github.com/ganonim/eve-blueprint-master/internal/application/pricing/queries"
	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
	"github.com/ganonim/eve-blueprint-master/internal/domain/manufacturing"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
	"github.com/ganonim/eve-blueprint-master/internal/domain/shared"
)

// EvaluateRegionCostQuery requests a full cost evaluation of one recipe
// in one region: sell price fetch, material price aggregation, cost model
type EvaluateRegionCostQuery struct {
	Recipe              *blueprint.Recipe
	Region              market.Region
	Fees                manufacturing.Fees
	Efficiencies        manufacturing.Efficiencies
	MaterialConcurrency int64
}

// EvaluateRegionCostResponse carries the computed breakdown
type EvaluateRegionCostResponse struct {
	Breakdown *manufacturing.CostBreakdown
}

// EvaluateRegionCostHandler runs one region's unit of work. It is used
// directly for single-region requests and fanned out by the scanner.
type EvaluateRegionCostHandler struct {
	prices   market.PriceSource
	mediator common.Mediator
	clock    shared.Clock
	logger   *zap.Logger
}

// NewEvaluateRegionCostHandler creates a new evaluation handler
func NewEvaluateRegionCostHandler(
	prices market.PriceSource,
	mediator common.Mediator,
	clock shared.Clock,
	logger *zap.Logger,
) *EvaluateRegionCostHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &EvaluateRegionCostHandler{
		prices:   prices,
		mediator: mediator,
		clock:    clock,
		logger:   logger,
	}
}

// Handle executes the evaluation. The sell price is always looked up for
// the recipe's product id.
func (h *EvaluateRegionCostHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*EvaluateRegionCostQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	sellPrice, err := h.prices.FetchLowestSell(ctx, query.Recipe.ProductID(), query.Region.ID)
	if err != nil {
		return nil, fmt.Errorf("sell price for product %d in region %d: %w",
			query.Recipe.ProductID(), query.Region.ID, err)
	}

	response, err := h.mediator.Send(ctx, &pricingQueries.FetchRegionPricesQuery{
		TypeIDs:     query.Recipe.MaterialTypeIDs(),
		RegionID:    query.Region.ID,
		Concurrency: query.MaterialConcurrency,
	})
	if err != nil {
		return nil, err
	}

	prices, ok := response.(*pricingQueries.FetchRegionPricesResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type")
	}

	breakdown, err := manufacturing.ComputeCostBreakdown(
		query.Recipe,
		query.Region,
		prices.Prices,
		sellPrice,
		query.Fees,
		query.Efficiencies,
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("region evaluated",
		zap.Int64("region_id", query.Region.ID),
		zap.Float64("profit", breakdown.Profit),
		zap.Float64("build_index", breakdown.BuildIndex))

	return &EvaluateRegionCostResponse{Breakdown: breakdown}, nil
}

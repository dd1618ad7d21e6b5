package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ganonim/eve-blueprint-master/internal/application/common"
	manufacturingQueries "github.com/ganonim/eve-blueprint-master/internal/application/manufacturing/queries"
	pricingQueries "github.com/ganonim/eve-blueprint-master/internal/application/pricing/queries"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
	"github.com/ganonim/eve-blueprint-master/internal/domain/shared"
	"github.com/ganonim/eve-blueprint-master/test/helpers"
)

func newEvaluateHandler(t *testing.T, source market.PriceSource, clock shared.Clock) (*manufacturingQueries.EvaluateRegionCostHandler, common.Mediator) {
	t.Helper()
	mediator := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pricingQueries.FetchRegionPricesQuery](
		mediator, pricingQueries.NewFetchRegionPricesHandler(source, zap.NewNop())))
	handler := manufacturingQueries.NewEvaluateRegionCostHandler(source, mediator, clock, zap.NewNop())
	require.NoError(t, common.RegisterHandler[*manufacturingQueries.EvaluateRegionCostQuery](mediator, handler))
	return handler, mediator
}

func TestEvaluateRegionCost_ComputesBreakdown(t *testing.T) {
	// Recipe: material 34 x10 at 100, material 35 x5 at 200, product 587
	// sells at 5000. Default fees, no research.
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{
		10000002: {34: 100, 35: 200, 587: 5000},
	})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	handler, _ := newEvaluateHandler(t, source, shared.NewMockClock(now))

	response, err := handler.Handle(context.Background(), &manufacturingQueries.EvaluateRegionCostQuery{
		Recipe:       helpers.NewTestRecipe(),
		Region:       market.Region{ID: 10000002, Name: "The Forge"},
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})

	require.NoError(t, err)
	result, ok := response.(*manufacturingQueries.EvaluateRegionCostResponse)
	require.True(t, ok)

	breakdown := result.Breakdown
	assert.Equal(t, "Rifter", breakdown.ProductName)
	assert.Equal(t, "The Forge", breakdown.RegionName)
	assert.InDelta(t, 2260.0, breakdown.TotalMaterialCost, 1e-9)
	assert.InDelta(t, 4975.0, breakdown.SellPriceTotal, 1e-9)
	assert.InDelta(t, 2715.0, breakdown.Profit, 1e-9)
	assert.Equal(t, now, breakdown.Timestamp)
}

func TestEvaluateRegionCost_SellPriceUsesProductID(t *testing.T) {
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{
		10000002: {34: 100, 35: 200, 587: 5000},
	})
	handler, _ := newEvaluateHandler(t, source, shared.NewMockClock(time.Now()))

	_, err := handler.Handle(context.Background(), &manufacturingQueries.EvaluateRegionCostQuery{
		Recipe:       helpers.NewTestRecipe(),
		Region:       market.Region{ID: 10000002, Name: "The Forge"},
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})
	require.NoError(t, err)

	// First fetch is the product's sell price, 587, never blueprint id 689
	calls := source.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, int64(587), calls[0].TypeID)
	for _, call := range calls {
		assert.NotEqual(t, int64(689), call.TypeID)
		assert.NotEqual(t, int64(688), call.TypeID)
	}
}

func TestEvaluateRegionCost_MissingSellPrice(t *testing.T) {
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{
		10000002: {34: 100, 35: 200},
	})
	handler, _ := newEvaluateHandler(t, source, shared.NewMockClock(time.Now()))

	_, err := handler.Handle(context.Background(), &manufacturingQueries.EvaluateRegionCostQuery{
		Recipe:       helpers.NewTestRecipe(),
		Region:       market.Region{ID: 10000002, Name: "The Forge"},
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})

	assert.True(t, errors.Is(err, market.ErrPriceUnavailable))
}

func TestEvaluateRegionCost_IncompleteMaterialPrices(t *testing.T) {
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{
		10000002: {34: 100, 587: 5000},
	})
	handler, _ := newEvaluateHandler(t, source, shared.NewMockClock(time.Now()))

	_, err := handler.Handle(context.Background(), &manufacturingQueries.EvaluateRegionCostQuery{
		Recipe:       helpers.NewTestRecipe(),
		Region:       market.Region{ID: 10000002, Name: "The Forge"},
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})

	assert.True(t, errors.Is(err, market.ErrIncompletePriceData))
}

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
	scanQueries "github.com/ganonim/eve-blueprint-master/internal/application/scan/queries"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
	"github.com/ganonim/eve-blueprint-master/internal/domain/shared"
	"github.com/ganonim/eve-blueprint-master/test/helpers"
)

func newScanHandler(t *testing.T, source market.PriceSource, directory market.RegionDirectory) *scanQueries.ScanRegionsHandler {
	t.Helper()
	mediator := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pricingQueries.FetchRegionPricesQuery](
		mediator, pricingQueries.NewFetchRegionPricesHandler(source, zap.NewNop())))
	require.NoError(t, common.RegisterHandler[*manufacturingQueries.EvaluateRegionCostQuery](
		mediator, manufacturingQueries.NewEvaluateRegionCostHandler(
			source, mediator, shared.NewMockClock(time.Now()), zap.NewNop())))
	handler := scanQueries.NewScanRegionsHandler(directory, mediator, zap.NewNop())
	require.NoError(t, common.RegisterHandler[*scanQueries.ScanRegionsQuery](mediator, handler))
	return handler
}

func TestScanRegions_RanksSurvivorsAndSkipsIncomplete(t *testing.T) {
	// Heimatar has no price for material 35 and must be skipped.
	// Domain is cheaper to build in than The Forge, so it ranks first.
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{
		10000002: {34: 100, 35: 200, 587: 5000},
		10000030: {34: 100, 587: 5000},
		10000043: {34: 50, 35: 100, 587: 5000},
	})
	directory := helpers.NewStaticRegionDirectory(
		market.Region{ID: 10000002, Name: "The Forge"},
		market.Region{ID: 10000030, Name: "Heimatar"},
		market.Region{ID: 10000043, Name: "Domain"},
	)
	handler := newScanHandler(t, source, directory)

	response, err := handler.Handle(context.Background(), &scanQueries.ScanRegionsQuery{
		Recipe:       helpers.NewTestRecipe(),
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})

	require.NoError(t, err)
	result, ok := response.(*scanQueries.ScanRegionsResponse)
	require.True(t, ok)

	assert.Equal(t, 2, result.RegionsScanned)
	assert.Equal(t, 1, result.RegionsSkipped)
	assert.NotEmpty(t, result.ScanID)
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "Domain", result.Ranking[0].RegionName)
	assert.Equal(t, "The Forge", result.Ranking[1].RegionName)
	assert.Greater(t, result.Ranking[0].Profit, result.Ranking[1].Profit)
}

func TestScanRegions_AllRegionsSkipped(t *testing.T) {
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{})
	directory := helpers.NewStaticRegionDirectory(
		market.Region{ID: 10000002, Name: "The Forge"},
		market.Region{ID: 10000030, Name: "Heimatar"},
	)
	handler := newScanHandler(t, source, directory)

	_, err := handler.Handle(context.Background(), &scanQueries.ScanRegionsQuery{
		Recipe:       helpers.NewTestRecipe(),
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})

	assert.True(t, errors.Is(err, scanQueries.ErrNoRegionData))
}

func TestScanRegions_EqualProfitTieBreaksByRegionID(t *testing.T) {
	prices := map[int64]float64{34: 100, 35: 200, 587: 5000}
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{
		10000043: prices,
		10000002: prices,
		10000030: prices,
	})
	directory := helpers.NewStaticRegionDirectory(
		market.Region{ID: 10000043, Name: "Domain"},
		market.Region{ID: 10000002, Name: "The Forge"},
		market.Region{ID: 10000030, Name: "Heimatar"},
	)
	handler := newScanHandler(t, source, directory)

	response, err := handler.Handle(context.Background(), &scanQueries.ScanRegionsQuery{
		Recipe:       helpers.NewTestRecipe(),
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})

	require.NoError(t, err)
	result := response.(*scanQueries.ScanRegionsResponse)

	require.Len(t, result.Ranking, 3)
	assert.Equal(t, int64(10000002), result.Ranking[0].RegionID)
	assert.Equal(t, int64(10000030), result.Ranking[1].RegionID)
	assert.Equal(t, int64(10000043), result.Ranking[2].RegionID)
}

func TestScanRegions_UnnamedRegionsAreIgnored(t *testing.T) {
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{
		10000002: {34: 100, 35: 200, 587: 5000},
	})
	directory := helpers.NewStaticRegionDirectory(
		market.Region{ID: 10000002, Name: "The Forge"},
		market.Region{ID: 99, Name: ""},
	)
	handler := newScanHandler(t, source, directory)

	response, err := handler.Handle(context.Background(), &scanQueries.ScanRegionsQuery{
		Recipe:       helpers.NewTestRecipe(),
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})

	require.NoError(t, err)
	result := response.(*scanQueries.ScanRegionsResponse)
	assert.Equal(t, 1, result.RegionsScanned)
	assert.Equal(t, 0, result.RegionsSkipped)
}

func TestScanRegions_CancelledContext(t *testing.T) {
	source := helpers.NewStaticPriceSource(map[int64]map[int64]float64{
		10000002: {34: 100, 35: 200, 587: 5000},
	})
	directory := helpers.NewStaticRegionDirectory(
		market.Region{ID: 10000002, Name: "The Forge"},
	)
	handler := newScanHandler(t, source, directory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Handle(ctx, &scanQueries.ScanRegionsQuery{
		Recipe:       helpers.NewTestRecipe(),
		Fees:         helpers.NewTestFees(),
		Efficiencies: helpers.NewZeroEfficiencies(),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

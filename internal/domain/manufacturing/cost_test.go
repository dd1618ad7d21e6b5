package manufacturing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
	"github.com/ganonim/eve-blueprint-master/internal/domain/manufacturing"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

func mustFees(t *testing.T, broker, station, tax float64) manufacturing.Fees {
	t.Helper()
	fees, err := manufacturing.NewFees(broker, station, tax)
	require.NoError(t, err)
	return fees
}

func mustEff(t *testing.T, me, te float64) manufacturing.Efficiencies {
	t.Helper()
	eff, err := manufacturing.NewEfficiencies(me, te)
	require.NoError(t, err)
	return eff
}

func twoMaterialRecipe(t *testing.T) *blueprint.Recipe {
	t.Helper()
	recipe, err := blueprint.NewRecipe(689, 587, "Rifter", 1, 2*time.Hour,
		[]blueprint.Material{
			{TypeID: 34, Name: "Tritanium", Quantity: 10},
			{TypeID: 35, Name: "Pyerite", Quantity: 5},
		})
	require.NoError(t, err)
	return recipe
}

func TestComputeCostBreakdown_ReferenceScenario(t *testing.T) {
	// Two materials at 100 and 200 ISK, sell price 5000, default fees,
	// no research: cost 2260, sell 4975, profit 2715, index ~120.13
	recipe := twoMaterialRecipe(t)
	fees := mustFees(t, 0.03, 0.10, 0.005)
	eff := mustEff(t, 0, 0)
	prices := market.RegionPriceMap{34: 100, 35: 200}
	region := market.Region{ID: 10000002, Name: "The Forge"}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	breakdown, err := manufacturing.ComputeCostBreakdown(recipe, region, prices, 5000, fees, eff, now)

	require.NoError(t, err)
	assert.InDelta(t, 2260.0, breakdown.TotalMaterialCost, 1e-9)
	assert.InDelta(t, 4975.0, breakdown.SellPriceTotal, 1e-9)
	assert.InDelta(t, 2715.0, breakdown.Profit, 1e-9)
	assert.InDelta(t, 120.13, breakdown.BuildIndex, 0.01)
	assert.Equal(t, region.ID, breakdown.RegionID)
	assert.Equal(t, now, breakdown.Timestamp)
	require.Len(t, breakdown.Materials, 2)
	assert.InDelta(t, 113.0, breakdown.Materials[0].EffectiveUnitPrice, 1e-9)
	assert.InDelta(t, 1130.0, breakdown.Materials[0].LineTotal, 1e-9)
}

func TestComputeCostBreakdown_FeesApplyBeforeEfficiencyDiscount(t *testing.T) {
	fees := mustFees(t, 0.03, 0.10, 0)
	eff := mustEff(t, 10, 0)

	// 100 * 1.13 * 0.9, not 100 * 0.9 * 1.13 reordered with rounding
	unit := manufacturing.EffectiveUnitCost(100, fees, eff)
	assert.InDelta(t, 101.7, unit, 1e-9)
}

func TestComputeCostBreakdown_MissingMaterialPrice(t *testing.T) {
	recipe := twoMaterialRecipe(t)
	fees := mustFees(t, 0.03, 0.10, 0.005)
	eff := mustEff(t, 0, 0)
	prices := market.RegionPriceMap{34: 100}

	_, err := manufacturing.ComputeCostBreakdown(recipe, market.Region{ID: 1, Name: "X"},
		prices, 5000, fees, eff, time.Now())

	assert.True(t, errors.Is(err, market.ErrIncompletePriceData))
}

func TestComputeCostBreakdown_ZeroPricePoisonsRegion(t *testing.T) {
	recipe := twoMaterialRecipe(t)
	fees := mustFees(t, 0.03, 0.10, 0.005)
	eff := mustEff(t, 0, 0)
	prices := market.RegionPriceMap{34: 100, 35: 0}

	_, err := manufacturing.ComputeCostBreakdown(recipe, market.Region{ID: 1, Name: "X"},
		prices, 5000, fees, eff, time.Now())

	assert.True(t, errors.Is(err, market.ErrIncompletePriceData))
}

func TestComputeCostBreakdown_MissingSellPrice(t *testing.T) {
	recipe := twoMaterialRecipe(t)
	fees := mustFees(t, 0.03, 0.10, 0.005)
	eff := mustEff(t, 0, 0)
	prices := market.RegionPriceMap{34: 100, 35: 200}

	_, err := manufacturing.ComputeCostBreakdown(recipe, market.Region{ID: 1, Name: "X"},
		prices, 0, fees, eff, time.Now())

	assert.True(t, errors.Is(err, market.ErrIncompletePriceData))
}

func TestComputeCostBreakdown_SellTotalScalesWithOutputQuantity(t *testing.T) {
	recipe, err := blueprint.NewRecipe(690, 589, "Executioner", 10, 0,
		[]blueprint.Material{{TypeID: 34, Name: "Tritanium", Quantity: 1}})
	require.NoError(t, err)

	fees := mustFees(t, 0, 0, 0.005)
	eff := mustEff(t, 0, 0)
	prices := market.RegionPriceMap{34: 1}

	breakdown, err := manufacturing.ComputeCostBreakdown(recipe, market.Region{ID: 1, Name: "X"},
		prices, 100, fees, eff, time.Now())

	require.NoError(t, err)
	assert.InDelta(t, 100*0.995*10, breakdown.SellPriceTotal, 1e-9)
}

func TestComputeCostBreakdown_TimeEfficiencyScalesProductionTime(t *testing.T) {
	recipe := twoMaterialRecipe(t)
	fees := mustFees(t, 0, 0, 0)
	eff := mustEff(t, 0, 20)
	prices := market.RegionPriceMap{34: 1, 35: 1}

	breakdown, err := manufacturing.ComputeCostBreakdown(recipe, market.Region{ID: 1, Name: "X"},
		prices, 100, fees, eff, time.Now())

	require.NoError(t, err)
	assert.Equal(t, time.Duration(float64(2*time.Hour)*0.8), breakdown.ProductionTime)
}

func TestNewFees_RejectsOutOfRange(t *testing.T) {
	_, err := manufacturing.NewFees(-0.01, 0.10, 0.005)
	assert.Error(t, err)

	_, err = manufacturing.NewFees(0.03, 1.0, 0.005)
	assert.Error(t, err)

	_, err = manufacturing.NewFees(0.03, 0.10, 1.5)
	assert.Error(t, err)
}

func TestNewEfficiencies_RejectsOutOfRange(t *testing.T) {
	_, err := manufacturing.NewEfficiencies(100, 0)
	assert.Error(t, err)

	_, err = manufacturing.NewEfficiencies(0, -5)
	assert.Error(t, err)
}

func TestSortByProfit_DescendingWithRegionIDTieBreak(t *testing.T) {
	breakdowns := []*manufacturing.CostBreakdown{
		{RegionID: 30, Profit: 100},
		{RegionID: 10, Profit: 300},
		{RegionID: 20, Profit: 100},
		{RegionID: 40, Profit: -50},
	}

	manufacturing.SortByProfit(breakdowns)

	assert.Equal(t, int64(10), breakdowns[0].RegionID)
	assert.Equal(t, int64(20), breakdowns[1].RegionID)
	assert.Equal(t, int64(30), breakdowns[2].RegionID)
	assert.Equal(t, int64(40), breakdowns[3].RegionID)
}

func TestComputeCostBreakdown_ZeroCostYieldsZeroBuildIndex(t *testing.T) {
	// Zero material cost is only reachable with an empty material list
	recipe, err := blueprint.NewRecipe(689, 587, "Rifter", 1, 0, nil)
	require.NoError(t, err)

	fees := mustFees(t, 0, 0, 0)
	eff := mustEff(t, 0, 0)

	breakdown, err := manufacturing.ComputeCostBreakdown(recipe, market.Region{ID: 1, Name: "X"},
		market.RegionPriceMap{}, 100, fees, eff, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0.0, breakdown.BuildIndex)
	assert.InDelta(t, 100.0, breakdown.Profit, 1e-9)
}

package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
	"github.com/ganonim/eve-blueprint-master/internal/domain/manufacturing"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

// scannerContext holds shared state for cost model and region scan
// scenarios. Both step sets operate on the same instance so the
// recipe and fee background steps apply to either feature.
type scannerContext struct {
	recipe    *blueprint.Recipe
	fees      manufacturing.Fees
	eff       manufacturing.Efficiencies
	prices    market.RegionPriceMap
	sellPrice float64
	breakdown *manufacturing.CostBreakdown
	evalErr   error

	regionNames  map[int64]string
	regionPrices map[int64]map[int64]float64
	scanResult   *scanResultState
	scanErr      error
}

// scanResultState mirrors what the scan scenarios assert on
type scanResultState struct {
	ranked  int
	skipped int
	regions []string
}

func (sc *scannerContext) reset() {
	sc.recipe = nil
	sc.fees = manufacturing.Fees{}
	sc.eff = manufacturing.Efficiencies{}
	sc.prices = nil
	sc.sellPrice = 0
	sc.breakdown = nil
	sc.evalErr = nil
	sc.regionNames = make(map[int64]string)
	sc.regionPrices = make(map[int64]map[int64]float64)
	sc.scanResult = nil
	sc.scanErr = nil
}

var sharedScannerContext = &scannerContext{}

func InitializeCostModelScenario(ctx *godog.ScenarioContext) {
	sc := sharedScannerContext

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	ctx.Step(`^a recipe producing "([^"]*)" with output quantity (\d+) and materials:$`, sc.aRecipeProducing)
	ctx.Step(`^broker fee ([\d.]+) percent, station fee ([\d.]+) percent, sales tax ([\d.]+) percent$`, sc.feesArePercent)
	ctx.Step(`^material efficiency ([\d.]+) percent$`, sc.materialEfficiencyPercent)
	ctx.Step(`^region prices:$`, sc.regionPricesTable)
	ctx.Step(`^a sell price of ([\d.]+)$`, sc.aSellPriceOf)
	ctx.Step(`^I evaluate the manufacturing cost$`, sc.iEvaluateTheManufacturingCost)
	ctx.Step(`^the total material cost should be ([\d.]+)$`, sc.theTotalMaterialCostShouldBe)
	ctx.Step(`^the sell total should be ([\d.]+)$`, sc.theSellTotalShouldBe)
	ctx.Step(`^the profit should be ([\d.]+)$`, sc.theProfitShouldBe)
	ctx.Step(`^the build index should be ([\d.]+)$`, sc.theBuildIndexShouldBe)
	ctx.Step(`^the evaluation should fail with incomplete price data$`, sc.theEvaluationShouldFailIncomplete)
}

func (sc *scannerContext) aRecipeProducing(productName string, outputQty int, table *godog.Table) error {
	materials, err := parseMaterialTable(table)
	if err != nil {
		return err
	}

	// Product and blueprint ids are fixed: Rifter 587 built from 689
	recipe, err := blueprint.NewRecipe(689, 587, productName, int64(outputQty), time.Hour, materials)
	if err != nil {
		return err
	}
	sc.recipe = recipe
	return nil
}

func (sc *scannerContext) feesArePercent(broker, station, tax string) error {
	brokerPct, stationPct, taxPct, err := parseThreeFloats(broker, station, tax)
	if err != nil {
		return err
	}
	fees, err := manufacturing.NewFees(brokerPct/100, stationPct/100, taxPct/100)
	if err != nil {
		return err
	}
	sc.fees = fees
	return nil
}

func (sc *scannerContext) materialEfficiencyPercent(me string) error {
	mePct, err := strconv.ParseFloat(me, 64)
	if err != nil {
		return err
	}
	eff, err := manufacturing.NewEfficiencies(mePct, 0)
	if err != nil {
		return err
	}
	sc.eff = eff
	return nil
}

func (sc *scannerContext) regionPricesTable(table *godog.Table) error {
	prices, err := parsePriceTable(table)
	if err != nil {
		return err
	}
	sc.prices = prices
	return nil
}

func (sc *scannerContext) aSellPriceOf(price string) error {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return err
	}
	sc.sellPrice = v
	return nil
}

func (sc *scannerContext) iEvaluateTheManufacturingCost() error {
	if sc.recipe == nil {
		return fmt.Errorf("no recipe configured")
	}
	sc.breakdown, sc.evalErr = manufacturing.ComputeCostBreakdown(
		sc.recipe,
		market.Region{ID: 10000002, Name: "The Forge"},
		sc.prices,
		sc.sellPrice,
		sc.fees,
		sc.eff,
		time.Now(),
	)
	return nil
}

func (sc *scannerContext) theTotalMaterialCostShouldBe(expected string) error {
	return sc.assertBreakdownValue(expected, func(b *manufacturing.CostBreakdown) float64 {
		return b.TotalMaterialCost
	})
}

func (sc *scannerContext) theSellTotalShouldBe(expected string) error {
	return sc.assertBreakdownValue(expected, func(b *manufacturing.CostBreakdown) float64 {
		return b.SellPriceTotal
	})
}

func (sc *scannerContext) theProfitShouldBe(expected string) error {
	return sc.assertBreakdownValue(expected, func(b *manufacturing.CostBreakdown) float64 {
		return b.Profit
	})
}

func (sc *scannerContext) theBuildIndexShouldBe(expected string) error {
	return sc.assertBreakdownValue(expected, func(b *manufacturing.CostBreakdown) float64 {
		return b.BuildIndex
	})
}

func (sc *scannerContext) theEvaluationShouldFailIncomplete() error {
	if sc.evalErr == nil {
		return fmt.Errorf("expected an error, got none")
	}
	if !errors.Is(sc.evalErr, market.ErrIncompletePriceData) {
		return fmt.Errorf("expected incomplete price data error, got: %v", sc.evalErr)
	}
	return nil
}

func (sc *scannerContext) assertBreakdownValue(expected string, pick func(*manufacturing.CostBreakdown) float64) error {
	if sc.evalErr != nil {
		return fmt.Errorf("evaluation failed: %w", sc.evalErr)
	}
	if sc.breakdown == nil {
		return fmt.Errorf("no breakdown computed")
	}
	want, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return err
	}
	got := pick(sc.breakdown)
	if math.Abs(got-want) > 0.005 {
		return fmt.Errorf("expected %.2f, got %.2f", want, got)
	}
	return nil
}

func parseMaterialTable(table *godog.Table) ([]blueprint.Material, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("material table needs at least one data row")
	}
	materials := make([]blueprint.Material, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 3 {
			return nil, fmt.Errorf("material row needs 3 cells, got %d", len(row.Cells))
		}
		typeID, err := strconv.ParseInt(row.Cells[0].Value, 10, 64)
		if err != nil {
			return nil, err
		}
		qty, err := strconv.ParseInt(row.Cells[2].Value, 10, 64)
		if err != nil {
			return nil, err
		}
		materials = append(materials, blueprint.Material{
			TypeID:   typeID,
			Name:     row.Cells[1].Value,
			Quantity: qty,
		})
	}
	return materials, nil
}

func parsePriceTable(table *godog.Table) (market.RegionPriceMap, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("price table needs at least one data row")
	}
	prices := make(market.RegionPriceMap, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 2 {
			return nil, fmt.Errorf("price row needs 2 cells, got %d", len(row.Cells))
		}
		typeID, err := strconv.ParseInt(row.Cells[0].Value, 10, 64)
		if err != nil {
			return nil, err
		}
		price, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return nil, err
		}
		prices[typeID] = price
	}
	return prices, nil
}

func parseThreeFloats(a, b, c string) (float64, float64, float64, error) {
	av, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, 0, err
	}
	bv, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, 0, err
	}
	cv, err := strconv.ParseFloat(c, 64)
	if err != nil {
		return 0, 0, 0, err
	}
	return av, bv, cv, nil
}

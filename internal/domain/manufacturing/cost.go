package manufacturing

import (
	"time"

	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

// MaterialCost is one priced line of a cost breakdown
type MaterialCost struct {
	TypeID             int64
	Name               string
	Quantity           int64
	EffectiveUnitPrice float64
	LineTotal          float64
}

// CostBreakdown is the result of evaluating one recipe in one region.
// Created once per (recipe, region) pair and never mutated afterwards;
// the presentation layer consumes it as plain structured data.
type CostBreakdown struct {
	BlueprintID       int64
	ProductID         int64
	ProductName       string
	OutputQuantity    int64
	ProductionTime    time.Duration
	RegionID          int64
	RegionName        string
	Materials         []MaterialCost
	TotalMaterialCost float64
	SellPriceTotal    float64
	Profit            float64
	BuildIndex        float64
	Timestamp         time.Time
}

// EffectiveUnitCost applies trade fees and the material efficiency
// discount to a quoted base price. Fees are additive surcharges applied
// first; the efficiency discount multiplies the fee-inclusive price.
// The order is fixed: fees before the discount, never after.
func EffectiveUnitCost(basePrice float64, fees Fees, eff Efficiencies) float64 {
	priceWithFees := basePrice * (1 + fees.BrokerRate() + fees.StationRate())
	return priceWithFees * (1 - eff.MaterialPct()/100)
}

// ComputeCostBreakdown combines a recipe, a complete region price map and
// the output item's sell price into a cost/profit result.
//
// It returns market.ErrIncompletePriceData when the sell price is absent
// or zero, or when the price map does not cover every material with a
// positive price: a region with incomplete data contributes nothing.
func ComputeCostBreakdown(
	recipe *blueprint.Recipe,
	region market.Region,
	prices market.RegionPriceMap,
	sellPricePerUnit float64,
	fees Fees,
	eff Efficiencies,
	now time.Time,
) (*CostBreakdown, error) {
	if sellPricePerUnit <= 0 {
		return nil, market.ErrIncompletePriceData
	}
	if !prices.Covers(recipe.MaterialTypeIDs()) {
		return nil, market.ErrIncompletePriceData
	}

	materials := recipe.Materials()
	lines := make([]MaterialCost, 0, len(materials))
	totalMaterialCost := 0.0
	for _, mat := range materials {
		unitPrice := EffectiveUnitCost(prices[mat.TypeID], fees, eff)
		lineTotal := unitPrice * float64(mat.Quantity)
		totalMaterialCost += lineTotal
		lines = append(lines, MaterialCost{
			TypeID:             mat.TypeID,
			Name:               mat.Name,
			Quantity:           mat.Quantity,
			EffectiveUnitPrice: unitPrice,
			LineTotal:          lineTotal,
		})
	}

	sellPriceTotal := sellPricePerUnit * (1 - fees.SalesTaxRate()) * float64(recipe.OutputQuantity())
	profit := sellPriceTotal - totalMaterialCost

	buildIndex := 0.0
	if totalMaterialCost > 0 {
		buildIndex = profit / totalMaterialCost * 100
	}

	// Production time is informational only; it never feeds cost or ranking.
	productionTime := time.Duration(float64(recipe.ProductionTime()) * (1 - eff.TimePct()/100))

	return &CostBreakdown{
		BlueprintID:       recipe.BlueprintID(),
		ProductID:         recipe.ProductID(),
		ProductName:       recipe.ProductName(),
		OutputQuantity:    recipe.OutputQuantity(),
		ProductionTime:    productionTime,
		RegionID:          region.ID,
		RegionName:        region.Name,
		Materials:         lines,
		TotalMaterialCost: totalMaterialCost,
		SellPriceTotal:    sellPriceTotal,
		Profit:            profit,
		BuildIndex:        buildIndex,
		Timestamp:         now,
	}, nil
}

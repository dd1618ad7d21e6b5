package helpers

import (
	"time"

	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
	"github.com/ganonim/eve-blueprint-master/internal/domain/manufacturing"
)

// NewTestRecipe builds a small two-material recipe used across handler
// tests: materials 34 (qty 10) and 35 (qty 5), product 587, one unit
// per run.
func NewTestRecipe() *blueprint.Recipe {
	recipe, err := blueprint.NewRecipe(
		689, 587, "Rifter", 1, 2*time.Hour,
		[]blueprint.Material{
			{TypeID: 34, Name: "Tritanium", Quantity: 10},
			{TypeID: 35, Name: "Pyerite", Quantity: 5},
		},
	)
	if err != nil {
		panic(err)
	}
	return recipe
}

// NewTestFees builds the default fee set used across handler tests:
// 3% broker, 10% station, 0.5% sales tax
func NewTestFees() manufacturing.Fees {
	fees, err := manufacturing.NewFees(0.03, 0.10, 0.005)
	if err != nil {
		panic(err)
	}
	return fees
}

// NewZeroEfficiencies builds an unresearched blueprint's efficiencies
func NewZeroEfficiencies() manufacturing.Efficiencies {
	eff, err := manufacturing.NewEfficiencies(0, 0)
	if err != nil {
		panic(err)
	}
	return eff
}

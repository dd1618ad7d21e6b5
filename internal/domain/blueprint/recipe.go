package blueprint

import (
	"fmt"
	"time"
)

// Material is a value object describing one input line of a recipe
type Material struct {
	TypeID   int64
	Name     string
	Quantity int64
}

// Recipe is a domain entity describing how one item is manufactured:
// the ordered material list, the produced item and its output quantity,
// and the base production time. Immutable once constructed.
type Recipe struct {
	blueprintID    int64
	productID      int64
	productName    string
	outputQty      int64
	productionTime time.Duration
	materials      []Material
}

// NewRecipe creates a validated recipe.
// Duplicate material type ids are summed into the first occurrence so the
// source order of the list is preserved; they are never silently dropped.
func NewRecipe(
	blueprintID int64,
	productID int64,
	productName string,
	outputQty int64,
	productionTime time.Duration,
	materials []Material,
) (*Recipe, error) {
	if blueprintID <= 0 {
		return nil, fmt.Errorf("blueprint id must be positive, got %d", blueprintID)
	}
	if productID <= 0 {
		return nil, fmt.Errorf("product id must be positive, got %d", productID)
	}
	if productName == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if outputQty <= 0 {
		return nil, fmt.Errorf("output quantity must be positive, got %d", outputQty)
	}
	if productionTime < 0 {
		return nil, fmt.Errorf("production time cannot be negative, got %s", productionTime)
	}

	merged := make([]Material, 0, len(materials))
	indexByID := make(map[int64]int, len(materials))
	for _, mat := range materials {
		if mat.TypeID <= 0 {
			return nil, fmt.Errorf("material type id must be positive, got %d", mat.TypeID)
		}
		if mat.Quantity <= 0 {
			return nil, fmt.Errorf("material %d quantity must be positive, got %d", mat.TypeID, mat.Quantity)
		}
		if idx, seen := indexByID[mat.TypeID]; seen {
			merged[idx].Quantity += mat.Quantity
			continue
		}
		indexByID[mat.TypeID] = len(merged)
		merged = append(merged, mat)
	}

	return &Recipe{
		blueprintID:    blueprintID,
		productID:      productID,
		productName:    productName,
		outputQty:      outputQty,
		productionTime: productionTime,
		materials:      merged,
	}, nil
}

// BlueprintID returns the type id of the blueprint itself
func (r *Recipe) BlueprintID() int64 {
	return r.blueprintID
}

// ProductID returns the type id of the manufactured item.
// The sell side of a cost evaluation always uses this id; it is never
// derived arithmetically from the blueprint id.
func (r *Recipe) ProductID() int64 {
	return r.productID
}

// ProductName returns the display name of the manufactured item
func (r *Recipe) ProductName() string {
	return r.productName
}

// OutputQuantity returns how many units one production run yields
func (r *Recipe) OutputQuantity() int64 {
	return r.outputQty
}

// ProductionTime returns the base duration of one production run
func (r *Recipe) ProductionTime() time.Duration {
	return r.productionTime
}

// Materials returns a copy of the ordered material list
func (r *Recipe) Materials() []Material {
	out := make([]Material, len(r.materials))
	copy(out, r.materials)
	return out
}

// MaterialTypeIDs returns the material type ids in recipe order
func (r *Recipe) MaterialTypeIDs() []int64 {
	ids := make([]int64, len(r.materials))
	for i, mat := range r.materials {
		ids[i] = mat.TypeID
	}
	return ids
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
)

// materialRow is one material line of a blueprint entry. The catalog
// file carries rows in two shapes, [id, name, qty] and [id, qty], and
// both must load.
type materialRow struct {
	TypeID   int64
	Name     string
	Quantity int64
}

func (m *materialRow) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	switch len(fields) {
	case 2:
		if err := json.Unmarshal(fields[0], &m.TypeID); err != nil {
			return fmt.Errorf("material type id: %w", err)
		}
		if err := json.Unmarshal(fields[1], &m.Quantity); err != nil {
			return fmt.Errorf("material quantity: %w", err)
		}
	case 3:
		if err := json.Unmarshal(fields[0], &m.TypeID); err != nil {
			return fmt.Errorf("material type id: %w", err)
		}
		if err := json.Unmarshal(fields[1], &m.Name); err != nil {
			return fmt.Errorf("material name: %w", err)
		}
		if err := json.Unmarshal(fields[2], &m.Quantity); err != nil {
			return fmt.Errorf("material quantity: %w", err)
		}
	default:
		return fmt.Errorf("material row must have 2 or 3 fields, got %d", len(fields))
	}
	return nil
}

// blueprintEntry mirrors one record of blueprints_materials.json
type blueprintEntry struct {
	ProductID      int64         `json:"product_id"`
	ProductName    string        `json:"product_name"`
	Materials      []materialRow `json:"materials"`
	OutputQty      int64         `json:"output_qty"`
	ProductionTime int64         `json:"production_time"`
}

// BlueprintCatalog resolves blueprint names to manufacturing recipes
// from the offline catalog files. It implements blueprint.RecipeProvider.
type BlueprintCatalog struct {
	types   *TypeIndex
	entries map[int64]blueprintEntry
}

// LoadBlueprintCatalog reads the blueprint materials file and binds it
// to an already loaded type index
func LoadBlueprintCatalog(path string, types *TypeIndex) (*BlueprintCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint catalog %s: %w", path, err)
	}

	var raw map[string]blueprintEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse blueprint catalog %s: %w", path, err)
	}

	entries := make(map[int64]blueprintEntry, len(raw))
	for idStr, entry := range raw {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid blueprint id %q in %s: %w", idStr, path, err)
		}
		entries[id] = entry
	}

	return &BlueprintCatalog{types: types, entries: entries}, nil
}

// ResolveTypeID resolves a blueprint name to its type id
func (c *BlueprintCatalog) ResolveTypeID(name string) (int64, error) {
	return c.types.IDByName(name)
}

// Resolve returns the recipe for a named blueprint
func (c *BlueprintCatalog) Resolve(name string) (*blueprint.Recipe, error) {
	blueprintID, err := c.types.IDByName(name)
	if err != nil {
		return nil, err
	}

	entry, ok := c.entries[blueprintID]
	if !ok {
		return nil, fmt.Errorf("blueprint %d (%s) has no catalog entry: %w",
			blueprintID, name, blueprint.ErrBlueprintNotFound)
	}

	materials := make([]blueprint.Material, len(entry.Materials))
	for i, row := range entry.Materials {
		matName := row.Name
		if matName == "" {
			matName = c.types.NameByID(row.TypeID)
		}
		materials[i] = blueprint.Material{
			TypeID:   row.TypeID,
			Name:     matName,
			Quantity: row.Quantity,
		}
	}

	productName := entry.ProductName
	if productName == "" {
		productName = c.types.NameByID(entry.ProductID)
	}

	outputQty := entry.OutputQty
	if outputQty == 0 {
		outputQty = 1
	}

	return blueprint.NewRecipe(
		blueprintID,
		entry.ProductID,
		productName,
		outputQty,
		time.Duration(entry.ProductionTime)*time.Second,
		materials,
	)
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
)

// TypeIndex is the offline item name index loaded from typeid.json:
// a map of type id to English display name.
type TypeIndex struct {
	nameByID map[int64]string
	idByName map[string]int64
	names    []string
}

// LoadTypeIndex reads and indexes the type id catalog file
func LoadTypeIndex(path string) (*TypeIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read type index %s: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse type index %s: %w", path, err)
	}

	idx := &TypeIndex{
		nameByID: make(map[int64]string, len(raw)),
		idByName: make(map[string]int64, len(raw)),
		names:    make([]string, 0, len(raw)),
	}
	for idStr, name := range raw {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid type id %q in %s: %w", idStr, path, err)
		}
		idx.nameByID[id] = name
		lower := strings.ToLower(name)
		idx.idByName[lower] = id
		idx.names = append(idx.names, lower)
	}
	return idx, nil
}

// NameByID returns the display name for a type id, or Unknown(id) when
// the catalog has no entry
func (t *TypeIndex) NameByID(id int64) string {
	if name, ok := t.nameByID[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", id)
}

// IDByName resolves a name to a type id: exact case-insensitive match
// first, then the first case-insensitive substring match. The winner
// among multiple substring matches is unspecified.
func (t *TypeIndex) IDByName(name string) (int64, error) {
	lower := strings.ToLower(name)
	if id, ok := t.idByName[lower]; ok {
		return id, nil
	}
	for _, candidate := range t.names {
		if strings.Contains(candidate, lower) {
			return t.idByName[candidate], nil
		}
	}
	return 0, fmt.Errorf("type %q: %w", name, blueprint.ErrBlueprintNotFound)
}

// Len returns the number of indexed types
func (t *TypeIndex) Len() int {
	return len(t.nameByID)
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

// RegionCatalog maps region ids to display names from regions.json.
// It implements market.RegionDirectory.
type RegionCatalog struct {
	regions []market.Region
	byName  map[string]int64
}

// LoadRegionCatalog reads and indexes the region directory file
func LoadRegionCatalog(path string) (*RegionCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region catalog %s: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse region catalog %s: %w", path, err)
	}

	cat := &RegionCatalog{
		regions: make([]market.Region, 0, len(raw)),
		byName:  make(map[string]int64, len(raw)),
	}
	for idStr, name := range raw {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid region id %q in %s: %w", idStr, path, err)
		}
		cat.regions = append(cat.regions, market.Region{ID: id, Name: name})
		cat.byName[strings.ToLower(name)] = id
	}

	sort.Slice(cat.regions, func(i, j int) bool {
		return cat.regions[i].ID < cat.regions[j].ID
	})
	return cat, nil
}

// AllRegions returns every known region ordered by id ascending
func (c *RegionCatalog) AllRegions() ([]market.Region, error) {
	out := make([]market.Region, len(c.regions))
	copy(out, c.regions)
	return out, nil
}

// ResolveID resolves a region display name, case-insensitively
func (c *RegionCatalog) ResolveID(name string) (int64, error) {
	if id, ok := c.byName[strings.ToLower(name)]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("region %q: %w", name, market.ErrRegionNotFound)
}

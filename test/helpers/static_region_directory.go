package helpers

import (
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

// StaticRegionDirectory is a test double for market.RegionDirectory
// backed by a fixed region list
type StaticRegionDirectory struct {
	Regions []market.Region
	Err     error
}

// NewStaticRegionDirectory creates a directory over the given regions
func NewStaticRegionDirectory(regions ...market.Region) *StaticRegionDirectory {
	return &StaticRegionDirectory{Regions: regions}
}

// AllRegions implements market.RegionDirectory
func (d *StaticRegionDirectory) AllRegions() ([]market.Region, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	out := make([]market.Region, len(d.Regions))
	copy(out, d.Regions)
	return out, nil
}

// ResolveID implements market.RegionDirectory
func (d *StaticRegionDirectory) ResolveID(name string) (int64, error) {
	for _, region := range d.Regions {
		if region.Name == name {
			return region.ID, nil
		}
	}
	return 0, market.ErrRegionNotFound
}

package market

import "context"

// PriceSource fetches unit prices from the external market service.
// Implementations must be safe for concurrent use: one source is shared
// by every in-flight fetch of a scan.
type PriceSource interface {
	// FetchLowestSell returns the lowest active sell-order price for the
	// type in the region, or the global average price when regionID is
	// GlobalMarket. An empty order book or a missing summary entry yields
	// an error wrapping ErrPriceUnavailable.
	FetchLowestSell(ctx context.Context, typeID, regionID int64) (float64, error)
}

// RegionDirectory maps region identifiers to display names and back
type RegionDirectory interface {
	// AllRegions returns every known region ordered by id ascending
	AllRegions() ([]Region, error)

	// ResolveID resolves a region display name (exact, case-insensitive)
	// to its id, or ErrRegionNotFound
	ResolveID(name string) (int64, error)
}

package market

import "fmt"

// PriceQuote is a value object carrying one fetched unit price.
// RegionID is GlobalMarket when the price came from the global summary.
// Quotes are produced fresh per request and never reused across regions
// or runs.
type PriceQuote struct {
	TypeID    int64
	RegionID  int64
	UnitPrice float64
}

// NewPriceQuote creates a validated price quote
func NewPriceQuote(typeID, regionID int64, unitPrice float64) (PriceQuote, error) {
	if typeID <= 0 {
		return PriceQuote{}, fmt.Errorf("type id must be positive, got %d", typeID)
	}
	if regionID < 0 {
		return PriceQuote{}, fmt.Errorf("region id cannot be negative, got %d", regionID)
	}
	if unitPrice < 0 {
		return PriceQuote{}, fmt.Errorf("unit price cannot be negative, got %f", unitPrice)
	}
	return PriceQuote{TypeID: typeID, RegionID: regionID, UnitPrice: unitPrice}, nil
}

// IsGlobal reports whether the quote came from the global price summary
func (q PriceQuote) IsGlobal() bool {
	return q.RegionID == GlobalMarket
}

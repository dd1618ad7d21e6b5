package market

// RegionPriceMap maps material type ids to unit prices, scoped to one
// region and one run. A map handed to the cost model is always complete:
// the aggregator rejects the whole region rather than produce a partial
// map.
type RegionPriceMap map[int64]float64

// Covers reports whether every given type id has a positive price
func (m RegionPriceMap) Covers(typeIDs []int64) bool {
	for _, id := range typeIDs {
		if m[id] <= 0 {
			return false
		}
	}
	return true
}

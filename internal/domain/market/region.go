package market

// GlobalMarket addresses the cross-region price summary instead of a
// single region's order book.
const GlobalMarket int64 = 0

// Region identifies one market partition with its own order book
type Region struct {
	ID   int64
	Name string
}

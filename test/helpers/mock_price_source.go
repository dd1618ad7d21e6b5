package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

// PriceCall records one FetchLowestSell invocation
type PriceCall struct {
	TypeID   int64
	RegionID int64
}

// MockPriceSource is a test double for market.PriceSource. It tracks
// every call and the peak number of concurrent in-flight fetches so
// tests can assert concurrency bounds.
type MockPriceSource struct {
	mu          sync.Mutex
	fetchFunc   func(ctx context.Context, typeID, regionID int64) (float64, error)
	calls       []PriceCall
	inFlight    int
	maxInFlight int
}

// NewMockPriceSource creates a mock that fails every fetch until a
// function or price table is configured
func NewMockPriceSource() *MockPriceSource {
	return &MockPriceSource{calls: make([]PriceCall, 0)}
}

// NewStaticPriceSource creates a mock backed by a fixed price table
// keyed by (region id, type id). Types absent from the table yield
// market.ErrPriceUnavailable.
func NewStaticPriceSource(prices map[int64]map[int64]float64) *MockPriceSource {
	m := NewMockPriceSource()
	m.fetchFunc = func(ctx context.Context, typeID, regionID int64) (float64, error) {
		if regionPrices, ok := prices[regionID]; ok {
			if price, ok := regionPrices[typeID]; ok {
				return price, nil
			}
		}
		return 0, fmt.Errorf("type %d in region %d: %w", typeID, regionID, market.ErrPriceUnavailable)
	}
	return m
}

// FetchLowestSell implements market.PriceSource
func (m *MockPriceSource) FetchLowestSell(ctx context.Context, typeID, regionID int64) (float64, error) {
	m.mu.Lock()
	m.calls = append(m.calls, PriceCall{TypeID: typeID, RegionID: regionID})
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	fetch := m.fetchFunc
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if fetch != nil {
		return fetch(ctx, typeID, regionID)
	}
	return 0, fmt.Errorf("no fetch function configured: %w", market.ErrPriceUnavailable)
}

// SetFetchFunc sets the function to call when FetchLowestSell is invoked
func (m *MockPriceSource) SetFetchFunc(f func(ctx context.Context, typeID, regionID int64) (float64, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchFunc = f
}

// Calls returns all recorded fetch calls
func (m *MockPriceSource) Calls() []PriceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PriceCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// MaxInFlight returns the peak number of concurrent fetches observed
func (m *MockPriceSource) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

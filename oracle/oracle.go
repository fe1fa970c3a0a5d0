// Package oracle fetches the USD price of the base asset. Prices feed the
// USD-denominated seed bounds and the graduation market-cap target; stale or
// missing prices disable those checks fail-closed rather than guessing.
package oracle

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnavailable  = errors.New("oracle: price unavailable")
	ErrInvalidPrice = errors.New("oracle: invalid price")
)

// Price is a whole-USD quote for one unit of the base asset.
type Price struct {
	USD       uint64
	FetchedAt time.Time
}

// Feed supplies prices to the engine's update loop.
type Feed interface {
	Fetch(ctx context.Context) (Price, error)
}

package oracle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// SOLUSDFeedID is the Pyth price feed for SOL/USD.
const SOLUSDFeedID = "ef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d"

const defaultMaxElapsed = 15 * time.Second

// HermesFeed pulls prices from a Pyth Hermes endpoint.
type HermesFeed struct {
	endpoint string
	feedID   string
	client   *http.Client
	logger   *zap.Logger
}

// NewHermesFeed creates a feed against endpoint (e.g.
// https://hermes.pyth.network) for the given price feed ID.
func NewHermesFeed(endpoint, feedID string, logger *zap.Logger) *HermesFeed {
	return &HermesFeed{
		endpoint: endpoint,
		feedID:   feedID,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.Named("hermes"),
	}
}

// Fetch returns the latest whole-USD price, retrying transient HTTP failures
// with exponential backoff.
func (h *HermesFeed) Fetch(ctx context.Context) (Price, error) {
	op := func() (Price, error) {
		return h.fetchOnce(ctx)
	}

	price, err := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(defaultMaxElapsed),
	)
	if err != nil {
		return Price{}, err
	}
	return price, nil
}

func (h *HermesFeed) fetchOnce(ctx context.Context) (Price, error) {
	url := fmt.Sprintf("%s/v2/updates/price/latest?ids[]=%s&parsed=true", h.endpoint, h.feedID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Price{}, backoff.Permanent(err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return Price{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return Price{}, backoff.Permanent(err)
		}
		return Price{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Price{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	price, err := parseHermesPrice(body)
	if err != nil {
		return Price{}, backoff.Permanent(err)
	}

	h.logger.Debug("Fetched price", zap.Uint64("usd", price.USD))
	return price, nil
}

// parseHermesPrice extracts the first parsed price from a Hermes response and
// scales it to whole USD, rounding down.
func parseHermesPrice(body []byte) (Price, error) {
	raw := gjson.GetBytes(body, "parsed.0.price.price").String()
	expo := gjson.GetBytes(body, "parsed.0.price.expo").Int()
	publishTime := gjson.GetBytes(body, "parsed.0.price.publish_time").Int()
	if raw == "" {
		return Price{}, ErrInvalidPrice
	}

	mantissa, err := decimal.NewFromString(raw)
	if err != nil {
		return Price{}, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	usd := mantissa.Shift(int32(expo))
	if usd.Sign() <= 0 {
		return Price{}, ErrInvalidPrice
	}

	whole := usd.Truncate(0).BigInt()
	if !whole.IsUint64() {
		return Price{}, ErrInvalidPrice
	}

	fetchedAt := time.Now()
	if publishTime > 0 {
		fetchedAt = time.Unix(publishTime, 0)
	}
	return Price{USD: whole.Uint64(), FetchedAt: fetchedAt}, nil
}

// StaticFeed always returns the same price. Useful for tests and local runs.
type StaticFeed struct {
	USD uint64
}

func (s StaticFeed) Fetch(context.Context) (Price, error) {
	if s.USD == 0 {
		return Price{}, ErrInvalidPrice
	}
	return Price{USD: s.USD, FetchedAt: time.Now()}, nil
}

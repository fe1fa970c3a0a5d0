package oracle

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const hermesBody = `{
	"parsed": [
		{
			"id": "ef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d",
			"price": {
				"price": "20412345678",
				"conf": "12345678",
				"expo": -8,
				"publish_time": 1756000000
			}
		}
	]
}`

func TestFetchParsesPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, SOLUSDFeedID)
		fmt.Fprint(w, hermesBody)
	}))
	defer srv.Close()

	feed := NewHermesFeed(srv.URL, SOLUSDFeedID, zaptest.NewLogger(t))
	price, err := feed.Fetch(context.Background())
	require.NoError(t, err)

	// 20412345678 * 10^-8 = 204.12..., truncated to whole dollars.
	assert.Equal(t, uint64(204), price.USD)
	assert.Equal(t, int64(1756000000), price.FetchedAt.Unix())
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, hermesBody)
	}))
	defer srv.Close()

	feed := NewHermesFeed(srv.URL, SOLUSDFeedID, zaptest.NewLogger(t))
	price, err := feed.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(204), price.USD)
	assert.Equal(t, 3, hits)
}

func TestFetchBadRequestIsPermanent(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	feed := NewHermesFeed(srv.URL, "deadbeef", zaptest.NewLogger(t))
	_, err := feed.Fetch(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, hits)
}

func TestParseRejectsBadPayloads(t *testing.T) {
	cases := map[string]string{
		"empty":        `{}`,
		"no price":     `{"parsed":[{"price":{"expo":-8}}]}`,
		"zero price":   `{"parsed":[{"price":{"price":"0","expo":-8}}]}`,
		"negative":     `{"parsed":[{"price":{"price":"-100","expo":-8}}]}`,
		"not a number": `{"parsed":[{"price":{"price":"abc","expo":-8}}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseHermesPrice([]byte(body))
			assert.ErrorIs(t, err, ErrInvalidPrice)
		})
	}
}

func TestStaticFeed(t *testing.T) {
	price, err := StaticFeed{USD: 200}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(200), price.USD)

	_, err = StaticFeed{}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

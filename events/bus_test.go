package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPublishDelivers(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 16)
	defer bus.Shutdown(context.Background())

	var got atomic.Int64
	done := make(chan struct{})
	bus.SubscribeFunc(TypeSharesPurchased, func(_ context.Context, e Event) error {
		evt, ok := e.(SharesPurchased)
		require.True(t, ok)
		got.Store(int64(evt.SharesReceived))
		close(done)
		return nil
	})

	require.NoError(t, bus.Publish(SharesPurchased{
		Launch:         solanago.NewWallet().PublicKey(),
		Buyer:          solanago.NewWallet().PublicKey(),
		BaseAmount:     1_000,
		SharesReceived: 42,
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
	assert.Equal(t, int64(42), got.Load())
}

func TestPublishSyncNoHandlers(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 4)
	defer bus.Shutdown(context.Background())

	assert.NoError(t, bus.PublishSync(context.Background(), RefundEnabled{}))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 4)
	defer bus.Shutdown(context.Background())

	var calls atomic.Int32
	sub := bus.SubscribeFunc(TypePoked, func(context.Context, Event) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, bus.PublishSync(context.Background(), Poked{TotalYield: 1}))
	sub.Unsubscribe()
	require.NoError(t, bus.PublishSync(context.Background(), Poked{TotalYield: 2}))

	assert.Equal(t, int32(1), calls.Load())
}

func TestPublishAfterShutdown(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 4)
	require.NoError(t, bus.Shutdown(context.Background()))

	assert.Error(t, bus.Publish(LaunchClosed{}))
}

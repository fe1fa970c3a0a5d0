package store

import (
	"path/filepath"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralabs/astra-go/state"
)

func testStores(t *testing.T) map[string]Store {
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	mem := NewMemoryStore()
	t.Cleanup(func() { mem.Close() })

	return map[string]Store{"memory": mem, "sqlite": sqlite}
}

func TestGetMissing(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := s.Get(solanago.NewWallet().PublicKey())
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestApplyAndGet(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			addr := solanago.NewWallet().PublicKey()
			var batch Batch
			batch.Put(addr, []byte{1, 2, 3})
			require.NoError(t, s.Apply(batch))

			data, found, err := s.Get(addr)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, []byte{1, 2, 3}, data)

			var del Batch
			del.Delete(addr)
			require.NoError(t, s.Apply(del))

			_, found, err = s.Get(addr)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestLaunchRoundTrip(t *testing.T) {
	creator := solanago.NewWallet().PublicKey()
	mint := solanago.NewWallet().PublicKey()
	gradAt := int64(1_700_000_000)

	launch := &state.Launch{
		LaunchID:                7,
		Creator:                 creator,
		Name:                    "Moonshot",
		Symbol:                  "MOON",
		URI:                     "https://example.com/moon.json",
		TotalShares:             12_345,
		TotalBase:               67_890,
		CreatorSeedShares:       1_000,
		CreatorSeedBase:         500,
		Graduated:               true,
		TokenMint:               &mint,
		VestingStart:            &gradAt,
		GraduatedAt:             &gradAt,
		CreatedAt:               gradAt - 100,
		TotalSharesAtGraduation: 12_345,
	}

	data, err := Marshal(launch)
	require.NoError(t, err)

	var decoded state.Launch
	require.NoError(t, Unmarshal(data, &decoded))
	assert.Equal(t, *launch, decoded)
	require.NotNil(t, decoded.TokenMint)
	assert.True(t, decoded.TokenMint.Equals(mint))
	// Absent optionals stay absent.
	assert.Nil(t, decoded.PoolAddress)
	assert.Nil(t, decoded.RefundEnabledAt)
}

func TestPositionRoundTrip(t *testing.T) {
	pos := &state.Position{
		Launch:       solanago.NewWallet().PublicKey(),
		User:         solanago.NewWallet().PublicKey(),
		Shares:       42,
		Basis:        4_200,
		LockedShares: 7,
		FirstBuyAt:   1,
	}
	data, err := Marshal(pos)
	require.NoError(t, err)

	var decoded state.Position
	require.NoError(t, Unmarshal(data, &decoded))
	assert.Equal(t, *pos, decoded)
}

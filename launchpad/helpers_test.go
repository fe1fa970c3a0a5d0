package launchpad

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/astralabs/astra-go/chain"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

// Test fixture: $200 per base unit, generous balances, controllable clock.
const testPriceUSD = 200

type testEnv struct {
	engine *Engine
	store  *store.MemoryStore
	ledger *chain.SimLedger
	tokens *chain.SimTokens
	yield  *chain.SimYield

	authority solanago.PublicKey
	operator  solanago.PublicKey
	feeWallet solanago.PublicKey
	vaultFee  solanago.PublicKey
	creator   solanago.PublicKey

	nowUnix int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     store.NewMemoryStore(),
		ledger:    chain.NewSimLedger(),
		tokens:    chain.NewSimTokens(),
		yield:     chain.NewSimYield(),
		authority: solanago.NewWallet().PublicKey(),
		operator:  solanago.NewWallet().PublicKey(),
		feeWallet: solanago.NewWallet().PublicKey(),
		vaultFee:  solanago.NewWallet().PublicKey(),
		creator:   solanago.NewWallet().PublicKey(),
		nowUnix:   1_700_000_000,
	}
	env.engine = New(Options{
		Store:  env.store,
		Ledger: env.ledger,
		Tokens: env.tokens,
		Pools:  chain.NewSimPools(env.tokens),
		Yield:  env.yield,
		Logger: zaptest.NewLogger(t),
		Now:    func() int64 { return env.nowUnix },
	})

	require.NoError(t, env.engine.Initialize(InitializeParams{
		Authority:           env.authority,
		OperatorWallet:      env.operator,
		ProtocolFeeWallet:   env.feeWallet,
		VaultProtocolWallet: env.vaultFee,
		MinSeedLamports:     1,
	}))
	require.NoError(t, env.engine.UpdatePrice(env.operator, testPriceUSD))

	env.ledger.Credit(env.creator, 10_000*state.LamportsPerBaseUnit)
	return env
}

func (env *testEnv) advance(seconds int64) {
	env.nowUnix += seconds
}

// createLaunch opens a launch with a 1-base-unit ($200) creator seed.
func (env *testEnv) createLaunch(t *testing.T) solanago.PublicKey {
	t.Helper()
	addr, err := env.engine.CreateLaunch(CreateLaunchParams{
		Creator:      env.creator,
		Name:         "Test Launch",
		Symbol:       "TEST",
		URI:          "https://example.com/test.json",
		SeedLamports: state.LamportsPerBaseUnit,
	})
	require.NoError(t, err)
	return addr
}

// fundedBuyer returns a wallet with enough lamports for large buys.
func (env *testEnv) fundedBuyer() solanago.PublicKey {
	buyer := solanago.NewWallet().PublicKey()
	env.ledger.Credit(buyer, 5_000*state.LamportsPerBaseUnit)
	return buyer
}

func (env *testEnv) buy(t *testing.T, launch, buyer solanago.PublicKey, amount uint64) BuyResult {
	t.Helper()
	res, err := env.engine.Buy(BuyParams{
		Launch:       launch,
		Buyer:        buyer,
		BaseAmount:   amount,
		MinSharesOut: 1,
	})
	require.NoError(t, err)
	return res
}

func (env *testEnv) loadLaunch(t *testing.T, addr solanago.PublicKey) *state.Launch {
	t.Helper()
	launch, err := env.engine.loadLaunch(addr)
	require.NoError(t, err)
	return launch
}

func (env *testEnv) loadPosition(t *testing.T, launch, user solanago.PublicKey) *state.Position {
	t.Helper()
	pos, err := env.engine.loadPosition(launch, user)
	require.NoError(t, err)
	return pos
}

// graduateAt pumps the launch past the USD target and graduates it.
func (env *testEnv) graduate(t *testing.T, launch solanago.PublicKey) {
	t.Helper()
	buyer := env.fundedBuyer()
	// $42,000 at $200 needs 210 base units of net deposits; buy enough gross
	// to clear the 1% fee.
	env.buy(t, launch, buyer, 213*state.LamportsPerBaseUnit)
	require.NoError(t, env.engine.Graduate(env.operator, launch))
}

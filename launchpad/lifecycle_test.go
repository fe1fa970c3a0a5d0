package launchpad

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralabs/astra-go/state"
)

func TestGraduateBelowTarget(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)

	// $200 of deposits is nowhere near the $42,000 target.
	err := env.engine.Graduate(env.operator, launch)
	assert.ErrorIs(t, err, ErrBelowTarget)
}

func TestGraduateAuthorization(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)

	err := env.engine.Graduate(solanago.NewWallet().PublicKey(), launch)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Force graduation is authority-only; the operator cannot bypass gates.
	err = env.engine.ForceGraduate(env.operator, launch)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGraduateAtTarget(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	env.graduate(t, launch)

	record := env.loadLaunch(t, launch)
	assert.True(t, record.Graduated)
	require.NotNil(t, record.TokenMint)
	require.NotNil(t, record.PoolAddress)
	require.NotNil(t, record.Vault)
	require.NotNil(t, record.VestingStart)
	assert.Equal(t, record.TotalShares, record.TotalSharesAtGraduation)

	// The 800M holder pool stays in launch custody; 200M went to the pool.
	custody := env.tokens.TokenBalance(*record.TokenMint, launch)
	assert.Equal(t, state.TokensForHolders*state.DecimalFactor, custody)
	poolTokens := env.tokens.TokenBalance(*record.TokenMint, *record.PoolAddress)
	assert.Equal(t, state.TokensForLP*state.DecimalFactor, poolTokens)

	// The accumulated curve deposits moved into the pool.
	assert.Equal(t, record.TotalBase, env.ledger.Balance(*record.PoolAddress))

	stats, err := env.engine.loadOrNewCreatorStats(env.creator)
	require.NoError(t, err)
	assert.True(t, stats.IsVerified())

	vault, err := env.engine.loadVault(*record.Vault)
	require.NoError(t, err)
	assert.True(t, vault.Activated)
	assert.Greater(t, vault.LPBalance, uint64(0))
}

func TestGraduationIsOneWay(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	env.graduate(t, launch)

	_, err := env.engine.Buy(BuyParams{
		Launch:       launch,
		Buyer:        env.fundedBuyer(),
		BaseAmount:   state.LamportsPerBaseUnit,
		MinSharesOut: 1,
	})
	assert.ErrorIs(t, err, ErrAlreadyGraduated)

	_, err = env.engine.Sell(SellParams{Launch: launch, Seller: env.creator, SharesToSell: 1})
	assert.ErrorIs(t, err, ErrAlreadyGraduated)

	assert.ErrorIs(t, env.engine.Graduate(env.operator, launch), ErrAlreadyGraduated)
	assert.ErrorIs(t, env.engine.EnableRefund(launch, env.authority), ErrAlreadyGraduated)
}

func TestVerifiedCreatorFeeTier(t *testing.T) {
	env := newTestEnv(t)
	first := env.createLaunch(t)
	env.graduate(t, first)

	second := env.createLaunch(t)
	buyer := env.fundedBuyer()
	const amount = 10 * state.LamportsPerBaseUnit
	res := env.buy(t, second, buyer, amount)

	// One prior graduation flips the creator to the 0.5% tier.
	assert.Equal(t, uint64(amount*50/10_000), res.CreatorFee)
	assert.Equal(t, res.TotalFee-res.CreatorFee, res.ProtocolFee)
}

func TestEnableRefundTiming(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	stranger := solanago.NewWallet().PublicKey()

	err := env.engine.EnableRefund(launch, stranger)
	assert.ErrorIs(t, err, ErrLaunchNotEnded)

	// The authority can pull the plug early.
	other := env.createLaunch(t)
	require.NoError(t, env.engine.EnableRefund(other, env.authority))

	// Past the 7-day window anyone can.
	env.advance(state.LaunchDurationSeconds + 1)
	require.NoError(t, env.engine.EnableRefund(launch, stranger))

	record := env.loadLaunch(t, launch)
	assert.True(t, record.RefundMode)
	require.NotNil(t, record.RefundEnabledAt)

	assert.ErrorIs(t, env.engine.EnableRefund(launch, stranger), ErrRefundModeActive)
}

func TestRefundModeStopsTrading(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	buyer := env.fundedBuyer()
	env.buy(t, launch, buyer, state.LamportsPerBaseUnit)

	require.NoError(t, env.engine.EnableRefund(launch, env.authority))

	_, err := env.engine.Buy(BuyParams{Launch: launch, Buyer: buyer, BaseAmount: 1_000, MinSharesOut: 1})
	assert.ErrorIs(t, err, ErrRefundModeActive)
	_, err = env.engine.Sell(SellParams{Launch: launch, Seller: buyer, SharesToSell: 1})
	assert.ErrorIs(t, err, ErrRefundModeActive)
	assert.ErrorIs(t, env.engine.Graduate(env.operator, launch), ErrRefundModeActive)
}

func TestClaimRefundPaysFullBasis(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	buyer := env.fundedBuyer()
	env.buy(t, launch, buyer, 10*state.LamportsPerBaseUnit)

	pos := env.loadPosition(t, launch, buyer)
	require.NoError(t, env.engine.EnableRefund(launch, env.authority))

	before := env.ledger.Balance(buyer)
	refund, err := env.engine.ClaimRefund(launch, buyer)
	require.NoError(t, err)
	assert.Equal(t, pos.Basis, refund)
	assert.Equal(t, before+refund, env.ledger.Balance(buyer))

	_, err = env.engine.ClaimRefund(launch, buyer)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestRefundWindDownToClose(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	buyer := env.fundedBuyer()
	env.buy(t, launch, buyer, 10*state.LamportsPerBaseUnit)

	require.NoError(t, env.engine.EnableRefund(launch, env.authority))

	janitor := solanago.NewWallet().PublicKey()
	assert.ErrorIs(t, env.engine.CloseLaunch(launch, janitor), ErrLaunchNotEmpty)

	// Push both refunds; the janitor keeps each closed position's deposit.
	_, err := env.engine.PushRefund(launch, janitor, buyer)
	require.NoError(t, err)
	_, err = env.engine.PushRefund(launch, janitor, env.creator)
	require.NoError(t, err)
	assert.Equal(t, 2*state.PositionDepositLamports, env.ledger.Balance(janitor))

	record := env.loadLaunch(t, launch)
	assert.Zero(t, record.TotalShares)
	assert.Zero(t, record.TotalBase)
	assert.True(t, record.Closed())

	require.NoError(t, env.engine.CloseLaunch(launch, janitor))
	_, err = env.engine.loadLaunch(launch)
	assert.ErrorIs(t, err, ErrLaunchNotFound)

	// The close sweep includes the launch storage deposit.
	assert.GreaterOrEqual(t, env.ledger.Balance(janitor), 2*state.PositionDepositLamports+state.LaunchDepositLamports)
}

func TestPushRefundRequiresRefundMode(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)

	_, err := env.engine.PushRefund(launch, solanago.NewWallet().PublicKey(), env.creator)
	assert.ErrorIs(t, err, ErrRefundNotEnabled)
}

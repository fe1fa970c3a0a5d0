package launchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralabs/astra-go/state"
)

func TestVestingRequiresGraduation(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)

	_, err := env.engine.ClaimVesting(launch, env.creator)
	assert.ErrorIs(t, err, ErrNotGraduated)
}

func TestVestingCreatorOnly(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	env.graduate(t, launch)

	_, err := env.engine.ClaimVesting(launch, env.fundedBuyer())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVestingSchedule(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	env.graduate(t, launch)

	seed := env.loadLaunch(t, launch).CreatorSeedShares

	// Nothing vests at t=0.
	_, err := env.engine.ClaimVesting(launch, env.creator)
	assert.ErrorIs(t, err, ErrNoSharesToClaim)

	// Half the window releases half the seed, floor-rounded.
	env.advance(state.VestingDurationSeconds / 2)
	claimed, err := env.engine.ClaimVesting(launch, env.creator)
	require.NoError(t, err)
	assert.Equal(t, seed/2, claimed)

	// Immediately claiming again yields nothing new.
	_, err = env.engine.ClaimVesting(launch, env.creator)
	assert.ErrorIs(t, err, ErrNoSharesToClaim)

	// Past the end of the window the remainder releases exactly.
	env.advance(state.VestingDurationSeconds)
	claimed2, err := env.engine.ClaimVesting(launch, env.creator)
	require.NoError(t, err)
	assert.Equal(t, seed-seed/2, claimed2)

	pos := env.loadPosition(t, launch, env.creator)
	assert.Zero(t, pos.LockedShares)
	assert.Equal(t, seed, pos.VestedSharesClaimed)

	// Fully drained seed cannot vest again.
	env.advance(state.VestingDurationSeconds)
	_, err = env.engine.ClaimVesting(launch, env.creator)
	assert.ErrorIs(t, err, ErrNoSharesToClaim)
}

func TestClaimTokensProRata(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	buyer := env.fundedBuyer()
	res := env.buy(t, launch, buyer, 213*state.LamportsPerBaseUnit)
	require.NoError(t, env.engine.Graduate(env.operator, launch))

	record := env.loadLaunch(t, launch)
	expected := res.Shares * 8 / 10 * state.DecimalFactor // sanity bound, not exact

	lamportsBefore := env.ledger.Balance(buyer)
	amount, err := env.engine.ClaimTokens(launch, buyer)
	require.NoError(t, err)
	assert.Greater(t, amount, expected/2)
	assert.Equal(t, amount, env.tokens.TokenBalance(*record.TokenMint, buyer))

	// Exact pro-rata against the graduation snapshot.
	want, err := HolderTokenAllocation(res.Shares, record.TotalSharesAtGraduation)
	require.NoError(t, err)
	assert.Equal(t, want, amount)

	// The spent position is closed and its storage deposit comes back, so a
	// second claim has nothing to stand on.
	assert.Equal(t, lamportsBefore+state.PositionDepositLamports, env.ledger.Balance(buyer))
	_, err = env.engine.loadPosition(launch, buyer)
	assert.ErrorIs(t, err, ErrPositionNotFound)
	_, err = env.engine.ClaimTokens(launch, buyer)
	assert.ErrorIs(t, err, ErrPositionNotFound)
}

func TestCreatorTokensGatedOnVesting(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	env.graduate(t, launch)

	// The creator cannot claim tokens while seed shares are still vesting.
	_, err := env.engine.ClaimTokens(launch, env.creator)
	assert.ErrorIs(t, err, ErrSeedNotVested)

	env.advance(state.VestingDurationSeconds)
	_, err = env.engine.ClaimVesting(launch, env.creator)
	require.NoError(t, err)

	amount, err := env.engine.ClaimTokens(launch, env.creator)
	require.NoError(t, err)
	assert.Greater(t, amount, uint64(0))
}

func TestClaimCreatorFees(t *testing.T) {
	env := newTestEnv(t)
	launch := env.createLaunch(t)
	buyer := env.fundedBuyer()
	env.buy(t, launch, buyer, 213*state.LamportsPerBaseUnit)

	// Fees are gated on graduation.
	_, err := env.engine.ClaimCreatorFees(launch, env.creator)
	assert.ErrorIs(t, err, ErrNotGraduated)

	require.NoError(t, env.engine.Graduate(env.operator, launch))

	accrued := env.loadLaunch(t, launch).CreatorAccruedFees
	require.Greater(t, accrued, uint64(0))

	before := env.ledger.Balance(env.creator)
	amount, err := env.engine.ClaimCreatorFees(launch, env.creator)
	require.NoError(t, err)
	assert.Equal(t, accrued, amount)
	assert.Equal(t, before+amount, env.ledger.Balance(env.creator))

	_, err = env.engine.ClaimCreatorFees(launch, env.creator)
	assert.ErrorIs(t, err, ErrNoFeesToClaim)

	_, err = env.engine.ClaimCreatorFees(launch, buyer)
	assert.ErrorIs(t, err, ErrUnauthorized)

	stats, err := env.engine.loadOrNewCreatorStats(env.creator)
	require.NoError(t, err)
	assert.Equal(t, amount, stats.TotalFeesEarned)
}

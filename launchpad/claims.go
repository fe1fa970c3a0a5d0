package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/curve"
	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

// ClaimTokens converts a holder's shares into their pro-rata slice of the
// 800M holder pool, against the share count snapshotted at graduation. The
// creator must finish vesting first; unvested seed shares would otherwise
// escape the lock.
func (e *Engine) ClaimTokens(launchAddr, user solanago.PublicKey) (uint64, error) {
	if err := e.beginOp(launchAddr); err != nil {
		return 0, err
	}
	defer e.endOp(launchAddr)

	launch, err := e.loadLaunch(launchAddr)
	if err != nil {
		return 0, err
	}
	if !launch.Graduated {
		return 0, ErrNotGraduated
	}
	if launch.TokenMint == nil {
		return 0, ErrNotGraduated
	}

	pos, err := e.loadPosition(launchAddr, user)
	if err != nil {
		return 0, err
	}
	if pos.IsCreator(launch.Creator) {
		remainingSeed, err := curve.SubU64(launch.CreatorSeedShares, launch.CreatorClaimedShares)
		if err != nil || remainingSeed != 0 {
			return 0, ErrSeedNotVested
		}
	}

	amount, err := HolderTokenAllocation(pos.Shares, launch.TotalSharesAtGraduation)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, ErrNoSharesToClaim
	}

	if err := e.tokens.Transfer(*launch.TokenMint, launchAddr, user, amount); err != nil {
		return 0, err
	}
	// The position is spent; close it and hand its storage deposit back.
	if err := e.ledger.Transfer(launchAddr, user, state.PositionDepositLamports); err != nil {
		return 0, err
	}

	now := e.now()
	var batch store.Batch
	batch.Delete(pos.Address())
	if err := e.store.Apply(batch); err != nil {
		return 0, err
	}

	e.logger.Debug("Tokens claimed",
		zap.String("launch", launchAddr.String()),
		zap.String("user", user.String()),
		zap.Uint64("amount", amount))

	e.emit(events.TokensClaimed{
		Launch:        launchAddr,
		User:          user,
		TokensClaimed: amount,
		Timestamp:     now,
	})
	return amount, nil
}

// ClaimVesting releases the creator's seed shares that have vested linearly
// since graduation. Claims are idempotent over time: each call releases only
// the delta past what was already claimed.
func (e *Engine) ClaimVesting(launchAddr, caller solanago.PublicKey) (uint64, error) {
	if err := e.beginOp(launchAddr); err != nil {
		return 0, err
	}
	defer e.endOp(launchAddr)

	launch, err := e.loadLaunch(launchAddr)
	if err != nil {
		return 0, err
	}
	if !launch.Graduated || launch.VestingStart == nil {
		return 0, ErrNotGraduated
	}
	if !caller.Equals(launch.Creator) {
		return 0, ErrUnauthorized
	}

	now := e.now()
	if now < *launch.VestingStart {
		return 0, ErrNoSharesToClaim
	}

	elapsed := now - *launch.VestingStart
	if elapsed > state.VestingDurationSeconds {
		elapsed = state.VestingDurationSeconds
	}

	remainingSeed, err := curve.SubU64(launch.CreatorSeedShares, launch.CreatorClaimedShares)
	if err != nil {
		return 0, err
	}
	if remainingSeed == 0 {
		return 0, ErrNoSharesToClaim
	}

	totalVested, err := curve.MulDivU64(launch.CreatorSeedShares, uint64(elapsed), uint64(state.VestingDurationSeconds))
	if err != nil {
		return 0, err
	}
	claimable, err := curve.SubU64(totalVested, launch.CreatorClaimedShares)
	if err != nil {
		return 0, err
	}
	if claimable == 0 {
		return 0, ErrNoSharesToClaim
	}

	pos, err := e.loadPosition(launchAddr, caller)
	if err != nil {
		return 0, err
	}
	if claimable > pos.LockedShares {
		return 0, ErrInsufficientShares
	}

	if pos.LockedShares, err = curve.SubU64(pos.LockedShares, claimable); err != nil {
		return 0, err
	}
	if pos.Shares, err = curve.AddU64(pos.Shares, claimable); err != nil {
		return 0, err
	}
	if pos.VestedSharesClaimed, err = curve.AddU64(pos.VestedSharesClaimed, claimable); err != nil {
		return 0, err
	}
	pos.LastUpdatedAt = now

	if launch.CreatorClaimedShares, err = curve.AddU64(launch.CreatorClaimedShares, claimable); err != nil {
		return 0, err
	}

	var batch store.Batch
	if err := stagePut(&batch, launchAddr, launch); err != nil {
		return 0, err
	}
	if err := stagePut(&batch, pos.Address(), pos); err != nil {
		return 0, err
	}
	if err := e.store.Apply(batch); err != nil {
		return 0, err
	}

	e.logger.Debug("Vesting claimed",
		zap.String("launch", launchAddr.String()),
		zap.Uint64("claimable", claimable),
		zap.Uint64("remaining_locked", pos.LockedShares))

	e.emit(events.VestingClaimed{
		Launch:          launchAddr,
		User:            caller,
		SharesUnlocked:  claimable,
		RemainingLocked: pos.LockedShares,
		Timestamp:       now,
	})
	return claimable, nil
}

// ClaimCreatorFees pays out the creator fees accrued in launch custody.
// Graduation-gated: a launch that fails never pays its creator.
func (e *Engine) ClaimCreatorFees(launchAddr, caller solanago.PublicKey) (uint64, error) {
	if err := e.beginOp(launchAddr); err != nil {
		return 0, err
	}
	defer e.endOp(launchAddr)

	launch, err := e.loadLaunch(launchAddr)
	if err != nil {
		return 0, err
	}
	if !caller.Equals(launch.Creator) {
		return 0, ErrUnauthorized
	}
	if !launch.Graduated {
		return 0, ErrNotGraduated
	}
	amount := launch.CreatorAccruedFees
	if amount == 0 {
		return 0, ErrNoFeesToClaim
	}

	// Zero the accrual before moving funds.
	launch.CreatorAccruedFees = 0

	stats, err := e.loadOrNewCreatorStats(launch.Creator)
	if err != nil {
		return 0, err
	}
	if stats.TotalFeesEarned, err = curve.AddU64(stats.TotalFeesEarned, amount); err != nil {
		return 0, err
	}

	if err := e.ledger.Transfer(launchAddr, caller, amount); err != nil {
		return 0, err
	}

	var batch store.Batch
	if err := stagePut(&batch, launchAddr, launch); err != nil {
		return 0, err
	}
	if err := stagePut(&batch, stats.Address(), stats); err != nil {
		return 0, err
	}
	if err := e.store.Apply(batch); err != nil {
		return 0, err
	}

	now := e.now()
	e.logger.Debug("Creator fees claimed",
		zap.String("launch", launchAddr.String()),
		zap.Uint64("amount", amount))

	e.emit(events.CreatorFeesClaimed{
		Launch:    launchAddr,
		Creator:   caller,
		Amount:    amount,
		Timestamp: now,
	})
	return amount, nil
}

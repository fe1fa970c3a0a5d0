package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/curve"
	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

// EnableRefund flips a launch that failed to graduate into refund mode.
// Anyone may call once the launch window has expired; the authority may call
// at any time. The flip is irreversible and ends all curve trading.
func (e *Engine) EnableRefund(launchAddr, caller solanago.PublicKey) error {
	if err := e.beginOp(launchAddr); err != nil {
		return err
	}
	defer e.endOp(launchAddr)

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	launch, err := e.loadLaunch(launchAddr)
	if err != nil {
		return err
	}
	if launch.Graduated {
		return ErrAlreadyGraduated
	}
	if launch.RefundMode {
		return ErrRefundModeActive
	}

	now := e.now()
	if !caller.Equals(cfg.Authority) {
		if now < launch.CreatedAt+state.LaunchDurationSeconds {
			return ErrLaunchNotEnded
		}
	}

	launch.RefundMode = true
	launch.RefundEnabledAt = &now

	var batch store.Batch
	if err := stagePut(&batch, launchAddr, launch); err != nil {
		return err
	}
	if err := e.store.Apply(batch); err != nil {
		return err
	}

	e.logger.Info("Refund mode enabled",
		zap.String("launch", launchAddr.String()),
		zap.String("caller", caller.String()))

	e.emit(events.RefundEnabled{Launch: launchAddr, Timestamp: now})
	return nil
}

// ClaimRefund pays a holder back their full lamport basis. Shares are
// irrelevant in refund mode; the deposit is what comes back.
func (e *Engine) ClaimRefund(launchAddr, user solanago.PublicKey) (uint64, error) {
	if err := e.beginOp(launchAddr); err != nil {
		return 0, err
	}
	defer e.endOp(launchAddr)

	launch, err := e.loadLaunch(launchAddr)
	if err != nil {
		return 0, err
	}
	if !launch.RefundMode {
		return 0, ErrRefundNotEnabled
	}

	pos, err := e.loadPosition(launchAddr, user)
	if err != nil {
		return 0, err
	}
	if pos.HasClaimedRefund {
		return 0, ErrAlreadyClaimed
	}

	refund := pos.Basis
	now := e.now()

	if launch.TotalShares, err = curve.SubU64(launch.TotalShares, pos.TotalShares()); err != nil {
		return 0, err
	}
	if launch.TotalBase, err = curve.SubU64(launch.TotalBase, pos.Basis); err != nil {
		return 0, err
	}

	pos.HasClaimedRefund = true
	pos.Shares = 0
	pos.LockedShares = 0
	pos.Basis = 0
	pos.LastUpdatedAt = now

	if refund > 0 {
		if err := e.ledger.Transfer(launchAddr, user, refund); err != nil {
			return 0, err
		}
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

	e.logger.Debug("Refund claimed",
		zap.String("launch", launchAddr.String()),
		zap.String("user", user.String()),
		zap.Uint64("refund", refund))

	e.emit(events.RefundClaimed{
		Launch:       launchAddr,
		User:         user,
		BaseRefunded: refund,
		Timestamp:    now,
	})
	return refund, nil
}

// PushRefund lets any caller force a refund out to a holder who has not
// claimed. The holder gets their basis; the caller keeps the closed
// position's storage deposit as compensation.
func (e *Engine) PushRefund(launchAddr, caller, recipient solanago.PublicKey) (uint64, error) {
	if err := e.beginOp(launchAddr); err != nil {
		return 0, err
	}
	defer e.endOp(launchAddr)

	launch, err := e.loadLaunch(launchAddr)
	if err != nil {
		return 0, err
	}
	if !launch.RefundMode {
		return 0, ErrRefundNotEnabled
	}

	pos, err := e.loadPosition(launchAddr, recipient)
	if err != nil {
		return 0, err
	}
	if pos.HasClaimedRefund {
		return 0, ErrAlreadyClaimed
	}

	refund := pos.Basis
	now := e.now()

	if launch.TotalShares, err = curve.SubU64(launch.TotalShares, pos.TotalShares()); err != nil {
		return 0, err
	}
	if launch.TotalBase, err = curve.SubU64(launch.TotalBase, pos.Basis); err != nil {
		return 0, err
	}

	if refund > 0 {
		if err := e.ledger.Transfer(launchAddr, recipient, refund); err != nil {
			return 0, err
		}
	}
	if err := e.ledger.Transfer(launchAddr, caller, state.PositionDepositLamports); err != nil {
		return 0, err
	}

	var batch store.Batch
	if err := stagePut(&batch, launchAddr, launch); err != nil {
		return 0, err
	}
	batch.Delete(pos.Address())
	if err := e.store.Apply(batch); err != nil {
		return 0, err
	}

	e.logger.Debug("Refund pushed",
		zap.String("launch", launchAddr.String()),
		zap.String("recipient", recipient.String()),
		zap.Uint64("refund", refund))

	e.emit(events.RefundPushed{
		Launch:    launchAddr,
		Recipient: recipient,
		Amount:    refund,
		Timestamp: now,
	})
	return refund, nil
}

// CloseLaunch destroys a fully wound-down launch record. Only reachable from
// refund mode with both aggregates at zero; the caller sweeps whatever
// lamports remain at the launch address, storage deposit included.
func (e *Engine) CloseLaunch(launchAddr, caller solanago.PublicKey) error {
	if err := e.beginOp(launchAddr); err != nil {
		return err
	}
	defer e.endOp(launchAddr)

	launch, err := e.loadLaunch(launchAddr)
	if err != nil {
		return err
	}
	if !launch.RefundMode {
		return ErrRefundNotEnabled
	}
	if launch.TotalShares != 0 || launch.TotalBase != 0 {
		return ErrLaunchNotEmpty
	}

	if residual := e.ledger.Balance(launchAddr); residual > 0 {
		if err := e.ledger.Transfer(launchAddr, caller, residual); err != nil {
			return err
		}
	}

	var batch store.Batch
	batch.Delete(launchAddr)
	if err := e.store.Apply(batch); err != nil {
		return err
	}

	now := e.now()
	e.logger.Info("Launch closed",
		zap.String("launch", launchAddr.String()),
		zap.String("caller", caller.String()))

	e.emit(events.LaunchClosed{Launch: launchAddr, Caller: caller, Timestamp: now})
	return nil
}

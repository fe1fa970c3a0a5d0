package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/curve"
	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

// Graduate promotes a launch to the open market once the USD market cap has
// reached the target. Operator or authority only; holder-count and
// concentration gates run in the operator's off-chain pipeline before it
// calls in.
func (e *Engine) Graduate(caller, launchAddr solanago.PublicKey) error {
	return e.graduate(caller, launchAddr, false)
}

// ForceGraduate bypasses the market-cap gate. Authority only; an emergency
// escape hatch when the operator pipeline is stuck.
func (e *Engine) ForceGraduate(caller, launchAddr solanago.PublicKey) error {
	return e.graduate(caller, launchAddr, true)
}

func (e *Engine) graduate(caller, launchAddr solanago.PublicKey, force bool) error {
	if err := e.beginOp(launchAddr); err != nil {
		return err
	}
	defer e.endOp(launchAddr)

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if force {
		if !caller.Equals(cfg.Authority) {
			return ErrUnauthorized
		}
	} else if !caller.Equals(cfg.OperatorWallet) && !caller.Equals(cfg.Authority) {
		return ErrUnauthorized
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
	if launch.TotalBase == 0 || launch.TotalShares == 0 {
		return ErrInvalidAmount
	}

	now := e.now()
	if !force {
		if !cfg.PriceUsable(now) {
			return ErrPriceUnavailable
		}
		capUSD, ok := launch.MarketCapUSD(cfg.BasePriceUSD)
		if !ok || capUSD < state.GraduationMarketCapUSD {
			return ErrBelowTarget
		}
	}

	// Mint the full fixed supply into launch custody: 800M for holder claims,
	// 200M paired with the accumulated base as pool liquidity.
	mint, err := e.tokens.CreateMint(state.TokenDecimals)
	if err != nil {
		return err
	}
	if err := e.tokens.MintTo(mint, launchAddr, state.TotalSupply*state.DecimalFactor); err != nil {
		return err
	}

	baseForLP := launch.TotalBase
	tokensForLP := state.TokensForLP * state.DecimalFactor
	pool, err := e.pools.CreatePool(mint, baseForLP, tokensForLP)
	if err != nil {
		return err
	}
	if err := e.ledger.Transfer(launchAddr, pool.Address, baseForLP); err != nil {
		return err
	}
	if err := e.tokens.Transfer(mint, launchAddr, pool.Address, tokensForLP); err != nil {
		return err
	}

	vault := &state.Vault{
		Launch:     launchAddr,
		Creator:    launch.Creator,
		LPMint:     pool.LPMint,
		LPBalance:  pool.LPAmount,
		Activated:  true,
		LastPokeAt: now,
	}
	vaultAddr := vault.Address()

	launch.Graduated = true
	launch.GraduatedAt = &now
	launch.VestingStart = &now
	launch.TokenMint = &mint
	launch.PoolAddress = &pool.Address
	launch.Vault = &vaultAddr
	launch.TotalSharesAtGraduation = launch.TotalShares

	stats, err := e.loadOrNewCreatorStats(launch.Creator)
	if err != nil {
		return err
	}
	stats.RecordGraduation()

	var batch store.Batch
	if err := stagePut(&batch, launchAddr, launch); err != nil {
		return err
	}
	if err := stagePut(&batch, vaultAddr, vault); err != nil {
		return err
	}
	if err := stagePut(&batch, stats.Address(), stats); err != nil {
		return err
	}
	if err := e.store.Apply(batch); err != nil {
		return err
	}

	e.logger.Info("Launch graduated",
		zap.String("launch", launchAddr.String()),
		zap.String("token_mint", mint.String()),
		zap.String("pool", pool.Address.String()),
		zap.Uint64("base_for_lp", baseForLP),
		zap.Bool("forced", force))

	e.emit(events.Graduated{
		Launch:      launchAddr,
		TokenMint:   mint,
		PoolAddress: pool.Address,
		LPMint:      pool.LPMint,
		BaseForLP:   baseForLP,
		TotalShares: launch.TotalSharesAtGraduation,
		Timestamp:   now,
	})
	return nil
}

// HolderTokenAllocation returns the token amount a share count claims from
// the holder pool, pro-rata against the graduation snapshot.
func HolderTokenAllocation(shares, totalSharesAtGraduation uint64) (uint64, error) {
	if totalSharesAtGraduation == 0 {
		return 0, curve.ErrDivisionByZero
	}
	return curve.MulDivU64(shares, state.TokensForHolders*state.DecimalFactor, totalSharesAtGraduation)
}

package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/curve"
	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

// BuyParams is one curve purchase.
type BuyParams struct {
	Launch     solanago.PublicKey
	Buyer      solanago.PublicKey
	BaseAmount uint64

	// MinSharesOut is the slippage floor; it must be positive so a quote
	// cannot silently round to nothing.
	MinSharesOut uint64
}

// BuyResult reports what a purchase produced.
type BuyResult struct {
	Shares      uint64
	TotalFee    uint64
	CreatorFee  uint64
	ProtocolFee uint64
}

// Buy purchases shares on the curve. The 1% fee is taken off the top and
// split by the creator's verification tier; the protocol side is always the
// total minus the creator side so the two never drift from the whole.
func (e *Engine) Buy(params BuyParams) (BuyResult, error) {
	if err := e.beginOp(params.Launch); err != nil {
		return BuyResult{}, err
	}
	defer e.endOp(params.Launch)

	if params.BaseAmount == 0 {
		return BuyResult{}, ErrInvalidAmount
	}
	if params.BaseAmount > state.MaxBuyLamports {
		return BuyResult{}, ErrExceedsMaxBuy
	}
	if params.MinSharesOut == 0 {
		return BuyResult{}, ErrMinOutZero
	}

	cfg, err := e.loadConfig()
	if err != nil {
		return BuyResult{}, err
	}
	if cfg.Paused {
		return BuyResult{}, ErrPaused
	}
	launch, err := e.loadLaunch(params.Launch)
	if err != nil {
		return BuyResult{}, err
	}
	if launch.Graduated {
		return BuyResult{}, ErrAlreadyGraduated
	}
	if launch.RefundMode {
		return BuyResult{}, ErrRefundModeActive
	}

	stats, err := e.loadOrNewCreatorStats(launch.Creator)
	if err != nil {
		return BuyResult{}, err
	}

	totalFee, err := curve.MulDivU64(params.BaseAmount, state.TotalFeeBps, state.BpsDenominator)
	if err != nil {
		return BuyResult{}, err
	}
	creatorFee, err := curve.MulDivU64(params.BaseAmount, stats.CreatorFeeBps(), state.BpsDenominator)
	if err != nil {
		return BuyResult{}, err
	}
	protocolFee, err := curve.SubU64(totalFee, creatorFee)
	if err != nil {
		return BuyResult{}, err
	}
	netBase, err := curve.SubU64(params.BaseAmount, totalFee)
	if err != nil {
		return BuyResult{}, err
	}

	shares, err := curve.BuyReturn(netBase, launch.TotalShares)
	if err != nil {
		return BuyResult{}, err
	}
	if shares < params.MinSharesOut {
		return BuyResult{}, ErrSlippageExceeded
	}

	now := e.now()
	pos, err := e.loadOrNewPosition(params.Launch, params.Buyer)
	if err != nil {
		return BuyResult{}, err
	}
	newPosition := pos.FirstBuyAt == 0
	if newPosition {
		pos.FirstBuyAt = now
	}
	if pos.Shares, err = curve.AddU64(pos.Shares, shares); err != nil {
		return BuyResult{}, err
	}
	if pos.Basis, err = curve.AddU64(pos.Basis, netBase); err != nil {
		return BuyResult{}, err
	}
	pos.LastUpdatedAt = now

	if launch.TotalShares, err = curve.AddU64(launch.TotalShares, shares); err != nil {
		return BuyResult{}, err
	}
	if launch.TotalBase, err = curve.AddU64(launch.TotalBase, netBase); err != nil {
		return BuyResult{}, err
	}
	if launch.CreatorAccruedFees, err = curve.AddU64(launch.CreatorAccruedFees, creatorFee); err != nil {
		return BuyResult{}, err
	}
	if launch.ProtocolAccruedFees, err = curve.AddU64(launch.ProtocolAccruedFees, protocolFee); err != nil {
		return BuyResult{}, err
	}

	// Protocol fee goes straight to the treasury; the creator fee waits in
	// launch custody for a post-graduation claim.
	toLaunch := netBase + creatorFee
	if newPosition {
		toLaunch += state.PositionDepositLamports
	}
	if err := e.ledger.Transfer(params.Buyer, cfg.ProtocolFeeWallet, protocolFee); err != nil {
		return BuyResult{}, err
	}
	if err := e.ledger.Transfer(params.Buyer, params.Launch, toLaunch); err != nil {
		return BuyResult{}, err
	}

	var batch store.Batch
	if err := stagePut(&batch, params.Launch, launch); err != nil {
		return BuyResult{}, err
	}
	if err := stagePut(&batch, pos.Address(), pos); err != nil {
		return BuyResult{}, err
	}
	if err := e.store.Apply(batch); err != nil {
		return BuyResult{}, err
	}

	e.logger.Debug("Shares purchased",
		zap.String("launch", params.Launch.String()),
		zap.Uint64("base_amount", params.BaseAmount),
		zap.Uint64("shares", shares))

	e.emit(events.SharesPurchased{
		Launch:         params.Launch,
		Buyer:          params.Buyer,
		BaseAmount:     params.BaseAmount,
		SharesReceived: shares,
		Timestamp:      now,
	})
	e.emitMarketCap(cfg, launch, now)

	return BuyResult{
		Shares:      shares,
		TotalFee:    totalFee,
		CreatorFee:  creatorFee,
		ProtocolFee: protocolFee,
	}, nil
}

// emitMarketCap publishes the valuation after a trade, plus the graduation
// notice once the cap crosses 95% of the target. Skipped entirely when no
// usable price exists.
func (e *Engine) emitMarketCap(cfg *state.GlobalConfig, launch *state.Launch, now int64) {
	if !cfg.PriceUsable(now) {
		return
	}
	capUSD, ok := launch.MarketCapUSD(cfg.BasePriceUSD)
	if !ok {
		return
	}
	e.emit(events.MarketCapUpdated{
		Launch:       launch.Address(),
		MarketCapUSD: capUSD,
		TotalShares:  launch.TotalShares,
		TotalBase:    launch.TotalBase,
		Timestamp:    now,
	})

	threshold, err := curve.MulDivU64(state.GraduationMarketCapUSD, state.GraduationThresholdNoticeBps, state.BpsDenominator)
	if err != nil {
		return
	}
	if capUSD >= threshold {
		e.emit(events.ReadyToGraduate{
			Launch:       launch.Address(),
			MarketCapUSD: capUSD,
			ThresholdUSD: state.GraduationMarketCapUSD,
			Timestamp:    now,
		})
	}
}

// SellParams is one curve exit.
type SellParams struct {
	Launch       solanago.PublicKey
	Seller       solanago.PublicKey
	SharesToSell uint64
	MinBaseOut   uint64
}

// Sell redeems shares for their proportional basis. There is no sell fee and
// no curve pricing on the way out: sellers recover deposit, never gains.
// Locked seed shares cannot be sold, but they stay in the proportion so the
// creator cannot drain the seed deposit through the unlocked side.
func (e *Engine) Sell(params SellParams) (uint64, error) {
	if err := e.beginOp(params.Launch); err != nil {
		return 0, err
	}
	defer e.endOp(params.Launch)

	if params.SharesToSell == 0 {
		return 0, ErrInvalidAmount
	}

	launch, err := e.loadLaunch(params.Launch)
	if err != nil {
		return 0, err
	}
	if launch.Graduated {
		return 0, ErrAlreadyGraduated
	}
	if launch.RefundMode {
		return 0, ErrRefundModeActive
	}

	pos, err := e.loadPosition(params.Launch, params.Seller)
	if err != nil {
		return 0, err
	}
	if params.SharesToSell > pos.Shares {
		return 0, ErrInsufficientShares
	}
	if params.MinBaseOut > pos.Basis {
		return 0, ErrInvalidAmount
	}

	refund, err := curve.SellReturn(params.SharesToSell, pos.TotalShares(), pos.Basis)
	if err != nil {
		return 0, err
	}
	if refund < params.MinBaseOut {
		return 0, ErrSlippageExceeded
	}

	now := e.now()
	if pos.Shares, err = curve.SubU64(pos.Shares, params.SharesToSell); err != nil {
		return 0, err
	}
	if pos.Basis, err = curve.SubU64(pos.Basis, refund); err != nil {
		return 0, err
	}
	pos.LastUpdatedAt = now

	if launch.TotalShares, err = curve.SubU64(launch.TotalShares, params.SharesToSell); err != nil {
		return 0, err
	}
	if launch.TotalBase, err = curve.SubU64(launch.TotalBase, refund); err != nil {
		return 0, err
	}

	if err := e.ledger.Transfer(params.Launch, params.Seller, refund); err != nil {
		return 0, err
	}

	var batch store.Batch
	if err := stagePut(&batch, params.Launch, launch); err != nil {
		return 0, err
	}
	if err := stagePut(&batch, pos.Address(), pos); err != nil {
		return 0, err
	}
	if err := e.store.Apply(batch); err != nil {
		return 0, err
	}

	e.logger.Debug("Shares sold",
		zap.String("launch", params.Launch.String()),
		zap.Uint64("shares", params.SharesToSell),
		zap.Uint64("refund", refund))

	e.emit(events.SharesSold{
		Launch:       params.Launch,
		Seller:       params.Seller,
		SharesSold:   params.SharesToSell,
		BaseRefunded: refund,
		Timestamp:    now,
	})
	return refund, nil
}

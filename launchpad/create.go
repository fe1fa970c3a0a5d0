package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/curve"
	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

const (
	maxNameLen   = 50
	maxSymbolLen = 10
	maxURILen    = 200
)

// CreateLaunchParams opens a new launch with the creator's mandatory seed
// purchase.
type CreateLaunchParams struct {
	Creator solanago.PublicKey
	Name    string
	Symbol  string
	URI     string

	// SeedLamports is the creator's initial buy, bounded in USD terms.
	SeedLamports uint64
}

// CreateLaunch registers a launch and executes the creator's seed purchase.
// The seed pays the full protocol fee (no creator cut on your own launch) and
// the resulting shares stay locked for post-graduation vesting.
func (e *Engine) CreateLaunch(params CreateLaunchParams) (solanago.PublicKey, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return solanago.PublicKey{}, err
	}
	if cfg.Paused {
		return solanago.PublicKey{}, ErrPaused
	}
	if params.Name == "" || len(params.Name) > maxNameLen ||
		params.Symbol == "" || len(params.Symbol) > maxSymbolLen ||
		params.URI == "" || len(params.URI) > maxURILen {
		return solanago.PublicKey{}, ErrInvalidMetadata
	}
	if params.SeedLamports == 0 {
		return solanago.PublicKey{}, ErrInvalidAmount
	}
	if params.SeedLamports < cfg.MinSeedLamports {
		return solanago.PublicKey{}, ErrSeedTooSmall
	}

	now := e.now()
	// Seed bounds are USD-denominated and refuse to evaluate on a stale price.
	if !cfg.PriceUsable(now) {
		return solanago.PublicKey{}, ErrPriceUnavailable
	}
	minSeed, ok := cfg.UsdToLamports(state.MinSeedUSD)
	if !ok {
		return solanago.PublicKey{}, ErrPriceUnavailable
	}
	maxSeed, ok := cfg.UsdToLamports(state.MaxSeedUSD)
	if !ok {
		return solanago.PublicKey{}, ErrPriceUnavailable
	}
	if params.SeedLamports < minSeed {
		return solanago.PublicKey{}, ErrSeedTooSmall
	}
	if params.SeedLamports > maxSeed {
		return solanago.PublicKey{}, ErrSeedTooLarge
	}

	// The seed buy pays the full fee to the protocol and mints shares on the
	// net amount.
	seedFee, err := curve.MulDivU64(params.SeedLamports, state.TotalFeeBps, state.BpsDenominator)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	netSeed, err := curve.SubU64(params.SeedLamports, seedFee)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	seedShares, err := curve.BuyReturn(netSeed, 0)
	if err != nil {
		return solanago.PublicKey{}, err
	}

	launchID := cfg.TotalLaunches
	launch := &state.Launch{
		LaunchID:          launchID,
		Creator:           params.Creator,
		Name:              params.Name,
		Symbol:            params.Symbol,
		URI:               params.URI,
		TotalShares:       seedShares,
		TotalBase:         netSeed,
		CreatorSeedShares: seedShares,
		CreatorSeedBase:   netSeed,
		CreatedAt:         now,
	}
	launchAddr := launch.Address()

	// Seed shares stay locked until vesting releases them after graduation.
	pos := &state.Position{
		Launch:        launchAddr,
		User:          params.Creator,
		LockedShares:  seedShares,
		Basis:         netSeed,
		FirstBuyAt:    now,
		LastUpdatedAt: now,
	}

	stats, err := e.loadOrNewCreatorStats(params.Creator)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	stats.RecordLaunch()
	cfg.TotalLaunches++

	// The creator funds the fee, the net seed and both record deposits up
	// front.
	if err := e.ledger.Transfer(params.Creator, cfg.ProtocolFeeWallet, seedFee); err != nil {
		return solanago.PublicKey{}, err
	}
	escrow := netSeed + state.LaunchDepositLamports + state.PositionDepositLamports
	if err := e.ledger.Transfer(params.Creator, launchAddr, escrow); err != nil {
		return solanago.PublicKey{}, err
	}

	var batch store.Batch
	if err := stagePut(&batch, launchAddr, launch); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := stagePut(&batch, pos.Address(), pos); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := stagePut(&batch, stats.Address(), stats); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := stagePut(&batch, state.DeriveConfigAddress(), cfg); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := e.store.Apply(batch); err != nil {
		return solanago.PublicKey{}, err
	}

	e.logger.Info("Launch created",
		zap.Uint64("launch_id", launchID),
		zap.String("launch", launchAddr.String()),
		zap.String("creator", params.Creator.String()),
		zap.Uint64("seed_lamports", params.SeedLamports),
		zap.Uint64("seed_fee", seedFee),
		zap.Uint64("seed_shares", seedShares))

	e.emit(events.LaunchCreated{
		LaunchID:     launchID,
		Launch:       launchAddr,
		Creator:      params.Creator,
		Name:         params.Name,
		Symbol:       params.Symbol,
		SeedLamports: params.SeedLamports,
		SeedShares:   seedShares,
		Timestamp:    now,
	})
	return launchAddr, nil
}

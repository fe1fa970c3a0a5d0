package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

// InitializeParams seeds the protocol-wide config singleton.
type InitializeParams struct {
	Authority           solanago.PublicKey
	OperatorWallet      solanago.PublicKey
	ProtocolFeeWallet   solanago.PublicKey
	VaultProtocolWallet solanago.PublicKey
	MinSeedLamports     uint64
}

// Initialize creates the global config. It fails if one already exists.
func (e *Engine) Initialize(params InitializeParams) error {
	_, found, err := e.store.Get(state.DeriveConfigAddress())
	if err != nil {
		return err
	}
	if found {
		return ErrConfigExists
	}

	cfg := &state.GlobalConfig{
		Authority:           params.Authority,
		OperatorWallet:      params.OperatorWallet,
		ProtocolFeeWallet:   params.ProtocolFeeWallet,
		VaultProtocolWallet: params.VaultProtocolWallet,
		MinSeedLamports:     params.MinSeedLamports,
	}

	var batch store.Batch
	if err := stagePut(&batch, state.DeriveConfigAddress(), cfg); err != nil {
		return err
	}
	if err := e.store.Apply(batch); err != nil {
		return err
	}

	e.logger.Info("Config initialized",
		zap.String("authority", params.Authority.String()))
	e.emit(events.ConfigInitialized{
		Authority:       params.Authority,
		MinSeedLamports: params.MinSeedLamports,
	})
	return nil
}

// UpdatePrice refreshes the cached oracle price. Only the operator or the
// authority may push prices.
func (e *Engine) UpdatePrice(caller solanago.PublicKey, basePriceUSD uint64) error {
	if basePriceUSD == 0 {
		return ErrInvalidAmount
	}
	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if !caller.Equals(cfg.OperatorWallet) && !caller.Equals(cfg.Authority) {
		return ErrUnauthorized
	}

	now := e.now()
	cfg.BasePriceUSD = basePriceUSD
	cfg.PriceLastUpdated = now

	var batch store.Batch
	if err := stagePut(&batch, state.DeriveConfigAddress(), cfg); err != nil {
		return err
	}
	if err := e.store.Apply(batch); err != nil {
		return err
	}

	e.emit(events.PriceUpdated{BasePriceUSD: basePriceUSD, Timestamp: now})
	return nil
}

// UpdateConfigParams rotates config fields. Nil pointers leave the current
// value untouched.
type UpdateConfigParams struct {
	OperatorWallet      *solanago.PublicKey
	ProtocolFeeWallet   *solanago.PublicKey
	VaultProtocolWallet *solanago.PublicKey
	MinSeedLamports     *uint64
	Paused              *bool
}

// UpdateConfig applies admin changes. Authority only.
func (e *Engine) UpdateConfig(caller solanago.PublicKey, params UpdateConfigParams) error {
	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	if !caller.Equals(cfg.Authority) {
		return ErrUnauthorized
	}

	if params.OperatorWallet != nil {
		cfg.OperatorWallet = *params.OperatorWallet
	}
	if params.ProtocolFeeWallet != nil {
		cfg.ProtocolFeeWallet = *params.ProtocolFeeWallet
	}
	if params.VaultProtocolWallet != nil {
		cfg.VaultProtocolWallet = *params.VaultProtocolWallet
	}
	if params.MinSeedLamports != nil {
		cfg.MinSeedLamports = *params.MinSeedLamports
	}
	if params.Paused != nil {
		cfg.Paused = *params.Paused
	}

	var batch store.Batch
	if err := stagePut(&batch, state.DeriveConfigAddress(), cfg); err != nil {
		return err
	}
	return e.store.Apply(batch)
}

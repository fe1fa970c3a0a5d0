package launchpad

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/curve"
	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

// PokeResult reports one yield distribution.
type PokeResult struct {
	TotalYield uint64
	Split      state.YieldSplit
}

// Poke collects the yield accrued to a graduated launch's vault and
// distributes it: 1% to the caller as the keeper incentive, 60% to the
// creator, 10% to the protocol, the remainder compounded back into the
// vault. Anyone may poke; zero yield still advances the poke clock.
func (e *Engine) Poke(launchAddr, caller solanago.PublicKey) (PokeResult, error) {
	if err := e.beginOp(launchAddr); err != nil {
		return PokeResult{}, err
	}
	defer e.endOp(launchAddr)

	cfg, err := e.loadConfig()
	if err != nil {
		return PokeResult{}, err
	}
	launch, err := e.loadLaunch(launchAddr)
	if err != nil {
		return PokeResult{}, err
	}
	if !launch.Graduated || launch.Vault == nil {
		return PokeResult{}, ErrNotGraduated
	}

	vault, err := e.loadVault(*launch.Vault)
	if err != nil {
		return PokeResult{}, err
	}
	if !vault.Activated {
		return PokeResult{}, ErrVaultNotActivated
	}
	vaultAddr := *launch.Vault

	yieldAmount, err := e.yield.Collect(vaultAddr)
	if err != nil {
		return PokeResult{}, err
	}

	now := e.now()
	if yieldAmount == 0 {
		vault.LastPokeAt = now
		var batch store.Batch
		if err := stagePut(&batch, vaultAddr, vault); err != nil {
			return PokeResult{}, err
		}
		if err := e.store.Apply(batch); err != nil {
			return PokeResult{}, err
		}
		e.emit(events.Poked{Vault: vaultAddr, Caller: caller, Timestamp: now})
		return PokeResult{}, nil
	}

	split, err := state.SplitYield(yieldAmount)
	if err != nil {
		return PokeResult{}, err
	}

	// Yield lands at the vault address, then the three explicit shares leave;
	// the compounded remainder stays behind.
	e.ledger.Credit(vaultAddr, yieldAmount)
	if err := e.ledger.Transfer(vaultAddr, caller, split.Caller); err != nil {
		return PokeResult{}, err
	}
	if err := e.ledger.Transfer(vaultAddr, vault.Creator, split.Creator); err != nil {
		return PokeResult{}, err
	}
	if err := e.ledger.Transfer(vaultAddr, cfg.VaultProtocolWallet, split.Protocol); err != nil {
		return PokeResult{}, err
	}

	if vault.TotalYieldCollected, err = curve.AddU64(vault.TotalYieldCollected, yieldAmount); err != nil {
		return PokeResult{}, err
	}
	if vault.TotalCallerPaid, err = curve.AddU64(vault.TotalCallerPaid, split.Caller); err != nil {
		return PokeResult{}, err
	}
	if vault.TotalCreatorPaid, err = curve.AddU64(vault.TotalCreatorPaid, split.Creator); err != nil {
		return PokeResult{}, err
	}
	if vault.TotalProtocolPaid, err = curve.AddU64(vault.TotalProtocolPaid, split.Protocol); err != nil {
		return PokeResult{}, err
	}
	if vault.TotalCompounded, err = curve.AddU64(vault.TotalCompounded, split.Compounded); err != nil {
		return PokeResult{}, err
	}
	vault.LastPokeAt = now

	var batch store.Batch
	if err := stagePut(&batch, vaultAddr, vault); err != nil {
		return PokeResult{}, err
	}
	if err := e.store.Apply(batch); err != nil {
		return PokeResult{}, err
	}

	e.logger.Debug("Vault poked",
		zap.String("vault", vaultAddr.String()),
		zap.Uint64("yield", yieldAmount),
		zap.Uint64("compounded", split.Compounded))

	e.emit(events.Poked{
		Vault:          vaultAddr,
		Caller:         caller,
		TotalYield:     yieldAmount,
		CallerReward:   split.Caller,
		CreatorReward:  split.Creator,
		ProtocolReward: split.Protocol,
		Compounded:     split.Compounded,
		Timestamp:      now,
	})
	return PokeResult{TotalYield: yieldAmount, Split: split}, nil
}

package state

import (
	solanago "github.com/gagliardetto/solana-go"

	"github.com/astralabs/astra-go/curve"
)

// Vault holds a graduated launch's pool-liquidity tokens and the cumulative
// accounting of periodic yield distributions.
type Vault struct {
	Launch  solanago.PublicKey
	Creator solanago.PublicKey
	LPMint  solanago.PublicKey

	LPBalance uint64
	Activated bool

	TotalYieldCollected uint64
	TotalCreatorPaid    uint64
	TotalProtocolPaid   uint64
	TotalCompounded     uint64
	TotalCallerPaid     uint64

	LastPokeAt int64
}

// YieldSplit carves a collected yield amount into the caller incentive,
// creator reward, protocol reward, and the compounded remainder.
type YieldSplit struct {
	Caller     uint64
	Creator    uint64
	Protocol   uint64
	Compounded uint64
}

// SplitYield distributes amount by the fixed percentages. The compounded part
// is amount minus the three explicit shares, never an independent percentage,
// so the four parts always sum exactly to the input.
func SplitYield(amount uint64) (YieldSplit, error) {
	caller, err := curve.MulDivU64(amount, YieldCallerBps, BpsDenominator)
	if err != nil {
		return YieldSplit{}, err
	}
	creator, err := curve.MulDivU64(amount, YieldCreatorBps, BpsDenominator)
	if err != nil {
		return YieldSplit{}, err
	}
	protocol, err := curve.MulDivU64(amount, YieldProtocolBps, BpsDenominator)
	if err != nil {
		return YieldSplit{}, err
	}
	rest, err := curve.SubU64(amount, caller)
	if err != nil {
		return YieldSplit{}, err
	}
	rest, err = curve.SubU64(rest, creator)
	if err != nil {
		return YieldSplit{}, err
	}
	compounded, err := curve.SubU64(rest, protocol)
	if err != nil {
		return YieldSplit{}, err
	}
	return YieldSplit{Caller: caller, Creator: creator, Protocol: protocol, Compounded: compounded}, nil
}

// Address derives the vault record address.
func (v *Vault) Address() solanago.PublicKey {
	return DeriveVaultAddress(v.Launch)
}

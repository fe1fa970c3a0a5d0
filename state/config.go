// Package state defines the persisted records of the launch protocol and the
// pure policy methods that read them. Records are borsh-serializable; optional
// graduation artifacts use pointer fields so "not yet graduated" is never
// confused with a zero identity.
package state

import (
	solanago "github.com/gagliardetto/solana-go"

	"github.com/astralabs/astra-go/curve"
)

// GlobalConfig is the protocol-wide singleton, created once at deployment and
// mutated only by admin operations and the price updater.
type GlobalConfig struct {
	// Authority can rotate config fields and force-graduate.
	Authority solanago.PublicKey

	// OperatorWallet is allowed to call graduate once off-chain gates pass.
	OperatorWallet solanago.PublicKey

	// ProtocolFeeWallet receives the protocol side of trading fees.
	ProtocolFeeWallet solanago.PublicKey

	// VaultProtocolWallet receives the protocol share of vault yield.
	VaultProtocolWallet solanago.PublicKey

	// MinSeedLamports floors the creator seed in base units.
	MinSeedLamports uint64

	// BasePriceUSD is the cached oracle price in whole USD per base unit,
	// refreshed by the price updater.
	BasePriceUSD uint64

	// PriceLastUpdated is the unix time of the last price refresh.
	PriceLastUpdated int64

	// Paused is the emergency stop.
	Paused bool

	// TotalLaunches counts launches ever created; doubles as the next launch ID.
	TotalLaunches uint64
}

// UsdToLamports converts a whole-USD amount to lamports at the cached price.
// Fails closed (ok=false) when no price is available.
func (c *GlobalConfig) UsdToLamports(usd uint64) (uint64, bool) {
	if c.BasePriceUSD == 0 {
		return 0, false
	}
	lamports, err := curve.MulDivU64(usd, LamportsPerBaseUnit, c.BasePriceUSD)
	if err != nil {
		return 0, false
	}
	return lamports, true
}

// LamportsToUsd converts lamports to whole USD at the cached price.
func (c *GlobalConfig) LamportsToUsd(lamports uint64) (uint64, bool) {
	usd, err := curve.MulDivU64(lamports, c.BasePriceUSD, LamportsPerBaseUnit)
	if err != nil {
		return 0, false
	}
	return usd, true
}

// PriceStale reports whether the cached price is older than the staleness
// window. Conversions must refuse, not default, on a stale price.
func (c *GlobalConfig) PriceStale(now int64) bool {
	return now-c.PriceLastUpdated > MaxPriceStalenessSeconds
}

// PriceUsable combines the zero and staleness checks.
func (c *GlobalConfig) PriceUsable(now int64) bool {
	return c.BasePriceUSD > 0 && !c.PriceStale(now)
}

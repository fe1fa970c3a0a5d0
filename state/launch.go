package state

import (
	solanago "github.com/gagliardetto/solana-go"

	"github.com/astralabs/astra-go/curve"
)

// Launch is one token launch on the bonding curve. It is created by
// create-launch, mutated by every trading and lifecycle operation, and
// destroyed only after a refund wind-down empties it.
//
// Graduated and RefundMode are mutually exclusive terminal branches; once
// either is set it is never unset.
type Launch struct {
	LaunchID uint64
	Creator  solanago.PublicKey

	Name   string
	Symbol string
	URI    string

	// TotalShares is dynamic and uncapped; graduation triggers on the USD
	// market-cap target, not a share count.
	TotalShares uint64

	// TotalBase is the sum of all live positions' basis, in lamports.
	TotalBase uint64

	// Creator seed bookkeeping; only these shares vest.
	CreatorSeedShares uint64
	CreatorSeedBase   uint64

	Graduated  bool
	RefundMode bool

	// Graduation artifacts, absent until graduation.
	TokenMint    *solanago.PublicKey `bin:"optional"`
	PoolAddress  *solanago.PublicKey `bin:"optional"`
	Vault        *solanago.PublicKey `bin:"optional"`
	VestingStart *int64              `bin:"optional"`

	// CreatorClaimedShares tracks seed shares already released by vesting.
	CreatorClaimedShares uint64

	CreatedAt       int64
	GraduatedAt     *int64 `bin:"optional"`
	RefundEnabledAt *int64 `bin:"optional"`

	// Accrued fee balances held in launch custody. Protocol fees are forwarded
	// on every buy; creator fees wait for post-graduation claim.
	CreatorAccruedFees  uint64
	ProtocolAccruedFees uint64

	// TotalSharesAtGraduation is the snapshot denominator for pro-rata token
	// distribution.
	TotalSharesAtGraduation uint64
}

// Closed reports the fully wound-down terminal state, reachable only from
// refund mode once every position has been drained.
func (l *Launch) Closed() bool {
	return l.RefundMode && l.TotalShares == 0 && l.TotalBase == 0
}

// CanGraduate covers the basic on-record checks; holder-count and
// concentration gates are enforced off-chain by the operator.
func (l *Launch) CanGraduate() bool {
	return !l.Graduated && !l.RefundMode && l.TotalShares > 0
}

// MarketCapUSD values the launch at the cached price. ok is false when no
// price is available.
func (l *Launch) MarketCapUSD(basePriceUSD uint64) (uint64, bool) {
	if basePriceUSD == 0 {
		return 0, false
	}
	cap, err := curve.MulDivU64(l.TotalBase, basePriceUSD, LamportsPerBaseUnit)
	if err != nil {
		return 0, false
	}
	return cap, true
}

// Address derives the launch record address.
func (l *Launch) Address() solanago.PublicKey {
	return DeriveLaunchAddress(l.Creator, l.LaunchID)
}

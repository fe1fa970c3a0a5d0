package state

import (
	solanago "github.com/gagliardetto/solana-go"
)

// Position tracks one user's stake in one launch: fully sellable shares plus
// the lamport basis behind them. For the creator it additionally carries the
// locked seed shares that vest post-graduation; for everyone else
// LockedShares is always zero.
type Position struct {
	Launch solanago.PublicKey
	User   solanago.PublicKey

	// Shares are 100% sellable pre-graduation and claimable afterwards.
	Shares uint64

	// Basis is the lamports deposited for these shares, the proportional
	// refund denominator.
	Basis uint64

	// LockedShares hold the creator's unvested seed.
	LockedShares uint64

	// VestedSharesClaimed counts seed shares already moved into Shares.
	VestedSharesClaimed uint64

	HasClaimedRefund bool

	FirstBuyAt    int64
	LastUpdatedAt int64
}

// TotalShares is the position's full share count, locked included.
func (p *Position) TotalShares() uint64 {
	return p.Shares + p.LockedShares
}

// IsCreator reports whether this position belongs to the launch creator.
func (p *Position) IsCreator(creator solanago.PublicKey) bool {
	return p.User.Equals(creator)
}

// Address derives the position record address.
func (p *Position) Address() solanago.PublicKey {
	return DerivePositionAddress(p.Launch, p.User)
}

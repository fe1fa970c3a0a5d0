// Package chain abstracts the settlement-layer side effects the engine
// performs: lamport transfers, token mints, AMM pool creation and vault
// yield. Implementations back these with a live cluster or, for tests and
// simulation, with in-process state.
package chain

import (
	"errors"

	solanago "github.com/gagliardetto/solana-go"
)

var (
	ErrInsufficientFunds = errors.New("chain: insufficient funds")
	ErrUnknownMint       = errors.New("chain: unknown mint")
)

// Ledger moves the base asset (lamports) between accounts.
type Ledger interface {
	Balance(addr solanago.PublicKey) uint64
	// Transfer moves lamports from one account to another. It fails if the
	// source balance is insufficient; partial transfers never happen.
	Transfer(from, to solanago.PublicKey, lamports uint64) error
	// Credit mints lamports into an account. Deposits from outside the
	// engine's view (user top-ups, rent refunds) enter through here.
	Credit(to solanago.PublicKey, lamports uint64)
}

// TokenService manages SPL-style token mints and balances.
type TokenService interface {
	// CreateMint creates a new mint with the given decimals and the engine
	// as mint authority.
	CreateMint(decimals uint8) (solanago.PublicKey, error)
	MintTo(mint, owner solanago.PublicKey, amount uint64) error
	Transfer(mint, from, to solanago.PublicKey, amount uint64) error
	TokenBalance(mint, owner solanago.PublicKey) uint64
}

// Pool describes a constant-product pool seeded at graduation.
type Pool struct {
	Address  solanago.PublicKey
	LPMint   solanago.PublicKey
	LPAmount uint64
}

// PoolService creates liquidity pools pairing a token mint with the base
// asset.
type PoolService interface {
	CreatePool(tokenMint solanago.PublicKey, baseLamports, tokenAmount uint64) (Pool, error)
}

// YieldSource reports and collects staking yield accrued to a vault's
// position since the last collection.
type YieldSource interface {
	// Collect returns the yield accrued to the vault and resets the
	// accumulator. A zero return is not an error.
	Collect(vault solanago.PublicKey) (uint64, error)
}

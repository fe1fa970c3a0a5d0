package chain

import (
	"sync"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/astralabs/astra-go/curve"
)

// SimLedger is an in-process lamport ledger.
type SimLedger struct {
	mu       sync.Mutex
	balances map[solanago.PublicKey]uint64
}

func NewSimLedger() *SimLedger {
	return &SimLedger{balances: make(map[solanago.PublicKey]uint64)}
}

func (l *SimLedger) Balance(addr solanago.PublicKey) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[addr]
}

func (l *SimLedger) Transfer(from, to solanago.PublicKey, lamports uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[from] < lamports {
		return ErrInsufficientFunds
	}
	l.balances[from] -= lamports
	l.balances[to] += lamports
	return nil
}

func (l *SimLedger) Credit(to solanago.PublicKey, lamports uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[to] += lamports
}

type simMint struct {
	decimals uint8
	holders  map[solanago.PublicKey]uint64
}

// SimTokens is an in-process token mint registry.
type SimTokens struct {
	mu    sync.Mutex
	mints map[solanago.PublicKey]*simMint
}

func NewSimTokens() *SimTokens {
	return &SimTokens{mints: make(map[solanago.PublicKey]*simMint)}
}

func (s *SimTokens) CreateMint(decimals uint8) (solanago.PublicKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mint := solanago.NewWallet().PublicKey()
	s.mints[mint] = &simMint{
		decimals: decimals,
		holders:  make(map[solanago.PublicKey]uint64),
	}
	return mint, nil
}

func (s *SimTokens) MintTo(mint, owner solanago.PublicKey, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mints[mint]
	if !ok {
		return ErrUnknownMint
	}
	m.holders[owner] += amount
	return nil
}

func (s *SimTokens) Transfer(mint, from, to solanago.PublicKey, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mints[mint]
	if !ok {
		return ErrUnknownMint
	}
	if m.holders[from] < amount {
		return ErrInsufficientFunds
	}
	m.holders[from] -= amount
	m.holders[to] += amount
	return nil
}

func (s *SimTokens) TokenBalance(mint, owner solanago.PublicKey) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mints[mint]
	if !ok {
		return 0
	}
	return m.holders[owner]
}

// SimPools fabricates constant-product pools. LP supply for the initial
// deposit is the geometric mean of the two legs.
type SimPools struct {
	tokens *SimTokens
}

func NewSimPools(tokens *SimTokens) *SimPools {
	return &SimPools{tokens: tokens}
}

func (p *SimPools) CreatePool(tokenMint solanago.PublicKey, baseLamports, tokenAmount uint64) (Pool, error) {
	lpAmount, err := curve.GeometricMean(baseLamports, tokenAmount)
	if err != nil {
		return Pool{}, err
	}
	lpMint, err := p.tokens.CreateMint(9)
	if err != nil {
		return Pool{}, err
	}
	return Pool{
		Address:  solanago.NewWallet().PublicKey(),
		LPMint:   lpMint,
		LPAmount: lpAmount,
	}, nil
}

// SimYield returns yield amounts staged by tests. Collect drains the staged
// amount for the vault.
type SimYield struct {
	mu      sync.Mutex
	accrued map[solanago.PublicKey]uint64
}

func NewSimYield() *SimYield {
	return &SimYield{accrued: make(map[solanago.PublicKey]uint64)}
}

// Accrue stages yield for the next Collect on the vault.
func (y *SimYield) Accrue(vault solanago.PublicKey, amount uint64) {
	y.mu.Lock()
	defer y.mu.Unlock()
	y.accrued[vault] += amount
}

func (y *SimYield) Collect(vault solanago.PublicKey) (uint64, error) {
	y.mu.Lock()
	defer y.mu.Unlock()
	amount := y.accrued[vault]
	y.accrued[vault] = 0
	return amount, nil
}

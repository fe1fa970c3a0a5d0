// Package launchpad implements the economic engine of the token launch
// protocol: quadratic-curve trading, the graduation and refund lifecycle,
// creator vesting and vault yield distribution. Every operation loads its
// records, validates, computes with checked integer math, performs ledger
// side effects and commits a single atomic record batch.
package launchpad

import (
	"fmt"
	"sync"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/chain"
	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/state"
	"github.com/astralabs/astra-go/store"
)

// Engine executes protocol operations against a record store and a
// settlement backend.
type Engine struct {
	store  store.Store
	ledger chain.Ledger
	tokens chain.TokenService
	pools  chain.PoolService
	yield  chain.YieldSource
	bus    events.Publisher
	logger *zap.Logger

	// now is swappable for tests.
	now func() int64

	// inFlight guards each launch against overlapping mutations.
	mu       sync.Mutex
	inFlight map[solanago.PublicKey]bool
}

// Options carries the engine's collaborators.
type Options struct {
	Store  store.Store
	Ledger chain.Ledger
	Tokens chain.TokenService
	Pools  chain.PoolService
	Yield  chain.YieldSource
	Bus    events.Publisher
	Logger *zap.Logger
	Now    func() int64
}

func New(opts Options) *Engine {
	if opts.Bus == nil {
		opts.Bus = events.NopPublisher{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = func() int64 { return time.Now().Unix() }
	}
	return &Engine{
		store:    opts.Store,
		ledger:   opts.Ledger,
		tokens:   opts.Tokens,
		pools:    opts.Pools,
		yield:    opts.Yield,
		bus:      opts.Bus,
		logger:   opts.Logger.Named("launchpad"),
		now:      opts.Now,
		inFlight: make(map[solanago.PublicKey]bool),
	}
}

// beginOp marks the launch busy for the duration of one operation.
func (e *Engine) beginOp(launch solanago.PublicKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[launch] {
		return ErrOperationInProgress
	}
	e.inFlight[launch] = true
	return nil
}

func (e *Engine) endOp(launch solanago.PublicKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, launch)
}

func (e *Engine) emit(event events.Event) {
	if err := e.bus.Publish(event); err != nil {
		e.logger.Warn("Failed to publish event",
			zap.String("event_type", string(event.Type())),
			zap.Error(err))
	}
}

// Record loading and staging helpers. Loads go straight to the store; writes
// are staged into a batch and applied once per operation.

func (e *Engine) loadConfig() (*state.GlobalConfig, error) {
	data, found, err := e.store.Get(state.DeriveConfigAddress())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !found {
		return nil, ErrConfigNotFound
	}
	var cfg state.GlobalConfig
	if err := store.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func (e *Engine) loadLaunch(addr solanago.PublicKey) (*state.Launch, error) {
	data, found, err := e.store.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("load launch: %w", err)
	}
	if !found {
		return nil, ErrLaunchNotFound
	}
	var launch state.Launch
	if err := store.Unmarshal(data, &launch); err != nil {
		return nil, fmt.Errorf("decode launch: %w", err)
	}
	return &launch, nil
}

func (e *Engine) loadPosition(launch, user solanago.PublicKey) (*state.Position, error) {
	data, found, err := e.store.Get(state.DerivePositionAddress(launch, user))
	if err != nil {
		return nil, fmt.Errorf("load position: %w", err)
	}
	if !found {
		return nil, ErrPositionNotFound
	}
	var pos state.Position
	if err := store.Unmarshal(data, &pos); err != nil {
		return nil, fmt.Errorf("decode position: %w", err)
	}
	return &pos, nil
}

// loadOrNewPosition returns the existing position or a zero-valued one.
func (e *Engine) loadOrNewPosition(launch, user solanago.PublicKey) (*state.Position, error) {
	pos, err := e.loadPosition(launch, user)
	if err == ErrPositionNotFound {
		return &state.Position{Launch: launch, User: user}, nil
	}
	return pos, err
}

func (e *Engine) loadOrNewCreatorStats(creator solanago.PublicKey) (*state.CreatorStats, error) {
	data, found, err := e.store.Get(state.DeriveCreatorStatsAddress(creator))
	if err != nil {
		return nil, fmt.Errorf("load creator stats: %w", err)
	}
	if !found {
		return &state.CreatorStats{Creator: creator}, nil
	}
	var stats state.CreatorStats
	if err := store.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode creator stats: %w", err)
	}
	return &stats, nil
}

func (e *Engine) loadVault(addr solanago.PublicKey) (*state.Vault, error) {
	data, found, err := e.store.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("load vault: %w", err)
	}
	if !found {
		return nil, ErrVaultNotFound
	}
	var vault state.Vault
	if err := store.Unmarshal(data, &vault); err != nil {
		return nil, fmt.Errorf("decode vault: %w", err)
	}
	return &vault, nil
}

func stagePut(batch *store.Batch, addr solanago.PublicKey, record interface{}) error {
	data, err := store.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	batch.Put(addr, data)
	return nil
}

// astrad runs the launch-protocol engine as a daemon: it initializes the
// global config if needed and keeps the cached oracle price fresh so the
// USD-denominated gates stay live.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/astralabs/astra-go/chain"
	"github.com/astralabs/astra-go/config"
	"github.com/astralabs/astra-go/events"
	"github.com/astralabs/astra-go/launchpad"
	"github.com/astralabs/astra-go/oracle"
	"github.com/astralabs/astra-go/store"
)

func main() {
	configPath := flag.String("config", "configs/astrad.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(cfg.DebugLogging)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("astrad exited", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	authority, err := solanago.PublicKeyFromBase58(cfg.Authority)
	if err != nil {
		return err
	}
	operator, err := solanago.PublicKeyFromBase58(cfg.OperatorWallet)
	if err != nil {
		return err
	}
	feeWallet, err := solanago.PublicKeyFromBase58(cfg.ProtocolFeeWallet)
	if err != nil {
		return err
	}
	vaultWallet, err := solanago.PublicKeyFromBase58(cfg.VaultProtocolWallet)
	if err != nil {
		return err
	}

	var recordStore store.Store
	if cfg.DatabasePath != "" {
		recordStore, err = store.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("No database_path configured, records will not survive restarts")
		recordStore = store.NewMemoryStore()
	}
	defer recordStore.Close()

	bus := events.NewBus(logger, cfg.EventBufferSize)
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		bus.Shutdown(shutdownCtx)
	}()

	tokens := chain.NewSimTokens()
	engine := launchpad.New(launchpad.Options{
		Store:  recordStore,
		Ledger: chain.NewSimLedger(),
		Tokens: tokens,
		Pools:  chain.NewSimPools(tokens),
		Yield:  chain.NewSimYield(),
		Bus:    bus,
		Logger: logger,
	})

	if err := engine.Initialize(launchpad.InitializeParams{
		Authority:           authority,
		OperatorWallet:      operator,
		ProtocolFeeWallet:   feeWallet,
		VaultProtocolWallet: vaultWallet,
		MinSeedLamports:     cfg.MinSeedLamports,
	}); err != nil && !errors.Is(err, launchpad.ErrConfigExists) {
		return err
	}

	feed := oracle.NewHermesFeed(cfg.HermesEndpoint, cfg.PriceFeedID, logger)
	logger.Info("astrad started",
		zap.String("hermes", cfg.HermesEndpoint),
		zap.Int("poll_seconds", cfg.PricePollSeconds))

	return pollPrices(ctx, cfg, logger, engine, feed, operator)
}

// pollPrices refreshes the engine's cached price until the context ends. A
// failed fetch is logged and skipped; the engine's staleness window handles
// prolonged outages by failing closed.
func pollPrices(ctx context.Context, cfg *config.Config, logger *zap.Logger, engine *launchpad.Engine, feed oracle.Feed, operator solanago.PublicKey) error {
	ticker := time.NewTicker(time.Duration(cfg.PricePollSeconds) * time.Second)
	defer ticker.Stop()

	refresh := func() {
		price, err := feed.Fetch(ctx)
		if err != nil {
			logger.Warn("Price fetch failed", zap.Error(err))
			return
		}
		if err := engine.UpdatePrice(operator, price.USD); err != nil {
			logger.Error("Price update rejected", zap.Error(err))
			return
		}
		logger.Debug("Price updated", zap.Uint64("usd", price.USD))
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down")
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/eth-wallet/ethereum"
	"github.com/AlexZinkM/eth-wallet/internal/api"
	"github.com/AlexZinkM/eth-wallet/internal/client"
	"github.com/AlexZinkM/eth-wallet/internal/config"
	"github.com/AlexZinkM/eth-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-wallet/internal/handler"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
	"github.com/AlexZinkM/eth-wallet/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title        eth-wallet API
// @version      1.0
// @description  Ethereum wallet service: key generation, balances, recent history and ETH transfers.
// @BasePath     /
func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	if err := config.Init(); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg := config.Get()

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx := context.Background()

	key, source, err := crypto.ResolveKey(cfg.EncryptionKey, cfg.EncryptionPassphrase, cfg.EncryptionSalt)
	if err != nil {
		return fmt.Errorf("failed to resolve encryption key: %w", err)
	}
	cipher, err := crypto.New(key)
	clear(key)
	if err != nil {
		return err
	}
	if source == crypto.KeySourceGenerated {
		lg.Warn("no ENCRYPTION_KEY or ENCRYPTION_PASSPHRASE set, using a random key: held wallets become unrecoverable after restart")
		if cfg.StoreOptions().Persistent() {
			lg.Warn("persistent store with a random key, records written now cannot be read by the next run",
				zap.String("backend", cfg.StoreBackend))
		}
	}

	st, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	endpoints := cfg.Endpoints()
	selector := client.NewSelector(endpoints, cfg.RPCURL,
		client.WithProbeTimeout(cfg.ProbeTimeout),
		client.WithLogger(lg.Named("selector")))

	svc := ethereum.NewService(st, cipher, selector, lg, ethereum.Config{
		CallTimeout:   cfg.RPCCallTimeout,
		HistoryBlocks: cfg.HistoryBlocks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.SetupRouter(handler.NewWalletHandler(svc, lg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreBackend),
			zap.Int("rpc_endpoints", len(endpoints)),
			zap.String("key_source", string(source)))
		errCh <- srv.ListenAndServe()
	}()

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		lg.Info("shutting down gracefully")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

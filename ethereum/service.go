// Package ethereum implements wallet operations against an Ethereum JSON-RPC node.
package ethereum

import (
	"context"
	"time"

	"github.com/AlexZinkM/eth-wallet/internal/client"
	"github.com/AlexZinkM/eth-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-wallet/internal/metrics"
	"github.com/AlexZinkM/eth-wallet/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	defaultCallTimeout   = 15 * time.Second
	defaultHistoryBlocks = 5
	maxHistoryResults    = 20
)

// EndpointSelector hands out a live node connection for one operation
type EndpointSelector interface {
	Select(ctx context.Context) (*client.Connection, error)
}

// Config tunes Service. Zero values fall back to defaults.
type Config struct {
	CallTimeout   time.Duration // bound on each RPC call
	HistoryBlocks int           // blocks scanned by GetTransactions
}

// Service runs wallet operations. Safe for concurrent use.
type Service struct {
	store         store.Store
	cipher        *crypto.KeyCipher
	selector      EndpointSelector
	logger        *zap.Logger
	callTimeout   time.Duration
	historyBlocks int
}

// NewService creates a Service
func NewService(st store.Store, cipher *crypto.KeyCipher, selector EndpointSelector, logger *zap.Logger, cfg Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.HistoryBlocks <= 0 {
		cfg.HistoryBlocks = defaultHistoryBlocks
	}
	return &Service{
		store:         st,
		cipher:        cipher,
		selector:      selector,
		logger:        logger.Named("ethereum"),
		callTimeout:   cfg.CallTimeout,
		historyBlocks: cfg.HistoryBlocks,
	}
}

// call runs one RPC call under the per-call timeout and records its duration
func (s *Service) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	timer := prometheus.NewTimer(metrics.RPCDuration.WithLabelValues(method))
	defer timer.ObserveDuration()

	return fn(callCtx)
}

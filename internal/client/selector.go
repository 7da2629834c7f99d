package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/eth-wallet/internal/metrics"

	"go.uber.org/zap"
)

const defaultProbeTimeout = 5 * time.Second

// NoAvailableEndpointError is returned when no candidate endpoint answered the liveness probe
type NoAvailableEndpointError struct {
	Attempted []string // redacted endpoints in the order they were tried
	Err       error    // last probe failure
}

func (e *NoAvailableEndpointError) Error() string {
	msg := "all RPC endpoints failed, check your internet connection or configure a custom RPC_URL"
	if len(e.Attempted) > 0 {
		msg += fmt.Sprintf(" (tried: %s)", strings.Join(e.Attempted, ", "))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NoAvailableEndpointError) Unwrap() error {
	return e.Err
}

// IsNoAvailableEndpointError checks if error is NoAvailableEndpointError
func IsNoAvailableEndpointError(err error) bool {
	var target *NoAvailableEndpointError
	return errors.As(err, &target)
}

// Connection is a Node that passed its liveness probe. The caller closes it.
type Connection struct {
	Node
	Endpoint string
}

// Selector picks the first live endpoint, trying the preferred one first.
// Nothing is cached between calls: every Select probes again.
type Selector struct {
	candidates   []string
	preferred    string
	dial         Dialer
	probeTimeout time.Duration
	logger       *zap.Logger
}

// Option configures a Selector
type Option func(*Selector)

// WithDialer replaces the ethclient dialer
func WithDialer(d Dialer) Option {
	return func(s *Selector) { s.dial = d }
}

// WithProbeTimeout bounds dial + probe of a single endpoint
func WithProbeTimeout(d time.Duration) Option {
	return func(s *Selector) {
		if d > 0 {
			s.probeTimeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Selector) { s.logger = l }
}

// NewSelector creates a Selector over an ordered candidate list.
// preferred may be empty.
func NewSelector(candidates []string, preferred string, opts ...Option) *Selector {
	s := &Selector{
		candidates:   append([]string(nil), candidates...),
		preferred:    preferred,
		dial:         DialEthereum,
		probeTimeout: defaultProbeTimeout,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Candidates returns the ordered candidate list
func (s *Selector) Candidates() []string {
	return append([]string(nil), s.candidates...)
}

// Select returns a connection to the first endpoint that answers the probe.
func (s *Selector) Select(ctx context.Context) (*Connection, error) {
	var (
		attempted []string
		lastErr   error
	)

	if s.preferred != "" {
		conn, err := s.try(ctx, s.preferred)
		if err == nil {
			return conn, nil
		}
		attempted = append(attempted, Redact(s.preferred))
		lastErr = err
		s.logger.Warn("preferred RPC endpoint failed, trying fallbacks",
			zap.String("endpoint", Redact(s.preferred)),
			zap.Error(err))
	}

	for _, endpoint := range s.candidates {
		if endpoint == s.preferred {
			continue
		}

		conn, err := s.try(ctx, endpoint)
		if err == nil {
			s.logger.Info("using RPC endpoint", zap.String("endpoint", Redact(endpoint)))
			return conn, nil
		}
		attempted = append(attempted, Redact(endpoint))
		lastErr = err
		s.logger.Warn("RPC endpoint failed",
			zap.String("endpoint", Redact(endpoint)),
			zap.Error(err))
	}

	metrics.EndpointSelectionFailures.Inc()
	return nil, &NoAvailableEndpointError{Attempted: attempted, Err: lastErr}
}

// try dials endpoint and asks for the latest block number within probeTimeout
func (s *Selector) try(ctx context.Context, endpoint string) (*Connection, error) {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	node, err := s.dial(probeCtx, endpoint)
	if err != nil {
		metrics.EndpointProbes.WithLabelValues(Redact(endpoint), metrics.ProbeFailed).Inc()
		return nil, err
	}

	if _, err := node.BlockNumber(probeCtx); err != nil {
		node.Close()
		metrics.EndpointProbes.WithLabelValues(Redact(endpoint), metrics.ProbeFailed).Inc()
		return nil, fmt.Errorf("liveness probe failed: %w", err)
	}

	metrics.EndpointProbes.WithLabelValues(Redact(endpoint), metrics.ProbeOK).Inc()
	return &Connection{Node: node, Endpoint: endpoint}, nil
}

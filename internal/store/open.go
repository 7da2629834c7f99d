package store

import (
	"context"
	"fmt"
)

// Backends
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Options selects and configures a backend
type Options struct {
	Backend       string
	BadgerPath    string
	RedisAddrs    []string
	RedisPassword string
}

// Open creates the Store named by opts.Backend
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendBadger:
		return NewBadger(opts.BadgerPath)
	case BackendRedis:
		return NewRedis(ctx, opts.RedisAddrs, opts.RedisPassword)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// Persistent reports whether records survive a restart
func (o Options) Persistent() bool {
	return o.Backend == BackendBadger || o.Backend == BackendRedis
}

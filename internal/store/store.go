// Package store holds wallet records keyed by address.
package store

import (
	"context"
	"errors"

	"github.com/AlexZinkM/eth-wallet/internal/common"
	"github.com/AlexZinkM/eth-wallet/internal/model"
)

// ErrNotFound is returned by Delete when no record is held for the address
var ErrNotFound = errors.New("wallet not found")

// Store is the single source of truth for "do we hold this key".
// Addresses are matched case-insensitively.
type Store interface {
	Put(ctx context.Context, rec model.WalletRecord) error
	Get(ctx context.Context, address string) (model.WalletRecord, bool, error)
	Contains(ctx context.Context, address string) (bool, error)
	Delete(ctx context.Context, address string) error
	ForEach(ctx context.Context, fn func(model.WalletRecord) error) error
	Close() error
}

// key returns the canonical map key for an address
func key(address string) string {
	return common.NormalizeAddress(address)
}

package store

import (
	"context"
	"sync"

	"github.com/AlexZinkM/eth-wallet/internal/model"
)

// Memory is a volatile Store. Records are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	wallets map[string]model.WalletRecord
}

// NewMemory creates an empty Memory store
func NewMemory() *Memory {
	return &Memory{wallets: make(map[string]model.WalletRecord)}
}

func (m *Memory) Put(ctx context.Context, rec model.WalletRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[key(rec.Address)] = rec
	return nil
}

func (m *Memory) Get(ctx context.Context, address string) (model.WalletRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.wallets[key(address)]
	return rec, ok, nil
}

func (m *Memory) Contains(ctx context.Context, address string) (bool, error) {
	_, ok, err := m.Get(ctx, address)
	return ok, err
}

func (m *Memory) Delete(ctx context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(address)
	if _, ok := m.wallets[k]; !ok {
		return ErrNotFound
	}
	delete(m.wallets, k)
	return nil
}

// ForEach calls fn on a snapshot, so fn may write to the store.
func (m *Memory) ForEach(ctx context.Context, fn func(model.WalletRecord) error) error {
	m.mu.RLock()
	records := make([]model.WalletRecord, 0, len(m.wallets))
	for _, rec := range m.wallets {
		records = append(records, rec)
	}
	m.mu.RUnlock()

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

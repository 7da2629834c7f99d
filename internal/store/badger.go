package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/eth-wallet/internal/model"

	"github.com/dgraph-io/badger/v4"
)

var walletPrefix = []byte("wallet:")

// Badger is a Store persisted in a Badger database.
type Badger struct {
	db *badger.DB
}

// NewBadger opens (or creates) a Badger database at path.
func NewBadger(path string) (*Badger, error) {
	return openBadger(badger.DefaultOptions(path))
}

// NewBadgerInMemory opens a Badger database that lives only in memory.
func NewBadgerInMemory() (*Badger, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (*Badger, error) {
	opts.Logger = nil // Disable badger's built-in logging.

	db, err := badger.Open(opts)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "Cannot acquire directory lock") ||
			strings.Contains(errMsg, "resource temporarily unavailable") {
			return nil, fmt.Errorf("wallet database at %s is locked by another process: %w", opts.Dir, err)
		}
		return nil, fmt.Errorf("failed to open wallet database at %s: %w", opts.Dir, err)
	}
	return &Badger{db: db}, nil
}

func badgerKey(address string) []byte {
	return append(append([]byte(nil), walletPrefix...), key(address)...)
}

func (b *Badger) Put(ctx context.Context, rec model.WalletRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet record: %w", err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(rec.Address), value)
	})
	if err != nil {
		return fmt.Errorf("badger put: %w", err)
	}
	return nil
}

func (b *Badger) Get(ctx context.Context, address string) (model.WalletRecord, bool, error) {
	var rec model.WalletRecord
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(address))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.WalletRecord{}, false, nil
	}
	if err != nil {
		return model.WalletRecord{}, false, fmt.Errorf("badger get: %w", err)
	}
	return rec, true, nil
}

func (b *Badger) Contains(ctx context.Context, address string) (bool, error) {
	var exists bool
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(badgerKey(address))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("badger has: %w", err)
	}
	return exists, nil
}

func (b *Badger) Delete(ctx context.Context, address string) error {
	k := badgerKey(address)
	err := b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(k); err != nil {
			return err
		}
		return txn.Delete(k)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("badger delete: %w", err)
	}
	return nil
}

// ForEach reads all records first and then calls fn, so fn may write to the store.
func (b *Badger) ForEach(ctx context.Context, fn func(model.WalletRecord) error) error {
	var records []model.WalletRecord
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = walletPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(walletPrefix); it.ValidForPrefix(walletPrefix); it.Next() {
			var rec model.WalletRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger iterate: %w", err)
	}

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

func (b *Badger) Close() error {
	return b.db.Close()
}

package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AlexZinkM/eth-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func testRecord(address string) model.WalletRecord {
	return model.WalletRecord{
		Address:             address,
		EncryptedPrivateKey: strings.Repeat("ab", 16) + ":" + strings.Repeat("cd", 48),
		PublicKey:           "0x04" + strings.Repeat("11", 64),
		CreatedAt:           time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

// runStoreTests checks the behaviour every backend must share
func runStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("put get contains", func(t *testing.T) {
		s := newStore(t)
		rec := testRecord(testAddress)

		ok, err := s.Contains(ctx, testAddress)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.Put(ctx, rec))

		got, ok, err := s.Get(ctx, testAddress)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, rec.Address, got.Address)
		assert.Equal(t, rec.EncryptedPrivateKey, got.EncryptedPrivateKey)
		assert.Equal(t, rec.PublicKey, got.PublicKey)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

		ok, err = s.Contains(ctx, testAddress)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, testRecord(testAddress)))

		ok, err := s.Contains(ctx, strings.ToLower(testAddress))
		require.NoError(t, err)
		assert.True(t, ok)

		_, ok, err = s.Get(ctx, "0x"+strings.ToUpper(testAddress[2:]))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("get absent", func(t *testing.T) {
		s := newStore(t)
		_, ok, err := s.Get(ctx, testAddress)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, testRecord(testAddress)))

		require.NoError(t, s.Delete(ctx, testAddress))
		ok, err := s.Contains(ctx, testAddress)
		require.NoError(t, err)
		assert.False(t, ok)

		err = s.Delete(ctx, testAddress)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("for each", func(t *testing.T) {
		s := newStore(t)
		second := "0x00000000000000000000000000000000000000aA"
		require.NoError(t, s.Put(ctx, testRecord(testAddress)))
		require.NoError(t, s.Put(ctx, testRecord(second)))

		seen := make(map[string]bool)
		err := s.ForEach(ctx, func(rec model.WalletRecord) error {
			seen[strings.ToLower(rec.Address)] = true
			// writing during iteration must not deadlock
			return s.Put(ctx, rec)
		})
		require.NoError(t, err)
		assert.Len(t, seen, 2)
		assert.True(t, seen[strings.ToLower(testAddress)])
		assert.True(t, seen[strings.ToLower(second)])
	})
}

func TestMemory(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewMemory()
	})
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	rec := testRecord(testAddress)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Put(ctx, rec)
		}()
		go func() {
			defer wg.Done()
			_, _, _ = s.Get(ctx, testAddress)
		}()
	}
	wg.Wait()

	ok, err := s.Contains(ctx, testAddress)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBadger(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		s, err := NewBadgerInMemory()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewBadger(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, testRecord(testAddress)))
	require.NoError(t, s.Close())

	s, err = NewBadger(dir)
	require.NoError(t, err)
	defer s.Close()

	ok, err := s.Contains(ctx, testAddress)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping Redis tests - set REDIS_ADDR to a disposable Redis server")
	}

	runStoreTests(t, func(t *testing.T) Store {
		s, err := NewRedis(context.Background(), []string{addr}, os.Getenv("REDIS_PASSWORD"))
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = s.ForEach(context.Background(), func(rec model.WalletRecord) error {
				return s.Delete(context.Background(), rec.Address)
			})
			_ = s.Close()
		})
		// start from an empty namespace
		require.NoError(t, s.ForEach(context.Background(), func(rec model.WalletRecord) error {
			return s.Delete(context.Background(), rec.Address)
		}))
		return s
	})
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/eth-wallet/internal/model"

	"github.com/redis/go-redis/v9"
)

const redisNamespace = "wallet"

// Redis is a Store shared through a Redis server or cluster.
type Redis struct {
	client redis.UniversalClient // works with both single and cluster
}

// NewRedis connects to Redis. A single address uses a plain client; several use a cluster client.
func NewRedis(ctx context.Context, addrs []string, password string) (*Redis, error) {
	if len(addrs) == 0 {
		return nil, errors.New("redis address is required")
	}

	var rdb redis.UniversalClient
	if len(addrs) > 1 {
		rdb = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    addrs,
			Password: password,
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addrs[0],
			Password: password,
			DB:       0,
		})
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Redis{client: rdb}, nil
}

func redisKey(address string) string {
	return redisNamespace + ":" + key(address)
}

func (r *Redis) Put(ctx context.Context, rec model.WalletRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet record: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(rec.Address), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, address string) (model.WalletRecord, bool, error) {
	value, err := r.client.Get(ctx, redisKey(address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.WalletRecord{}, false, nil
	}
	if err != nil {
		return model.WalletRecord{}, false, fmt.Errorf("redis get: %w", err)
	}

	var rec model.WalletRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return model.WalletRecord{}, false, fmt.Errorf("failed to unmarshal wallet record: %w", err)
	}
	return rec, true, nil
}

func (r *Redis) Contains(ctx context.Context, address string) (bool, error) {
	n, err := r.client.Exists(ctx, redisKey(address)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (r *Redis) Delete(ctx context.Context, address string) error {
	n, err := r.client.Del(ctx, redisKey(address)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) ForEach(ctx context.Context, fn func(model.WalletRecord) error) error {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return err
	}

	for _, k := range keys {
		value, err := r.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // deleted since the scan
		}
		if err != nil {
			return fmt.Errorf("redis get: %w", err)
		}
		var rec model.WalletRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal wallet record %s: %w", k, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// scanKeys lists wallet keys. A cluster is scanned on every master.
func (r *Redis) scanKeys(ctx context.Context) ([]string, error) {
	var (
		mu   sync.Mutex
		keys []string
	)
	scan := func(ctx context.Context, c redis.Cmdable) error {
		iter := c.Scan(ctx, 0, redisNamespace+":*", 100).Iterator()
		for iter.Next(ctx) {
			mu.Lock()
			keys = append(keys, iter.Val())
			mu.Unlock()
		}
		return iter.Err()
	}

	var err error
	if cluster, ok := r.client.(*redis.ClusterClient); ok {
		err = cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			return scan(ctx, node)
		})
	} else {
		err = scan(ctx, r.client)
	}
	if err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

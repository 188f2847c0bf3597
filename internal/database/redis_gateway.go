package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"go-pos-inventory/internal/models"
)

const saveLockTTL = 10 * time.Second

// RedisGateway keeps the snapshot as one JSON value under a key.
// Writers from several processes are serialised with a redis lock.
type RedisGateway struct {
	client *redis.Client
	locker *redislock.Client
	key    string
}

func NewRedisGateway(client *redis.Client, key string) *RedisGateway {
	return &RedisGateway{
		client: client,
		locker: redislock.New(client),
		key:    key,
	}
}

// ConnectRedis opens a client and checks the server answers.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (g *RedisGateway) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := g.client.Get(ctx, g.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", models.ErrStorage, g.key, err)
	}

	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (g *RedisGateway) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := models.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("%w: encode state: %v", models.ErrStorage, err)
	}

	lock, err := g.locker.Obtain(ctx, g.key+":lock", saveLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 40),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return fmt.Errorf("%w: could not obtain lock for %s", models.ErrStorage, g.key)
	} else if err != nil {
		return fmt.Errorf("%w: obtain lock for %s: %v", models.ErrStorage, g.key, err)
	}
	defer func() {
		_ = lock.Release(ctx)
	}()

	if err := g.client.Set(ctx, g.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", models.ErrStorage, g.key, err)
	}
	return nil
}

func (g *RedisGateway) RememberUser(ctx context.Context, username string) error {
	if err := g.client.Set(ctx, g.rememberedKey(), username, 0).Err(); err != nil {
		return fmt.Errorf("%w: remember user: %v", models.ErrStorage, err)
	}
	return nil
}

func (g *RedisGateway) ForgetUser(ctx context.Context) error {
	if err := g.client.Del(ctx, g.rememberedKey()).Err(); err != nil {
		return fmt.Errorf("%w: forget user: %v", models.ErrStorage, err)
	}
	return nil
}

func (g *RedisGateway) RememberedUser(ctx context.Context) (string, error) {
	value, err := g.client.Get(ctx, g.rememberedKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read remembered user: %v", models.ErrStorage, err)
	}
	return value, nil
}

func (g *RedisGateway) rememberedKey() string {
	return g.key + ":rememberedUser"
}

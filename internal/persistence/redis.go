package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/config"
)

// Redis wraps the go-redis client and exposes it as a KV partition
// store with an advisory change feed. Every Set/Delete publishes the
// key name on the changes channel so other processes can invalidate.
type Redis struct {
	Client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, channel: cfg.ChangesChannel, logger: logger}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// Get reads the value stored under key.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set writes the value and announces the change.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	r.announce(ctx, key)
	return nil
}

// Delete removes the key and announces the change.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.Client.Del(ctx, key).Err(); err != nil {
		return err
	}
	r.announce(ctx, key)
	return nil
}

// Keys scans for keys matching the prefix.
func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.Client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// SubscribeChanges consumes key-change announcements until ctx ends.
func (r *Redis) SubscribeChanges(ctx context.Context, handler ChangeHandler) {
	sub := r.Client.Subscribe(ctx, r.channel)
	go func() {
		defer sub.Close() //nolint:errcheck
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				handler(msg.Payload)
			}
		}
	}()
}

func (r *Redis) announce(ctx context.Context, key string) {
	if r.channel == "" {
		return
	}
	if err := r.Client.Publish(ctx, r.channel, key).Err(); err != nil {
		r.logger.Warn("publish key change", zap.String("key", key), zap.Error(err))
	}
}

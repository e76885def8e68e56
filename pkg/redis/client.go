package redis

import (
	"context"
	"time"

	v9 "github.com/redis/go-redis/v9"

	"github.com/subhdotsol/CEX-superdevs/pkg/errors"
	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
)

type client struct {
	logger  logger.Interface
	config  *Config
	cmdable *v9.Client
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger logger.Interface, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return errors.NewErrorDetails("Redis config is nil", string(errors.RedisConfigError), "connect")
	}

	if c.config.Addr == "" {
		return errors.NewErrorDetails("Redis address is empty", string(errors.RedisConfigError), "connect")
	}

	c.cmdable = v9.NewClient(&v9.Options{
		Addr:     c.config.Addr,
		Username: c.config.Username,
		Password: c.config.Password,
		DB:       c.config.DB,
	})

	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{Key: "addr", Value: c.config.Addr})
		return errors.NewErrorDetails(err.Error(), string(errors.RedisConnectionError), "connect")
	}

	c.logger.InfoContext(ctx, "connected to Redis", logger.Field{Key: "addr", Value: c.config.Addr})
	return nil
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.cmdable == nil {
		return nil
	}
	return c.cmdable.Close()
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails(err.Error(), string(errors.RedisPingError), "ping")
	}
	return nil
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cmdable.Get(ctx, key).Result()
	if err == v9.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewErrorDetails(err.Error(), string(errors.RedisGetError), key)
	}
	return val, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.cmdable.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewErrorDetails(err.Error(), string(errors.RedisSetError), key)
	}
	return nil
}

func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	received, err := c.cmdable.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, errors.NewErrorDetails(err.Error(), string(errors.RedisPublishError), channel)
	}
	return received, nil
}

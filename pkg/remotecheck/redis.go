package remotecheck

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for ConnectRedis.
type RedisConfig struct {
	ConnURL        string        `env:"REDIS_URL,required"`                      // ConnURL is the redis URL, e.g. "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`     // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`    // RetryInterval is the wait between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`  // ConnectTimeout bounds the whole connect call.
}

// ConnectRedis opens a redis client suitable for backing a RedisChecker,
// retrying until the server answers a ping.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts, err := redis.ParseURL(cfg.ConnURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidConnString, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisUnavailable, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisUnavailable
}

// RedisChecker probes for a key assembled as prefix+value, matching the
// common "registry set" layout where every known value owns one key.
type RedisChecker struct {
	client *redis.Client
	prefix string
}

// NewRedisChecker builds a checker probing keys under the given prefix, e.g.
// NewRedisChecker(client, "users:email:").
func NewRedisChecker(client *redis.Client, keyPrefix string) *RedisChecker {
	return &RedisChecker{client: client, prefix: keyPrefix}
}

func (c *RedisChecker) Exists(ctx context.Context, value string) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+value).Result()
	if err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}
	return n > 0, nil
}

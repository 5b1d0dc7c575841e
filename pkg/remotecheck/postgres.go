package remotecheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds the connection settings for ConnectPostgres.
type PostgresConfig struct {
	ConnURL        string        `env:"PG_CONN_URL,required"`                 // ConnURL is the postgres connection string.
	MaxConns       int32         `env:"PG_MAX_CONNS" envDefault:"4"`          // MaxConns caps the pool; checks are single short queries.
	RetryAttempts  int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`     // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`    // RetryInterval is the base wait between attempts.
	ConnectTimeout time.Duration `env:"PG_CONNECT_TIMEOUT" envDefault:"30s"`  // ConnectTimeout bounds the whole connect call.
}

// ConnectPostgres opens a pgx pool suitable for backing a PostgresChecker,
// retrying with a linearly growing backoff until the database answers a ping.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidConnString, err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	for attempt := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrPostgresUnavailable, ctx.Err())
		case <-time.After(time.Duration(attempt+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrPostgresUnavailable
}

// PostgresChecker probes one table column with an EXISTS query. Table and
// column names are quoted once at construction; the probed value always
// travels as a bind parameter.
type PostgresChecker struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgresChecker builds a checker against table.column, e.g.
// NewPostgresChecker(pool, "users", "email").
func NewPostgresChecker(pool *pgxpool.Pool, table, column string) *PostgresChecker {
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		pgx.Identifier{table}.Sanitize(),
		pgx.Identifier{column}.Sanitize(),
	)
	return &PostgresChecker{pool: pool, query: query}
}

func (c *PostgresChecker) Exists(ctx context.Context, value string) (bool, error) {
	var exists bool
	if err := c.pool.QueryRow(ctx, c.query, value).Scan(&exists); err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}
	return exists, nil
}

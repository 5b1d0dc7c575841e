package remotecheck

import "errors"

var (
	// ErrInvalidConnString is returned when a store connection string cannot
	// be parsed.
	ErrInvalidConnString = errors.New("remotecheck: invalid connection string")

	// ErrPostgresUnavailable is returned when the Postgres pool cannot be
	// established within the configured retry budget.
	ErrPostgresUnavailable = errors.New("remotecheck: postgres unavailable")

	// ErrRedisUnavailable is returned when the Redis client cannot be
	// established within the configured retry budget.
	ErrRedisUnavailable = errors.New("remotecheck: redis unavailable")

	// ErrMongoUnavailable is returned when the MongoDB client cannot be
	// established within the configured retry budget.
	ErrMongoUnavailable = errors.New("remotecheck: mongodb unavailable")

	// ErrCheckFailed wraps store errors raised while probing for a value.
	// Rules return it unmodified, so the engine treats the run as a fault
	// rather than a validation verdict.
	ErrCheckFailed = errors.New("remotecheck: existence check failed")
)

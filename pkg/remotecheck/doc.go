// Package remotecheck provides ready-made async validation rules that probe
// external stores, covering the canonical "is this email already taken"
// check and its inverse.
//
// # Architecture
//
// The package splits into three layers:
//
//   - Checker, a single-method interface answering "does this value exist",
//     with CheckerFunc for ad-hoc implementations.
//   - Store-backed checkers for PostgreSQL (pgx/v5), Redis (go-redis/v9) and
//     MongoDB (mongo-driver/v2), each a thin, concurrency-safe probe.
//   - Unique and Exists, which lift any Checker into a formkit.AsyncRule.
//
// Connection helpers (ConnectPostgres, ConnectRedis, ConnectMongo) take
// env-tagged Config structs and retry until the store answers, so wiring a
// checker at startup stays a few lines.
//
// # Usage
//
//	var cfg remotecheck.PostgresConfig
//	if err := env.Parse(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//	pool, err := remotecheck.ConnectPostgres(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	emails := remotecheck.NewPostgresChecker(pool, "users", "email")
//
//	email := formkit.NewField("",
//	    rules.Required(), rules.Email(),
//	).WithAsync(remotecheck.Unique(emails))
//
// The engine debounces, cancels and supersedes these rules like any other
// async validator; see the formkit root package for the lifecycle.
//
// # Error Handling
//
// A store error never becomes a validation verdict. Rules return it as the
// run's error, the engine keeps the control pending and routes the fault to
// the tree's error handler. ErrCheckFailed wraps all store-level failures;
// the Connect helpers return ErrInvalidConnString or the per-store
// *Unavailable sentinels.
package remotecheck

// Package db connects to PostgreSQL for reading merge data.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with retry on startup. A merge run
// only issues one query, so the pool is small and closed right after loading.
//
// # Configuration
//
//	MAILMERGE_DATABASE_URL             - PostgreSQL connection URL
//	MAILMERGE_DATABASE_RETRY_ATTEMPTS  - Connection attempts (default: 3)
//	MAILMERGE_DATABASE_RETRY_INTERVAL  - Base pause between attempts (default: 2s)
//	MAILMERGE_DATABASE_QUERY_TIMEOUT   - Query timeout (default: 30s)
//	MAILMERGE_DATABASE_MAX_CONNS       - Pool size (default: 2)
//
// # Usage
//
//	pool, err := db.Connect(ctx, db.Config{ConnectionString: dsn})
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// # Errors
//
//   - [ErrMissingConnectionString] - No connection URL given
//   - [ErrFailedToParseDBConfig] - Invalid connection URL
//   - [ErrFailedToOpenDBConnection] - All connection attempts failed
package db

package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// advisoryLockID identifies the migration lock across all processes that
// share the database. Any single-writer coordination against the same
// database must use a different id.
const advisoryLockID int64 = 123456789

// lockWaitTimeout bounds how long a process waits for another migrator to
// finish before giving up.
const lockWaitTimeout = 30 * time.Second

// advisoryLock holds a session-level Postgres advisory lock. The lock lives
// on a dedicated connection so that pool rotation cannot release it early.
type advisoryLock struct {
	conn   *sql.Conn
	logger *zap.Logger
}

// acquireLock takes the migration advisory lock. It first tries a
// non-blocking acquire; if another process holds the lock it blocks for up
// to lockWaitTimeout.
func acquireLock(ctx context.Context, db *sql.DB, logger *zap.Logger) (*advisoryLock, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain connection for migration lock: %w", err)
	}

	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", advisoryLockID).Scan(&acquired); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to try migration lock: %w", err)
	}

	if !acquired {
		logger.Info("Migration lock held by another process, waiting",
			zap.Int64("lock_id", advisoryLockID),
			zap.Duration("timeout", lockWaitTimeout),
		)

		waitCtx, cancel := context.WithTimeout(ctx, lockWaitTimeout)
		defer cancel()

		if _, err := conn.ExecContext(waitCtx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to acquire migration lock within %s: %w", lockWaitTimeout, err)
		}
	}

	return &advisoryLock{conn: conn, logger: logger}, nil
}

// Release unlocks and returns the connection to the pool. Safe to call even
// if the unlock statement fails; the lock dies with the session either way.
func (l *advisoryLock) Release(ctx context.Context) {
	if _, err := l.conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
		l.logger.Warn("Failed to release migration lock", zap.Error(err))
	}
	if err := l.conn.Close(); err != nil {
		l.logger.Warn("Failed to close migration lock connection", zap.Error(err))
	}
}

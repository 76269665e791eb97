package tenant

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnitOfWork runs against a handle bound to one pinned connection and one
// open transaction. All statements execute in program order on that
// transaction; the handle must not escape the callback.
type UnitOfWork func(tx *gorm.DB) error

// Runner executes units of work under a security context.
//
// The algorithm, in order: acquire one pooled connection (bounded wait),
// begin a transaction on it, stamp the three session variables
// transaction-locally, run the unit of work, commit or roll back, clear the
// variables on the raw connection, release the connection. The clear runs on
// every exit route; it is the load-bearing safety step, not an optimization.
type Runner struct {
	db             *gorm.DB
	log            *zap.Logger
	acquireTimeout time.Duration
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithAcquireTimeout bounds the wait for a pooled connection
func WithAcquireTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.acquireTimeout = d
	}
}

// NewRunner creates a Runner on top of the shared connection pool
func NewRunner(db *gorm.DB, log *zap.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		db:             db,
		log:            log.Named("tenant"),
		acquireTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithContext runs fn inside one transaction on one dedicated connection
// stamped with sc. Unit-of-work errors propagate unchanged after rollback;
// pool and connection failures surface as *ConnectionError, commit failures
// as *TransactionError.
func (r *Runner) WithContext(ctx context.Context, sc SecurityContext, fn UnitOfWork) error {
	sc = sc.normalized()
	if !sc.Valid() {
		// Proceed with the empty stamp: at the database layer it matches no
		// rows. It must never widen to all tenants.
		r.log.Warn("security context has no tenant id; unit of work will see no rows",
			zap.String("role", string(sc.Role)),
			zap.String("actor_id", sc.ActorID),
		)
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return &ConnectionError{Err: err}
	}

	acquireCtx, cancel := context.WithTimeout(ctx, r.acquireTimeout)
	conn, err := sqlDB.Conn(acquireCtx)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return &ConnectionError{Err: ErrPoolExhausted}
		}
		return &ConnectionError{Err: err}
	}

	execErr := r.runOnConn(ctx, conn, sc, fn)

	// Wipe the stamp on the raw connection, whatever happened inside the
	// transaction. The clear must survive request cancellation, so it runs
	// on a non-cancelable context.
	if clearErr := r.clearSession(context.WithoutCancel(ctx), conn); clearErr != nil {
		r.log.Error("failed to clear session context on pooled connection, discarding connection",
			zap.String("tenant_id", sc.TenantID),
			zap.String("role", string(sc.Role)),
			zap.Error(clearErr),
		)
		// A connection whose stamp cannot be proven gone must not be
		// reused: mark it bad so the pool drops it instead of pooling it.
		_ = conn.Raw(func(driverConn any) error { return driver.ErrBadConn })
	}

	if closeErr := conn.Close(); closeErr != nil && !errors.Is(closeErr, sql.ErrConnDone) {
		r.log.Warn("failed to release pooled connection", zap.Error(closeErr))
	}

	return execErr
}

// runOnConn owns the transaction lifecycle on the pinned connection
func (r *Runner) runOnConn(ctx context.Context, conn *sql.Conn, sc SecurityContext, fn UnitOfWork) error {
	sqlTx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return &ConnectionError{Err: err}
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			// Never mask the unit of work's own failure with a secondary
			// rollback failure; log it and let the original propagate.
			r.log.Error("transaction rollback failed",
				zap.String("tenant_id", sc.TenantID),
				zap.Error(rbErr),
			)
		}
	}()

	tx := r.txHandle(ctx, sqlTx)

	if err := stampSession(tx, sc); err != nil {
		return &TransactionError{Op: "stamp", Err: err}
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return &TransactionError{Op: "commit", Err: err}
	}
	committed = true
	return nil
}

// txHandle binds a gorm session to the pinned transaction so the unit of
// work executes on the stamped connection and nowhere else
func (r *Runner) txHandle(ctx context.Context, sqlTx *sql.Tx) *gorm.DB {
	tx := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	tx.Statement.ConnPool = sqlTx
	return tx
}

// stampSession sets the three session variables transaction-locally
// (is_local = true, cleared by the database at commit/rollback). The
// explicit clear afterwards is still mandatory; auto-reset alone is not
// relied upon.
func stampSession(tx *gorm.DB, sc SecurityContext) error {
	return tx.Exec(
		"SELECT set_config(?, ?, true), set_config(?, ?, true), set_config(?, ?, true)",
		SessionKeyTenantID, sc.TenantID,
		SessionKeyRole, string(sc.Role),
		SessionKeyActorID, sc.ActorID,
	).Error
}

// clearSession resets all three variables at session level on the raw
// connection, outside any transaction
func (r *Runner) clearSession(ctx context.Context, conn *sql.Conn) error {
	_, err := conn.ExecContext(ctx,
		"SELECT set_config($1, '', false), set_config($2, '', false), set_config($3, '', false)",
		SessionKeyTenantID, SessionKeyRole, SessionKeyActorID,
	)
	return err
}

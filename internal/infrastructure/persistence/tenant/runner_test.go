package tenant

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockRunner(t *testing.T, opts ...RunnerOption) (*Runner, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return NewRunner(gdb, zap.NewNop(), opts...), mock, db
}

func expectStamp(mock sqlmock.Sqlmock, sc SecurityContext) {
	mock.ExpectExec(regexp.QuoteMeta("SELECT set_config(")).
		WithArgs(SessionKeyTenantID, sc.TenantID, SessionKeyRole, string(sc.Role), SessionKeyActorID, sc.ActorID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func expectClear(mock sqlmock.Sqlmock) *sqlmock.ExpectedExec {
	return mock.ExpectExec(regexp.QuoteMeta("SELECT set_config(")).
		WithArgs(SessionKeyTenantID, SessionKeyRole, SessionKeyActorID)
}

func TestWithContext_StampWorkCommitClearOrder(t *testing.T) {
	r, mock, _ := newMockRunner(t)
	sc := TenantContext(uuid.New(), "user-1")

	mock.ExpectBegin()
	expectStamp(mock, sc)
	mock.ExpectExec("UPDATE customers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectClear(mock).WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.WithContext(context.Background(), sc, func(tx *gorm.DB) error {
		return tx.Exec("UPDATE customers SET name = ?", "x").Error
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithContext_UnitOfWorkErrorPropagatesAfterRollbackAndClear(t *testing.T) {
	r, mock, _ := newMockRunner(t)
	sc := TenantContext(uuid.New(), "")
	boom := errors.New("boom")

	mock.ExpectBegin()
	expectStamp(mock, sc)
	mock.ExpectRollback()
	expectClear(mock).WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.WithContext(context.Background(), sc, func(tx *gorm.DB) error {
		return boom
	})
	// The unit of work's error comes back unchanged, not wrapped.
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithContext_RollbackFailureDoesNotMaskOriginalError(t *testing.T) {
	r, mock, _ := newMockRunner(t)
	sc := TenantContext(uuid.New(), "")
	boom := errors.New("boom")

	mock.ExpectBegin()
	expectStamp(mock, sc)
	mock.ExpectRollback().WillReturnError(errors.New("rollback broke"))
	expectClear(mock).WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.WithContext(context.Background(), sc, func(tx *gorm.DB) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithContext_CommitFailureIsTransactionError(t *testing.T) {
	r, mock, _ := newMockRunner(t)
	sc := TenantContext(uuid.New(), "")

	mock.ExpectBegin()
	expectStamp(mock, sc)
	mock.ExpectCommit().WillReturnError(errors.New("commit broke"))
	expectClear(mock).WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.WithContext(context.Background(), sc, func(tx *gorm.DB) error {
		return nil
	})
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, "commit", txErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithContext_StampFailureIsTransactionError(t *testing.T) {
	r, mock, _ := newMockRunner(t)
	sc := TenantContext(uuid.New(), "")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT set_config(")).
		WillReturnError(errors.New("stamp broke"))
	mock.ExpectRollback()
	expectClear(mock).WillReturnResult(sqlmock.NewResult(0, 1))

	called := false
	err := r.WithContext(context.Background(), sc, func(tx *gorm.DB) error {
		called = true
		return nil
	})
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, "stamp", txErr.Op)
	// The unit of work never runs on a connection that could not be stamped.
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithContext_ClearFailureIsAbsorbed(t *testing.T) {
	r, mock, _ := newMockRunner(t)
	sc := TenantContext(uuid.New(), "")

	mock.ExpectBegin()
	expectStamp(mock, sc)
	mock.ExpectCommit()
	expectClear(mock).WillReturnError(errors.New("clear broke"))

	// The work itself succeeded; the unclearable connection is discarded
	// but the caller is not failed.
	err := r.WithContext(context.Background(), sc, func(tx *gorm.DB) error {
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithContext_PoolExhaustionIsRetryableConnectionError(t *testing.T) {
	r, _, db := newMockRunner(t, WithAcquireTimeout(50*time.Millisecond))
	sc := TenantContext(uuid.New(), "")

	// Hold the pool's only connection so acquisition must time out.
	db.SetMaxOpenConns(1)
	held, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer held.Close()

	err = r.WithContext(context.Background(), sc, func(tx *gorm.DB) error {
		t.Fatal("unit of work must not run without a connection")
		return nil
	})

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.ErrorIs(t, err, ErrPoolExhausted)
	assert.True(t, IsRetryable(err))
}

func TestWithContext_CallerCancellationIsNotPoolExhaustion(t *testing.T) {
	r, _, db := newMockRunner(t, WithAcquireTimeout(time.Second))
	sc := TenantContext(uuid.New(), "")

	db.SetMaxOpenConns(1)
	held, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer held.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = r.WithContext(ctx, sc, func(tx *gorm.DB) error { return nil })

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.NotErrorIs(t, err, ErrPoolExhausted)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&ConnectionError{Err: ErrPoolExhausted}))
	assert.False(t, IsRetryable(&TransactionError{Op: "commit", Err: errors.New("x")}))
	assert.False(t, IsRetryable(errors.New("x")))
	assert.False(t, IsRetryable(nil))
}

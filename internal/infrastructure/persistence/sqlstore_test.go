package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
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

	return NewSQLStore(tenant.NewRunner(gdb, zap.NewNop())), mock
}

// expectScopedBegin expects the transaction open and the session stamp that
// every store call starts with
func expectScopedBegin(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT set_config(")).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

// expectClear expects the session reset that every store call ends with
func expectClear(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta("SELECT set_config(")).
		WithArgs(tenant.SessionKeyTenantID, tenant.SessionKeyRole, tenant.SessionKeyActorID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func customerColumns() []string {
	return []string{"id", "tenant_id", "created_at", "updated_at", "name", "phone", "email", "notes"}
}

func TestSQLGetCustomer(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()
	id := uuid.New()
	now := time.Now()

	expectScopedBegin(mock)
	mock.ExpectQuery(`SELECT \* FROM "customers"`).
		WithArgs(tenantID, id, 1).
		WillReturnRows(sqlmock.NewRows(customerColumns()).
			AddRow(id, tenantID, now, now, "Acme", "555", "a@example.com", ""))
	mock.ExpectCommit()
	expectClear(mock)

	got, err := s.GetCustomer(context.Background(), tenantID, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, tenantID, got.TenantID)
	assert.Equal(t, "Acme", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGetCustomer_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()

	expectScopedBegin(mock)
	mock.ExpectQuery(`SELECT \* FROM "customers"`).
		WillReturnRows(sqlmock.NewRows(customerColumns()))
	mock.ExpectRollback()
	expectClear(mock)

	_, err := s.GetCustomer(context.Background(), tenantID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCreateCustomer(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()

	expectScopedBegin(mock)
	mock.ExpectExec(`INSERT INTO "customers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectClear(mock)

	got, err := s.CreateCustomer(context.Background(), partner.CustomerPayload{
		TenantID: tenantID,
		Name:     "Acme",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, tenantID, got.TenantID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDeleteCustomer_MissingRowIsFalseNil(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()

	expectScopedBegin(mock)
	mock.ExpectExec(`DELETE FROM "customers"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	expectClear(mock)

	deleted, err := s.DeleteCustomer(context.Background(), tenantID, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCreateExpense_WritesLedgerEntryInSameTransaction(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()

	expectScopedBegin(mock)
	mock.ExpectExec(`INSERT INTO "expenses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "ledger_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectClear(mock)

	_, err := s.CreateExpense(context.Background(), finance.ExpensePayload{
		TenantID: tenantID,
		Category: "rent",
		Amount:   mustDecimal(t, "500"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCreateExpense_LedgerFailureRollsBackExpense(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()

	expectScopedBegin(mock)
	mock.ExpectExec(`INSERT INTO "expenses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "ledger_entries"`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()
	expectClear(mock)

	_, err := s.CreateExpense(context.Background(), finance.ExpensePayload{
		TenantID: tenantID,
		Category: "rent",
		Amount:   mustDecimal(t, "500"),
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDeleteSupplierPayment_RestoresAppliedAmount(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()
	supplierID := uuid.New()
	paymentID := uuid.New()
	now := time.Now()

	expectScopedBegin(mock)
	// The payment overpaid a balance of 20: amount 30, applied 20.
	mock.ExpectQuery(`SELECT \* FROM "supplier_payments"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "tenant_id", "created_at", "updated_at", "supplier_id", "amount", "applied", "note"}).
			AddRow(paymentID, tenantID, now, now, supplierID, "30", "20", ""))
	mock.ExpectQuery(`SELECT \* FROM "suppliers".+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "tenant_id", "created_at", "updated_at", "name", "phone", "outstanding"}).
			AddRow(supplierID, tenantID, now, now, "Wholesale", "", "0"))
	mock.ExpectExec(`UPDATE "suppliers" SET`).
		WithArgs(mustDecimal(t, "20"), sqlmock.AnyArg(), tenantID, supplierID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "ledger_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "supplier_payments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectClear(mock)

	deleted, err := s.DeleteSupplierPayment(context.Background(), tenantID, paymentID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRedeemCoupon_ExhaustedUnderRowLock(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()
	id := uuid.New()
	now := time.Now()

	expectScopedBegin(mock)
	mock.ExpectQuery(`SELECT \* FROM "coupons".+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "tenant_id", "created_at", "updated_at", "code", "discount", "usage_limit", "used_count"}).
			AddRow(id, tenantID, now, now, "SAVE5", "5.00", 2, 2))
	mock.ExpectRollback()
	expectClear(mock)

	_, err := s.RedeemCoupon(context.Background(), tenantID, "SAVE5")
	assert.ErrorIs(t, err, shared.ErrCouponExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSumLedgerByType(t *testing.T) {
	s, mock := newMockStore(t)
	tenantID := uuid.New()

	expectScopedBegin(mock)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) AS total FROM "ledger_entries"`).
		WithArgs(tenantID, "out").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("350.00"))
	mock.ExpectCommit()
	expectClear(mock)

	total, err := s.SumLedgerByType(context.Background(), tenantID, finance.LedgerOut)
	require.NoError(t, err)
	assert.True(t, total.Equal(mustDecimal(t, "350")), "got %s", total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

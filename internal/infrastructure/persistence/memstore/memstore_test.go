package memstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/inventory"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func TestCreateCustomer_GeneratesIdentityAndTimestamps(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	c1, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantID, Name: "Acme"})
	require.NoError(t, err)
	c2, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantID, Name: "Acme"})
	require.NoError(t, err)

	// Same payload twice yields two records: create is never idempotent.
	assert.NotEqual(t, c1.ID, c2.ID)
	assert.False(t, c1.CreatedAt.IsZero())
	assert.Equal(t, tenantID, c1.TenantID)
}

func TestGetCustomer_WrongTenantIsNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	c, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantA, Name: "Acme"})
	require.NoError(t, err)

	_, err = s.GetCustomer(ctx, tenantB, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	got, err := s.GetCustomer(ctx, tenantA, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestListCustomersByTenant_NeverCrossesTenants(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantA, Name: "A"})
		require.NoError(t, err)
	}
	_, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantB, Name: "B"})
	require.NoError(t, err)

	// An empty filter means "this tenant only", never "all tenants".
	got, err := s.ListCustomersByTenant(ctx, tenantA, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, c := range got {
		assert.Equal(t, tenantA, c.TenantID)
	}
}

func TestUpdateCustomer_PartialAndNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	c, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantID, Name: "Acme", Phone: "1"})
	require.NoError(t, err)

	name := "Acme GmbH"
	got, err := s.UpdateCustomer(ctx, tenantID, c.ID, partner.CustomerUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", got.Name)
	assert.Equal(t, "1", got.Phone)

	_, err = s.UpdateCustomer(ctx, tenantID, uuid.New(), partner.CustomerUpdate{Name: &name})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteCustomer_MissingRowIsFalseNil(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	deleted, err := s.DeleteCustomer(ctx, tenantID, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)

	c, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantID, Name: "Acme"})
	require.NoError(t, err)

	deleted, err = s.DeleteCustomer(ctx, tenantID, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteCustomer(ctx, tenantID, c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreateSupplierPayment_DecrementsBalanceFlooredAtZero(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	sup, err := s.CreateSupplier(ctx, partner.SupplierPayload{
		TenantID:    tenantID,
		Name:        "Wholesale",
		Outstanding: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = s.CreateSupplierPayment(ctx, finance.SupplierPaymentPayload{
		TenantID:   tenantID,
		SupplierID: sup.ID,
		Amount:     decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	got, err := s.GetSupplier(ctx, tenantID, sup.ID)
	require.NoError(t, err)
	assert.True(t, got.Outstanding.Equal(decimal.NewFromInt(40)), "got %s", got.Outstanding)

	// Overpayment floors at zero instead of going negative.
	_, err = s.CreateSupplierPayment(ctx, finance.SupplierPaymentPayload{
		TenantID:   tenantID,
		SupplierID: sup.ID,
		Amount:     decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	got, err = s.GetSupplier(ctx, tenantID, sup.ID)
	require.NoError(t, err)
	assert.True(t, got.Outstanding.IsZero(), "got %s", got.Outstanding)
}

func TestCreateSupplierPayment_MissingSupplier(t *testing.T) {
	s := New()
	_, err := s.CreateSupplierPayment(context.Background(), finance.SupplierPaymentPayload{
		TenantID:   uuid.New(),
		SupplierID: uuid.New(),
		Amount:     decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteSupplierPayment_RestoresBalanceAndDropsLedgerEntry(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	sup, err := s.CreateSupplier(ctx, partner.SupplierPayload{
		TenantID:    tenantID,
		Name:        "Wholesale",
		Outstanding: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	p, err := s.CreateSupplierPayment(ctx, finance.SupplierPaymentPayload{
		TenantID:   tenantID,
		SupplierID: sup.ID,
		Amount:     decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	deleted, err := s.DeleteSupplierPayment(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := s.GetSupplier(ctx, tenantID, sup.ID)
	require.NoError(t, err)
	assert.True(t, got.Outstanding.Equal(decimal.NewFromInt(100)), "got %s", got.Outstanding)

	entries, err := s.ListLedgerEntriesByTenant(ctx, tenantID, shared.Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteSupplierPayment_OverpaymentRestoresOriginalBalance(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	sup, err := s.CreateSupplier(ctx, partner.SupplierPayload{
		TenantID:    tenantID,
		Name:        "Wholesale",
		Outstanding: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	// The payment exceeds the balance: only 20 of the 30 is applied.
	p, err := s.CreateSupplierPayment(ctx, finance.SupplierPaymentPayload{
		TenantID:   tenantID,
		SupplierID: sup.ID,
		Amount:     decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.True(t, p.Applied.Equal(decimal.NewFromInt(20)), "got %s", p.Applied)

	got, err := s.GetSupplier(ctx, tenantID, sup.ID)
	require.NoError(t, err)
	require.True(t, got.Outstanding.IsZero(), "got %s", got.Outstanding)

	// Deleting the payment restores the balance it actually consumed, not
	// the full payment amount.
	deleted, err := s.DeleteSupplierPayment(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = s.GetSupplier(ctx, tenantID, sup.ID)
	require.NoError(t, err)
	assert.True(t, got.Outstanding.Equal(decimal.NewFromInt(20)), "got %s", got.Outstanding)
}

func TestExpenseAndLedgerEntryArePaired(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	e, err := s.CreateExpense(ctx, finance.ExpensePayload{
		TenantID: tenantID,
		Category: "rent",
		Amount:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	entries, err := s.ListLedgerEntriesByTenant(ctx, tenantID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, finance.LedgerOut, entries[0].Type)
	assert.Equal(t, finance.LedgerRefExpense, entries[0].RefType)
	assert.Equal(t, e.ID, entries[0].RefID)

	deleted, err := s.DeleteExpense(ctx, tenantID, e.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting the expense removes exactly its entry: nothing is orphaned.
	entries, err = s.ListLedgerEntriesByTenant(ctx, tenantID, shared.Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSumLedgerByType(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	for _, amount := range []int64{100, 250} {
		_, err := s.CreateExpense(ctx, finance.ExpensePayload{
			TenantID: tenantID,
			Category: "misc",
			Amount:   decimal.NewFromInt(amount),
		})
		require.NoError(t, err)
	}

	total, err := s.SumLedgerByType(ctx, tenantID, finance.LedgerOut)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(350)), "got %s", total)

	in, err := s.SumLedgerByType(ctx, tenantID, finance.LedgerIn)
	require.NoError(t, err)
	assert.True(t, in.IsZero())
}

func TestCreateStockMovement_AdjustsStockFlooredAtZero(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	p, err := s.CreateProduct(ctx, catalog.ProductPayload{
		TenantID: tenantID,
		Name:     "Widget",
		Price:    decimal.NewFromInt(5),
		Stock:    10,
	})
	require.NoError(t, err)

	_, err = s.CreateStockMovement(ctx, inventory.StockMovementPayload{
		TenantID:  tenantID,
		ProductID: p.ID,
		Direction: inventory.MovementIn,
		Quantity:  5,
	})
	require.NoError(t, err)

	got, err := s.GetProduct(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.Stock)

	// Outbound movement past the current level floors at zero.
	_, err = s.CreateStockMovement(ctx, inventory.StockMovementPayload{
		TenantID:  tenantID,
		ProductID: p.ID,
		Direction: inventory.MovementOut,
		Quantity:  100,
	})
	require.NoError(t, err)

	got, err = s.GetProduct(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Stock)

	movements, err := s.ListStockMovementsByProduct(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 2)
}

func TestCreateStockMovement_InvalidInput(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := s.CreateStockMovement(ctx, inventory.StockMovementPayload{
		TenantID:  tenantID,
		ProductID: uuid.New(),
		Direction: inventory.MovementIn,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = s.CreateStockMovement(ctx, inventory.StockMovementPayload{
		TenantID:  tenantID,
		ProductID: uuid.New(),
		Direction: inventory.MovementIn,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRedeemCoupon_EnforcesUsageCap(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := s.CreateCoupon(ctx, catalog.CouponPayload{
		TenantID:   tenantID,
		Code:       "SAVE5",
		Discount:   decimal.NewFromInt(5),
		UsageLimit: 2,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		c, err := s.RedeemCoupon(ctx, tenantID, "SAVE5")
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), c.UsedCount)
	}

	_, err = s.RedeemCoupon(ctx, tenantID, "SAVE5")
	assert.ErrorIs(t, err, shared.ErrCouponExhausted)

	// The counter never passes the limit.
	c, err := s.GetCouponByCode(ctx, tenantID, "SAVE5")
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.UsedCount)
	assert.Equal(t, int64(0), c.Remaining())
}

func TestRedeemCoupon_WrongTenant(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	_, err := s.CreateCoupon(ctx, catalog.CouponPayload{
		TenantID:   tenantA,
		Code:       "SAVE5",
		Discount:   decimal.NewFromInt(5),
		UsageLimit: 10,
	})
	require.NoError(t, err)

	_, err = s.RedeemCoupon(ctx, tenantB, "SAVE5")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListCategoriesForTenant_GlobalPlusOwn(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	_, err := s.CreateCategory(ctx, catalog.CategoryPayload{Name: "Beverages", IsGlobal: true})
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, catalog.CategoryPayload{Name: "House Blend", CreatedBy: &tenantA})
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, catalog.CategoryPayload{Name: "Private", CreatedBy: &tenantB})
	require.NoError(t, err)

	got, err := s.ListCategoriesForTenant(ctx, tenantA)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Beverages", got[0].Name)
	assert.Equal(t, "House Blend", got[1].Name)
}

func TestCreateCategory_TenantAuthoredNeedsAuthor(t *testing.T) {
	s := New()
	_, err := s.CreateCategory(context.Background(), catalog.CategoryPayload{Name: "Orphan"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestPagination(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenantID := uuid.New()

	for i := 0; i < 5; i++ {
		_, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantID, Name: "C"})
		require.NoError(t, err)
	}

	page1, err := s.ListCustomersByTenant(ctx, tenantID, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page3, err := s.ListCustomersByTenant(ctx, tenantID, shared.Filter{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	total, err := s.CountCustomersByTenant(ctx, tenantID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestSeed_LoadsConsistentDemoData(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, Seed(ctx, s))

	for _, tenantID := range []uuid.UUID{DemoTenantA, DemoTenantB} {
		suppliers, err := s.ListSuppliersByTenant(ctx, tenantID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, suppliers, 1)
		// 1000 opening balance minus the 250 seeded payment.
		assert.True(t, suppliers[0].Outstanding.Equal(decimal.NewFromInt(750)), "got %s", suppliers[0].Outstanding)

		products, err := s.ListProductsByTenant(ctx, tenantID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, int64(100), products[0].Stock)

		// One entry from the expense, one from the supplier payment.
		entries, err := s.ListLedgerEntriesByTenant(ctx, tenantID, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	}

	categories, err := s.ListCategoriesForTenant(ctx, DemoTenantA)
	require.NoError(t, err)
	assert.Len(t, categories, 3)
}

package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/inventory"
	"github.com/vendorhub/backend/internal/domain/partner"
)

// Demo tenant ids used by Seed. Stable so local clients can hardcode them.
var (
	DemoTenantA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	DemoTenantB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// Seed loads sample data for two demo tenants through the public store
// operations, so every derived invariant holds in the seeded state
func Seed(ctx context.Context, s *MemStore) error {
	for _, name := range []string{"Beverages", "Packaging", "Logistics"} {
		if _, err := s.CreateCategory(ctx, catalog.CategoryPayload{Name: name, IsGlobal: true}); err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}

	for _, t := range []struct {
		id     uuid.UUID
		prefix string
	}{
		{DemoTenantA, "Acme"},
		{DemoTenantB, "Borealis"},
	} {
		if err := seedTenant(ctx, s, t.id, t.prefix); err != nil {
			return fmt.Errorf("seed tenant %s: %w", t.id, err)
		}
	}
	return nil
}

func seedTenant(ctx context.Context, s *MemStore, tenantID uuid.UUID, prefix string) error {
	if _, err := s.CreateCustomer(ctx, partner.CustomerPayload{
		TenantID: tenantID,
		Name:     prefix + " Retail",
		Phone:    "555-0101",
		Email:    "retail@example.com",
	}); err != nil {
		return err
	}

	sup, err := s.CreateSupplier(ctx, partner.SupplierPayload{
		TenantID:    tenantID,
		Name:        prefix + " Wholesale",
		Phone:       "555-0102",
		Outstanding: decimal.NewFromInt(1000),
	})
	if err != nil {
		return err
	}
	if _, err := s.CreateSupplierPayment(ctx, finance.SupplierPaymentPayload{
		TenantID:   tenantID,
		SupplierID: sup.ID,
		Amount:     decimal.NewFromInt(250),
		Note:       "opening payment",
	}); err != nil {
		return err
	}

	if _, err := s.CreateLead(ctx, partner.LeadPayload{
		TenantID: tenantID,
		Name:     prefix + " Prospect",
		Source:   "referral",
	}); err != nil {
		return err
	}

	if _, err := s.CreateExpense(ctx, finance.ExpensePayload{
		TenantID: tenantID,
		Category: "rent",
		Amount:   decimal.NewFromInt(500),
		Note:     "monthly rent",
	}); err != nil {
		return err
	}

	prod, err := s.CreateProduct(ctx, catalog.ProductPayload{
		TenantID: tenantID,
		Name:     prefix + " Sparkling Water",
		SKU:      prefix[:1] + "-SW-01",
		Price:    decimal.NewFromFloat(2.50),
	})
	if err != nil {
		return err
	}
	if _, err := s.CreateStockMovement(ctx, inventory.StockMovementPayload{
		TenantID:  tenantID,
		ProductID: prod.ID,
		Direction: inventory.MovementIn,
		Quantity:  100,
		Note:      "initial stock",
	}); err != nil {
		return err
	}

	_, err = s.CreateCoupon(ctx, catalog.CouponPayload{
		TenantID:   tenantID,
		Code:       "WELCOME10",
		Discount:   decimal.NewFromInt(10),
		UsageLimit: 50,
	})
	return err
}

// Package hybrid routes each entity type to one backing store. The split is
// fixed at construction from configuration; moving an entity between stores
// is a config change and a restart, never a runtime decision. Callers see
// one storage.Store and cannot tell where an entity lives.
package hybrid

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/inventory"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/storage"
)

// Entity names accepted in storage.relational_entities
const (
	EntityCustomers        = "customers"
	EntitySuppliers        = "suppliers"
	EntityLeads            = "leads"
	EntityExpenses         = "expenses"
	EntitySupplierPayments = "supplier_payments"
	EntityProducts         = "products"
	EntityCategories       = "categories"
	EntityCoupons          = "coupons"
	EntityStockMovements   = "stock_movements"
)

// coupledEntities are pairs whose derived invariant is maintained inside one
// unit of work, so they must live in the same store. Ledger entries follow
// the expenses side.
var coupledEntities = [][2]string{
	{EntitySuppliers, EntitySupplierPayments},
	{EntityExpenses, EntitySupplierPayments},
	{EntityProducts, EntityStockMovements},
}

// Router implements storage.Store by delegating each entity type to either
// the ephemeral or the relational store
type Router struct {
	ephemeral  storage.Store
	relational storage.Store
	isRel      map[string]bool
}

// New builds a router from the configured relational entity list. Entities
// not listed stay on the ephemeral store. Splitting a coupled pair across
// stores is a configuration error.
func New(ephemeral, relational storage.Store, relationalEntities []string) (*Router, error) {
	isRel := make(map[string]bool, len(relationalEntities))
	for _, e := range relationalEntities {
		isRel[e] = true
	}
	for _, pair := range coupledEntities {
		if isRel[pair[0]] != isRel[pair[1]] {
			return nil, fmt.Errorf("entities %q and %q share a transactional invariant and must live in the same store", pair[0], pair[1])
		}
	}
	return &Router{
		ephemeral:  ephemeral,
		relational: relational,
		isRel:      isRel,
	}, nil
}

var _ storage.Store = (*Router)(nil)

// pick returns the store owning the entity
func (r *Router) pick(entity string) storage.Store {
	if r.isRel[entity] {
		return r.relational
	}
	return r.ephemeral
}

// RelationalEntities returns the entity names served by the relational
// store, for startup logging
func (r *Router) RelationalEntities() []string {
	out := make([]string, 0, len(r.isRel))
	for e, rel := range r.isRel {
		if rel {
			out = append(out, e)
		}
	}
	return out
}

func (r *Router) GetCustomer(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	return r.pick(EntityCustomers).GetCustomer(ctx, tenantID, id)
}

func (r *Router) ListCustomersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	return r.pick(EntityCustomers).ListCustomersByTenant(ctx, tenantID, filter)
}

func (r *Router) CreateCustomer(ctx context.Context, payload partner.CustomerPayload) (*partner.Customer, error) {
	return r.pick(EntityCustomers).CreateCustomer(ctx, payload)
}

func (r *Router) UpdateCustomer(ctx context.Context, tenantID, id uuid.UUID, update partner.CustomerUpdate) (*partner.Customer, error) {
	return r.pick(EntityCustomers).UpdateCustomer(ctx, tenantID, id, update)
}

func (r *Router) DeleteCustomer(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.pick(EntityCustomers).DeleteCustomer(ctx, tenantID, id)
}

func (r *Router) CountCustomersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.pick(EntityCustomers).CountCustomersByTenant(ctx, tenantID, filter)
}

func (r *Router) GetSupplier(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	return r.pick(EntitySuppliers).GetSupplier(ctx, tenantID, id)
}

func (r *Router) ListSuppliersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	return r.pick(EntitySuppliers).ListSuppliersByTenant(ctx, tenantID, filter)
}

func (r *Router) CreateSupplier(ctx context.Context, payload partner.SupplierPayload) (*partner.Supplier, error) {
	return r.pick(EntitySuppliers).CreateSupplier(ctx, payload)
}

func (r *Router) UpdateSupplier(ctx context.Context, tenantID, id uuid.UUID, update partner.SupplierUpdate) (*partner.Supplier, error) {
	return r.pick(EntitySuppliers).UpdateSupplier(ctx, tenantID, id, update)
}

func (r *Router) DeleteSupplier(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.pick(EntitySuppliers).DeleteSupplier(ctx, tenantID, id)
}

func (r *Router) GetLead(ctx context.Context, tenantID, id uuid.UUID) (*partner.Lead, error) {
	return r.pick(EntityLeads).GetLead(ctx, tenantID, id)
}

func (r *Router) ListLeadsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Lead, error) {
	return r.pick(EntityLeads).ListLeadsByTenant(ctx, tenantID, filter)
}

func (r *Router) CreateLead(ctx context.Context, payload partner.LeadPayload) (*partner.Lead, error) {
	return r.pick(EntityLeads).CreateLead(ctx, payload)
}

func (r *Router) UpdateLead(ctx context.Context, tenantID, id uuid.UUID, update partner.LeadUpdate) (*partner.Lead, error) {
	return r.pick(EntityLeads).UpdateLead(ctx, tenantID, id, update)
}

func (r *Router) DeleteLead(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.pick(EntityLeads).DeleteLead(ctx, tenantID, id)
}

func (r *Router) GetExpense(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	return r.pick(EntityExpenses).GetExpense(ctx, tenantID, id)
}

func (r *Router) ListExpensesByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	return r.pick(EntityExpenses).ListExpensesByTenant(ctx, tenantID, filter)
}

func (r *Router) CreateExpense(ctx context.Context, payload finance.ExpensePayload) (*finance.Expense, error) {
	return r.pick(EntityExpenses).CreateExpense(ctx, payload)
}

func (r *Router) DeleteExpense(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.pick(EntityExpenses).DeleteExpense(ctx, tenantID, id)
}

func (r *Router) GetLedgerEntry(ctx context.Context, tenantID, id uuid.UUID) (*finance.LedgerEntry, error) {
	return r.pick(EntityExpenses).GetLedgerEntry(ctx, tenantID, id)
}

func (r *Router) ListLedgerEntriesByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	return r.pick(EntityExpenses).ListLedgerEntriesByTenant(ctx, tenantID, filter)
}

func (r *Router) SumLedgerByType(ctx context.Context, tenantID uuid.UUID, typ finance.LedgerType) (decimal.Decimal, error) {
	return r.pick(EntityExpenses).SumLedgerByType(ctx, tenantID, typ)
}

func (r *Router) GetSupplierPayment(ctx context.Context, tenantID, id uuid.UUID) (*finance.SupplierPayment, error) {
	return r.pick(EntitySupplierPayments).GetSupplierPayment(ctx, tenantID, id)
}

func (r *Router) ListSupplierPaymentsBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) ([]finance.SupplierPayment, error) {
	return r.pick(EntitySupplierPayments).ListSupplierPaymentsBySupplier(ctx, tenantID, supplierID)
}

func (r *Router) CreateSupplierPayment(ctx context.Context, payload finance.SupplierPaymentPayload) (*finance.SupplierPayment, error) {
	return r.pick(EntitySupplierPayments).CreateSupplierPayment(ctx, payload)
}

func (r *Router) DeleteSupplierPayment(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.pick(EntitySupplierPayments).DeleteSupplierPayment(ctx, tenantID, id)
}

func (r *Router) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	return r.pick(EntityProducts).GetProduct(ctx, tenantID, id)
}

func (r *Router) ListProductsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	return r.pick(EntityProducts).ListProductsByTenant(ctx, tenantID, filter)
}

func (r *Router) CreateProduct(ctx context.Context, payload catalog.ProductPayload) (*catalog.Product, error) {
	return r.pick(EntityProducts).CreateProduct(ctx, payload)
}

func (r *Router) UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, update catalog.ProductUpdate) (*catalog.Product, error) {
	return r.pick(EntityProducts).UpdateProduct(ctx, tenantID, id, update)
}

func (r *Router) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.pick(EntityProducts).DeleteProduct(ctx, tenantID, id)
}

func (r *Router) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return r.pick(EntityCategories).GetCategory(ctx, id)
}

func (r *Router) ListCategoriesForTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Category, error) {
	return r.pick(EntityCategories).ListCategoriesForTenant(ctx, tenantID)
}

func (r *Router) CreateCategory(ctx context.Context, payload catalog.CategoryPayload) (*catalog.Category, error) {
	return r.pick(EntityCategories).CreateCategory(ctx, payload)
}

func (r *Router) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.pick(EntityCategories).DeleteCategory(ctx, id)
}

func (r *Router) GetCouponByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Coupon, error) {
	return r.pick(EntityCoupons).GetCouponByCode(ctx, tenantID, code)
}

func (r *Router) ListCouponsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Coupon, error) {
	return r.pick(EntityCoupons).ListCouponsByTenant(ctx, tenantID, filter)
}

func (r *Router) CreateCoupon(ctx context.Context, payload catalog.CouponPayload) (*catalog.Coupon, error) {
	return r.pick(EntityCoupons).CreateCoupon(ctx, payload)
}

func (r *Router) RedeemCoupon(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Coupon, error) {
	return r.pick(EntityCoupons).RedeemCoupon(ctx, tenantID, code)
}

func (r *Router) DeleteCoupon(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.pick(EntityCoupons).DeleteCoupon(ctx, tenantID, id)
}

func (r *Router) CreateStockMovement(ctx context.Context, payload inventory.StockMovementPayload) (*inventory.StockMovement, error) {
	return r.pick(EntityStockMovements).CreateStockMovement(ctx, payload)
}

func (r *Router) ListStockMovementsByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockMovement, error) {
	return r.pick(EntityStockMovements).ListStockMovementsByProduct(ctx, tenantID, productID)
}

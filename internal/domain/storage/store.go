// Package storage declares the backend-agnostic capability contract that
// every backing store implements. Callers (HTTP layer, background jobs,
// admin aggregation) depend only on Store, never on a concrete store, so the
// hybrid router stays the single seam for migrating entities between stores.
package storage

import (
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/inventory"
	"github.com/vendorhub/backend/internal/domain/partner"
)

// Store enumerates every domain operation across all entity types.
//
// Contract guarantees shared by all implementations:
//   - Create server-generates id and timestamps and is never idempotent.
//   - Get/Update on a missing row return shared.ErrNotFound, never panic.
//   - Delete on a missing row returns (false, nil).
//   - Tenant-scoped lists never return another tenant's rows, even with an
//     empty filter: no filter means "this tenant only", never "all tenants".
//   - Derived invariants (payment -> balance, expense -> ledger entry,
//     movement -> stock level, redemption -> usage counter) are applied in
//     the same unit of work as the triggering write.
type Store interface {
	partner.CustomerStore
	partner.SupplierStore
	partner.LeadStore
	finance.ExpenseStore
	finance.LedgerStore
	finance.SupplierPaymentStore
	catalog.ProductStore
	catalog.CategoryStore
	catalog.CouponStore
	inventory.StockMovementStore
}

// Package memstore is the ephemeral, dependency-free implementation of the
// storage contract. It backs local development, demos and the contract test
// suite; all data lives in process memory and is gone on restart.
//
// One mutex guards every map because the derived invariants (payment and
// balance, expense and ledger entry, movement and stock level, redemption
// and usage counter) span entity types and must change together.
package memstore

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/inventory"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/storage"
)

// MemStore holds every entity type in a keyed map
type MemStore struct {
	mu sync.RWMutex

	customers  map[uuid.UUID]partner.Customer
	suppliers  map[uuid.UUID]partner.Supplier
	leads      map[uuid.UUID]partner.Lead
	expenses   map[uuid.UUID]finance.Expense
	ledger     map[uuid.UUID]finance.LedgerEntry
	payments   map[uuid.UUID]finance.SupplierPayment
	products   map[uuid.UUID]catalog.Product
	categories map[uuid.UUID]catalog.Category
	coupons    map[uuid.UUID]catalog.Coupon
	movements  map[uuid.UUID]inventory.StockMovement
}

// New creates an empty in-memory store
func New() *MemStore {
	return &MemStore{
		customers:  make(map[uuid.UUID]partner.Customer),
		suppliers:  make(map[uuid.UUID]partner.Supplier),
		leads:      make(map[uuid.UUID]partner.Lead),
		expenses:   make(map[uuid.UUID]finance.Expense),
		ledger:     make(map[uuid.UUID]finance.LedgerEntry),
		payments:   make(map[uuid.UUID]finance.SupplierPayment),
		products:   make(map[uuid.UUID]catalog.Product),
		categories: make(map[uuid.UUID]catalog.Category),
		coupons:    make(map[uuid.UUID]catalog.Coupon),
		movements:  make(map[uuid.UUID]inventory.StockMovement),
	}
}

var _ storage.Store = (*MemStore)(nil)

// matchesSearch reports whether any of the values contains the needle,
// case-insensitively. An empty needle matches everything.
func matchesSearch(needle string, values ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// paginate applies the filter's page window to an already sorted slice
func paginate[T any](items []T, filter shared.Filter) []T {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

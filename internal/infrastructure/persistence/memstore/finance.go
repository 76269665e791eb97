package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// GetExpense returns one expense of the tenant
func (s *MemStore) GetExpense(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[id]
	if !ok || e.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

// ListExpensesByTenant returns the tenant's expenses matching the filter
func (s *MemStore) ListExpensesByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, _ := filter.Filters["category"].(string)
	out := make([]finance.Expense, 0)
	for _, e := range s.expenses {
		if e.TenantID != tenantID {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		if !matchesSearch(filter.Search, e.Category, e.Note) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter), nil
}

// CreateExpense writes the expense and its "out" ledger entry together
func (s *MemStore) CreateExpense(ctx context.Context, payload finance.ExpensePayload) (*finance.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := finance.Expense{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Category:     payload.Category,
		Amount:       payload.Amount,
		Note:         payload.Note,
	}
	entry := finance.LedgerEntry{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Type:         finance.LedgerOut,
		Amount:       payload.Amount,
		RefType:      finance.LedgerRefExpense,
		RefID:        e.ID,
		Note:         payload.Note,
	}
	s.expenses[e.ID] = e
	s.ledger[entry.ID] = entry
	return &e, nil
}

// DeleteExpense removes the expense and its ledger entry together; deleting
// a missing expense is not an error
func (s *MemStore) DeleteExpense(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok || e.TenantID != tenantID {
		return false, nil
	}
	delete(s.expenses, id)
	for entryID, entry := range s.ledger {
		if entry.TenantID == tenantID && entry.RefType == finance.LedgerRefExpense && entry.RefID == id {
			delete(s.ledger, entryID)
		}
	}
	return true, nil
}

// GetLedgerEntry returns one ledger entry of the tenant
func (s *MemStore) GetLedgerEntry(ctx context.Context, tenantID, id uuid.UUID) (*finance.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.ledger[id]
	if !ok || entry.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &entry, nil
}

// ListLedgerEntriesByTenant returns the tenant's ledger entries matching the
// filter
func (s *MemStore) ListLedgerEntriesByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	typ, _ := filter.Filters["type"].(string)
	out := make([]finance.LedgerEntry, 0)
	for _, entry := range s.ledger {
		if entry.TenantID != tenantID {
			continue
		}
		if typ != "" && string(entry.Type) != typ {
			continue
		}
		if !matchesSearch(filter.Search, entry.Note) {
			continue
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter), nil
}

// SumLedgerByType totals entry amounts of one direction for a tenant
func (s *MemStore) SumLedgerByType(ctx context.Context, tenantID uuid.UUID, typ finance.LedgerType) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, entry := range s.ledger {
		if entry.TenantID == tenantID && entry.Type == typ {
			total = total.Add(entry.Amount)
		}
	}
	return total, nil
}

// GetSupplierPayment returns one supplier payment of the tenant
func (s *MemStore) GetSupplierPayment(ctx context.Context, tenantID, id uuid.UUID) (*finance.SupplierPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

// ListSupplierPaymentsBySupplier returns the payments recorded against one
// supplier, newest first
func (s *MemStore) ListSupplierPaymentsBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) ([]finance.SupplierPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finance.SupplierPayment, 0)
	for _, p := range s.payments {
		if p.TenantID == tenantID && p.SupplierID == supplierID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CreateSupplierPayment records the payment, decrements the supplier's
// outstanding balance (floored at zero) and writes the matching ledger
// entry, all under one lock. A payment against a missing supplier fails
// with shared.ErrNotFound.
func (s *MemStore) CreateSupplierPayment(ctx context.Context, payload finance.SupplierPaymentPayload) (*finance.SupplierPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.suppliers[payload.SupplierID]
	if !ok || sup.TenantID != payload.TenantID {
		return nil, shared.ErrNotFound
	}

	// An overpayment floors the balance at zero, so only part of the amount
	// is applied; the delete path restores exactly that part.
	applied := payload.Amount
	if applied.GreaterThan(sup.Outstanding) {
		applied = sup.Outstanding
	}

	p := finance.SupplierPayment{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		SupplierID:   payload.SupplierID,
		Amount:       payload.Amount,
		Applied:      applied,
		Note:         payload.Note,
	}
	s.payments[p.ID] = p

	sup.Outstanding = sup.Outstanding.Sub(applied)
	sup.Touch()
	s.suppliers[sup.ID] = sup

	entry := finance.LedgerEntry{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Type:         finance.LedgerOut,
		Amount:       payload.Amount,
		RefType:      finance.LedgerRefPayment,
		RefID:        p.ID,
		Note:         payload.Note,
	}
	s.ledger[entry.ID] = entry
	return &p, nil
}

// DeleteSupplierPayment removes the payment, restores the supplier's
// outstanding balance and drops the ledger entry; deleting a missing
// payment is not an error
func (s *MemStore) DeleteSupplierPayment(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok || p.TenantID != tenantID {
		return false, nil
	}

	if sup, ok := s.suppliers[p.SupplierID]; ok && sup.TenantID == tenantID {
		sup.Outstanding = sup.Outstanding.Add(p.Applied)
		sup.Touch()
		s.suppliers[sup.ID] = sup
	}

	for entryID, entry := range s.ledger {
		if entry.TenantID == tenantID && entry.RefType == finance.LedgerRefPayment && entry.RefID == id {
			delete(s.ledger, entryID)
		}
	}
	delete(s.payments, id)
	return true, nil
}

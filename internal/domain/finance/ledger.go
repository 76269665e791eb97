// Package finance contains the money-movement entities of a vendor:
// expenses, supplier payments and the ledger they feed.
package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// LedgerType is the direction of a ledger entry
type LedgerType string

// Ledger entry directions
const (
	LedgerIn  LedgerType = "in"
	LedgerOut LedgerType = "out"
)

// LedgerRefType identifies the record a ledger entry was derived from
type LedgerRefType string

// Ledger reference types
const (
	LedgerRefExpense LedgerRefType = "expense"
	LedgerRefPayment LedgerRefType = "supplier_payment"
)

// LedgerEntry is a tenant-owned ledger transaction. Entries are never written
// directly; they are created and deleted together with the record that caused
// them (expense, supplier payment).
type LedgerEntry struct {
	shared.TenantEntity
	Type    LedgerType      `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	RefType LedgerRefType   `json:"ref_type"`
	RefID   uuid.UUID       `json:"ref_id"`
	Note    string          `json:"note"`
}

// LedgerStore is the read-side storage contract for ledger entries
type LedgerStore interface {
	GetLedgerEntry(ctx context.Context, tenantID, id uuid.UUID) (*LedgerEntry, error)
	ListLedgerEntriesByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LedgerEntry, error)
	// SumLedgerByType totals entry amounts of one direction for a tenant
	SumLedgerByType(ctx context.Context, tenantID uuid.UUID, typ LedgerType) (decimal.Decimal, error)
}

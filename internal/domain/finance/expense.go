package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// Expense is a tenant-owned expense record. Every expense has exactly one
// matching "out" ledger entry; the pair is created and deleted atomically.
type Expense struct {
	shared.TenantEntity
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
}

// ExpensePayload is the creation payload for an expense
type ExpensePayload struct {
	TenantID uuid.UUID
	Category string
	Amount   decimal.Decimal
	Note     string
}

// ExpenseStore is the storage contract for expenses
type ExpenseStore interface {
	GetExpense(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	ListExpensesByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Expense, error)
	// CreateExpense writes the expense and its ledger entry in one unit of work
	CreateExpense(ctx context.Context, payload ExpensePayload) (*Expense, error)
	// DeleteExpense removes the expense and its ledger entry in one unit of work
	DeleteExpense(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

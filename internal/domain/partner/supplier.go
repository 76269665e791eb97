package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// Supplier is a tenant-owned supplier with an outstanding payable balance.
// Outstanding is only mutated through supplier payments, never directly.
type Supplier struct {
	shared.TenantEntity
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// SupplierPayload is the creation payload for a supplier
type SupplierPayload struct {
	TenantID    uuid.UUID
	Name        string
	Phone       string
	Outstanding decimal.Decimal
}

// SupplierUpdate is a partial update; nil fields are left unchanged
type SupplierUpdate struct {
	Name  *string
	Phone *string
}

// SupplierStore is the storage contract for suppliers
type SupplierStore interface {
	GetSupplier(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	ListSuppliersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CreateSupplier(ctx context.Context, payload SupplierPayload) (*Supplier, error)
	UpdateSupplier(ctx context.Context, tenantID, id uuid.UUID, update SupplierUpdate) (*Supplier, error)
	DeleteSupplier(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

// Package partner contains the business-partner entities of a vendor:
// customers, suppliers and sales leads.
package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// Customer is a tenant-owned customer record
type Customer struct {
	shared.TenantEntity
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// CustomerPayload is the creation payload for a customer.
// ID and timestamps are always generated by the store.
type CustomerPayload struct {
	TenantID uuid.UUID
	Name     string
	Phone    string
	Email    string
	Notes    string
}

// CustomerUpdate is a partial update; nil fields are left unchanged
type CustomerUpdate struct {
	Name  *string
	Phone *string
	Email *string
	Notes *string
}

// CustomerStore is the storage contract for customers.
// Get and Update return shared.ErrNotFound for missing rows; Delete returns
// (false, nil). All operations are scoped to the supplied tenant.
type CustomerStore interface {
	GetCustomer(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	ListCustomersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CreateCustomer(ctx context.Context, payload CustomerPayload) (*Customer, error)
	UpdateCustomer(ctx context.Context, tenantID, id uuid.UUID, update CustomerUpdate) (*Customer, error)
	DeleteCustomer(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
	CountCustomersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

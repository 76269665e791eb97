// Package catalog contains products, shared categories and coupons.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// Product is a tenant-owned sellable item with a current stock level.
// Stock is only mutated through stock movements, never directly.
type Product struct {
	shared.TenantEntity
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock"`
}

// ProductPayload is the creation payload for a product
type ProductPayload struct {
	TenantID uuid.UUID
	Name     string
	SKU      string
	Price    decimal.Decimal
	Stock    int64
}

// ProductUpdate is a partial update; nil fields are left unchanged.
// Stock is deliberately absent: use stock movements.
type ProductUpdate struct {
	Name  *string
	SKU   *string
	Price *decimal.Decimal
}

// ProductStore is the storage contract for products
type ProductStore interface {
	GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	ListProductsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	CreateProduct(ctx context.Context, payload ProductPayload) (*Product, error)
	UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, update ProductUpdate) (*Product, error)
	DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

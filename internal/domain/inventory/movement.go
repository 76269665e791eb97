// Package inventory contains stock movement records.
package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// MovementDirection is the direction of a stock movement
type MovementDirection string

// Movement directions
const (
	MovementIn  MovementDirection = "in"
	MovementOut MovementDirection = "out"
)

// StockMovement is a tenant-owned record of stock entering or leaving a
// product. Recording one adjusts the product's stock level in the same unit
// of work; outbound movement floors the level at zero.
type StockMovement struct {
	shared.TenantEntity
	ProductID uuid.UUID         `json:"product_id"`
	Direction MovementDirection `json:"direction"`
	Quantity  int64             `json:"quantity"`
	Note      string            `json:"note"`
}

// StockMovementPayload is the creation payload for a stock movement
type StockMovementPayload struct {
	TenantID  uuid.UUID
	ProductID uuid.UUID
	Direction MovementDirection
	Quantity  int64
	Note      string
}

// StockMovementStore is the storage contract for stock movements
type StockMovementStore interface {
	// CreateStockMovement records the movement and adjusts the product stock
	// level in one unit of work
	CreateStockMovement(ctx context.Context, payload StockMovementPayload) (*StockMovement, error)
	ListStockMovementsByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]StockMovement, error)
}

package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// SupplierPayment is a payment made against a supplier's outstanding payable.
// Creating one decrements the supplier's outstanding balance (floored at
// zero); deleting one restores it. Both sides commit or roll back together.
type SupplierPayment struct {
	shared.TenantEntity
	SupplierID uuid.UUID       `json:"supplier_id"`
	Amount     decimal.Decimal `json:"amount"`
	// Applied is the portion of Amount that actually reduced the outstanding
	// balance. It is smaller than Amount when the payment overpaid a balance
	// that floors at zero, and it is what a delete restores.
	Applied decimal.Decimal `json:"applied"`
	Note    string          `json:"note"`
}

// SupplierPaymentPayload is the creation payload for a supplier payment
type SupplierPaymentPayload struct {
	TenantID   uuid.UUID
	SupplierID uuid.UUID
	Amount     decimal.Decimal
	Note       string
}

// SupplierPaymentStore is the storage contract for supplier payments
type SupplierPaymentStore interface {
	GetSupplierPayment(ctx context.Context, tenantID, id uuid.UUID) (*SupplierPayment, error)
	ListSupplierPaymentsBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) ([]SupplierPayment, error)
	// CreateSupplierPayment records the payment and adjusts the supplier
	// balance in one unit of work
	CreateSupplierPayment(ctx context.Context, payload SupplierPaymentPayload) (*SupplierPayment, error)
	// DeleteSupplierPayment removes the payment and restores the supplier
	// balance in one unit of work
	DeleteSupplierPayment(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

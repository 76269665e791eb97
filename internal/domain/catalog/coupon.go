package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// Coupon is a tenant-owned discount code with a usage cap. UsedCount is only
// mutated through Redeem; a redemption past the cap is rejected.
type Coupon struct {
	shared.TenantEntity
	Code       string          `json:"code"`
	Discount   decimal.Decimal `json:"discount"`
	UsageLimit int64           `json:"usage_limit"`
	UsedCount  int64           `json:"used_count"`
}

// Remaining reports how many redemptions are left
func (c *Coupon) Remaining() int64 {
	if c.UsedCount >= c.UsageLimit {
		return 0
	}
	return c.UsageLimit - c.UsedCount
}

// CouponPayload is the creation payload for a coupon
type CouponPayload struct {
	TenantID   uuid.UUID
	Code       string
	Discount   decimal.Decimal
	UsageLimit int64
}

// CouponStore is the storage contract for coupons
type CouponStore interface {
	GetCouponByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Coupon, error)
	ListCouponsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Coupon, error)
	CreateCoupon(ctx context.Context, payload CouponPayload) (*Coupon, error)
	// RedeemCoupon increments the usage counter atomically; it fails with
	// shared.ErrCouponExhausted once the limit is reached
	RedeemCoupon(ctx context.Context, tenantID uuid.UUID, code string) (*Coupon, error)
	DeleteCoupon(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/inventory"
)

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	TenantModel
	Name  string          `gorm:"not null;index"`
	SKU   string          `gorm:"index"`
	Price decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Stock int64           `gorm:"not null;default:0"`
}

// TableName returns the table name
func (ProductModel) TableName() string { return "products" }

// ToDomain converts the model to the domain entity
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantEntity: m.TenantModel.ToDomain(),
		Name:         m.Name,
		SKU:          m.SKU,
		Price:        m.Price,
		Stock:        m.Stock,
	}
}

// ProductModelFromDomain builds the model from the domain entity
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:  p.Name,
		SKU:   p.SKU,
		Price: p.Price,
		Stock: p.Stock,
	}
	m.TenantModel.FromDomain(p.TenantEntity)
	return m
}

// CategoryModel is the persistence model for catalog.Category. Categories
// are shared reference data, so the model is not tenant-scoped; global rows
// have no authoring tenant.
type CategoryModel struct {
	BaseModel
	Name      string     `gorm:"not null;index"`
	IsGlobal  bool       `gorm:"not null;default:false;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name
func (CategoryModel) TableName() string { return "categories" }

// ToDomain converts the model to the domain entity
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		IsGlobal:   m.IsGlobal,
		CreatedBy:  m.CreatedBy,
	}
}

// CategoryModelFromDomain builds the model from the domain entity
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Name:      c.Name,
		IsGlobal:  c.IsGlobal,
		CreatedBy: c.CreatedBy,
	}
	m.BaseModel.FromDomain(c.BaseEntity)
	return m
}

// CouponModel is the persistence model for catalog.Coupon
type CouponModel struct {
	TenantModel
	Code       string          `gorm:"not null;uniqueIndex:idx_coupon_tenant_code"`
	Discount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	UsageLimit int64           `gorm:"not null"`
	UsedCount  int64           `gorm:"not null;default:0"`
}

// TableName returns the table name
func (CouponModel) TableName() string { return "coupons" }

// ToDomain converts the model to the domain entity
func (m *CouponModel) ToDomain() *catalog.Coupon {
	return &catalog.Coupon{
		TenantEntity: m.TenantModel.ToDomain(),
		Code:         m.Code,
		Discount:     m.Discount,
		UsageLimit:   m.UsageLimit,
		UsedCount:    m.UsedCount,
	}
}

// CouponModelFromDomain builds the model from the domain entity
func CouponModelFromDomain(c *catalog.Coupon) *CouponModel {
	m := &CouponModel{
		Code:       c.Code,
		Discount:   c.Discount,
		UsageLimit: c.UsageLimit,
		UsedCount:  c.UsedCount,
	}
	m.TenantModel.FromDomain(c.TenantEntity)
	return m
}

// StockMovementModel is the persistence model for inventory.StockMovement
type StockMovementModel struct {
	TenantModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction string    `gorm:"not null"`
	Quantity  int64     `gorm:"not null"`
	Note      string
}

// TableName returns the table name
func (StockMovementModel) TableName() string { return "stock_movements" }

// ToDomain converts the model to the domain entity
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		TenantEntity: m.TenantModel.ToDomain(),
		ProductID:    m.ProductID,
		Direction:    inventory.MovementDirection(m.Direction),
		Quantity:     m.Quantity,
		Note:         m.Note,
	}
}

// StockMovementModelFromDomain builds the model from the domain entity
func StockMovementModelFromDomain(s *inventory.StockMovement) *StockMovementModel {
	m := &StockMovementModel{
		ProductID: s.ProductID,
		Direction: string(s.Direction),
		Quantity:  s.Quantity,
		Note:      s.Note,
	}
	m.TenantModel.FromDomain(s.TenantEntity)
	return m
}

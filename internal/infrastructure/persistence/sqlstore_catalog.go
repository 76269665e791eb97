package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/inventory"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

// GetProduct returns one product of the tenant
func (s *SQLStore) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var out *catalog.Product
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.ProductModel
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&m).Error; err != nil {
			return mapNotFound(err)
		}
		out = m.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListProductsByTenant returns the tenant's products matching the filter
func (s *SQLStore) ListProductsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.ProductModel
		q := tx.Model(&models.ProductModel{}).Where("tenant_id = ?", tenantID)
		if err := applyFilter(q, filter, "name", "sku").Find(&rows).Error; err != nil {
			return err
		}
		out = make([]catalog.Product, 0, len(rows))
		for i := range rows {
			out = append(out, *rows[i].ToDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct creates a product with a server-generated id
func (s *SQLStore) CreateProduct(ctx context.Context, payload catalog.ProductPayload) (*catalog.Product, error) {
	p := &catalog.Product{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Name:         payload.Name,
		SKU:          payload.SKU,
		Price:        payload.Price,
		Stock:        payload.Stock,
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, payload.TenantID), func(tx *gorm.DB) error {
		return tx.Create(models.ProductModelFromDomain(p)).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct applies a partial update. Stock is never touched here; it
// only moves through stock movements.
func (s *SQLStore) UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, update catalog.ProductUpdate) (*catalog.Product, error) {
	var out *catalog.Product
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.ProductModel
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&m).Error; err != nil {
			return mapNotFound(err)
		}
		p := m.ToDomain()
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.SKU != nil {
			p.SKU = *update.SKU
		}
		if update.Price != nil {
			p.Price = *update.Price
		}
		p.Touch()
		if err := tx.Save(models.ProductModelFromDomain(p)).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProduct removes a product; deleting a missing row is not an error
func (s *SQLStore) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		res := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.ProductModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// GetCategory returns one category. Visibility is enforced by the schema:
// tenants resolve global rows and their own, admins resolve everything.
func (s *SQLStore) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var out *catalog.Category
	err := s.runner.WithContext(ctx, scopeFrom(ctx), func(tx *gorm.DB) error {
		var m models.CategoryModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return mapNotFound(err)
		}
		out = m.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategoriesForTenant returns global categories plus the tenant's own
func (s *SQLStore) ListCategoriesForTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Category, error) {
	var out []catalog.Category
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.CategoryModel
		err := tx.Where("is_global = TRUE OR created_by = ?", tenantID).
			Order("name ASC").
			Find(&rows).Error
		if err != nil {
			return err
		}
		out = make([]catalog.Category, 0, len(rows))
		for i := range rows {
			out = append(out, *rows[i].ToDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory creates a category. Tenant-authored categories must carry
// the authoring tenant.
func (s *SQLStore) CreateCategory(ctx context.Context, payload catalog.CategoryPayload) (*catalog.Category, error) {
	if !payload.IsGlobal && payload.CreatedBy == nil {
		return nil, shared.ErrInvalidInput
	}
	c := &catalog.Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       payload.Name,
		IsGlobal:   payload.IsGlobal,
		CreatedBy:  payload.CreatedBy,
	}
	sc := scopeFrom(ctx)
	if payload.CreatedBy != nil {
		sc = tenant.ScopeFromContext(ctx, *payload.CreatedBy)
	}
	err := s.runner.WithContext(ctx, sc, func(tx *gorm.DB) error {
		return tx.Create(models.CategoryModelFromDomain(c)).Error
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a category; deleting a missing row is not an error
func (s *SQLStore) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.runner.WithContext(ctx, scopeFrom(ctx), func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.CategoryModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// GetCouponByCode returns the tenant's coupon with the given code
func (s *SQLStore) GetCouponByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Coupon, error) {
	var out *catalog.Coupon
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.CouponModel
		if err := tx.Where("tenant_id = ? AND code = ?", tenantID, code).First(&m).Error; err != nil {
			return mapNotFound(err)
		}
		out = m.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCouponsByTenant returns the tenant's coupons matching the filter
func (s *SQLStore) ListCouponsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Coupon, error) {
	var out []catalog.Coupon
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.CouponModel
		q := tx.Model(&models.CouponModel{}).Where("tenant_id = ?", tenantID)
		if err := applyFilter(q, filter, "code").Find(&rows).Error; err != nil {
			return err
		}
		out = make([]catalog.Coupon, 0, len(rows))
		for i := range rows {
			out = append(out, *rows[i].ToDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCoupon creates a coupon with a zero usage counter
func (s *SQLStore) CreateCoupon(ctx context.Context, payload catalog.CouponPayload) (*catalog.Coupon, error) {
	c := &catalog.Coupon{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Code:         payload.Code,
		Discount:     payload.Discount,
		UsageLimit:   payload.UsageLimit,
		UsedCount:    0,
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, payload.TenantID), func(tx *gorm.DB) error {
		return tx.Create(models.CouponModelFromDomain(c)).Error
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// RedeemCoupon increments the usage counter under a row lock. Concurrent
// redemptions serialize on the lock, so the counter can never pass the
// limit.
func (s *SQLStore) RedeemCoupon(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Coupon, error) {
	var out *catalog.Coupon
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.CouponModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND code = ?", tenantID, code).
			First(&m).Error
		if err != nil {
			return mapNotFound(err)
		}
		if m.UsedCount >= m.UsageLimit {
			return shared.ErrCouponExhausted
		}
		c := m.ToDomain()
		c.UsedCount++
		c.Touch()
		if err := tx.Save(models.CouponModelFromDomain(c)).Error; err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCoupon removes a coupon; deleting a missing row is not an error
func (s *SQLStore) DeleteCoupon(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		res := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.CouponModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// CreateStockMovement records the movement and moves the product's stock
// level in the same transaction. Outbound movement floors the level at zero;
// a movement against a missing product fails with shared.ErrNotFound.
func (s *SQLStore) CreateStockMovement(ctx context.Context, payload inventory.StockMovementPayload) (*inventory.StockMovement, error) {
	if payload.Quantity <= 0 {
		return nil, shared.ErrInvalidInput
	}
	mv := &inventory.StockMovement{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		ProductID:    payload.ProductID,
		Direction:    payload.Direction,
		Quantity:     payload.Quantity,
		Note:         payload.Note,
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, payload.TenantID), func(tx *gorm.DB) error {
		var p models.ProductModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND id = ?", payload.TenantID, payload.ProductID).
			First(&p).Error
		if err != nil {
			return mapNotFound(err)
		}

		if err := tx.Create(models.StockMovementModelFromDomain(mv)).Error; err != nil {
			return err
		}

		stock := p.Stock
		switch payload.Direction {
		case inventory.MovementIn:
			stock += payload.Quantity
		case inventory.MovementOut:
			stock -= payload.Quantity
			if stock < 0 {
				stock = 0
			}
		default:
			return shared.ErrInvalidInput
		}
		return tx.Model(&models.ProductModel{}).
			Where("tenant_id = ? AND id = ?", payload.TenantID, payload.ProductID).
			Updates(map[string]interface{}{"stock": stock, "updated_at": mv.UpdatedAt}).Error
	})
	if err != nil {
		return nil, err
	}
	return mv, nil
}

// ListStockMovementsByProduct returns the movements recorded against one
// product, newest first
func (s *SQLStore) ListStockMovementsByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.StockMovementModel
		err := tx.Where("tenant_id = ? AND product_id = ?", tenantID, productID).
			Order("created_at DESC").
			Find(&rows).Error
		if err != nil {
			return err
		}
		out = make([]inventory.StockMovement, 0, len(rows))
		for i := range rows {
			out = append(out, *rows[i].ToDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

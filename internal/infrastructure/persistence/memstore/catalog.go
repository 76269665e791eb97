package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/inventory"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// GetProduct returns one product of the tenant
func (s *MemStore) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

// ListProductsByTenant returns the tenant's products matching the filter
func (s *MemStore) ListProductsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, 0)
	for _, p := range s.products {
		if p.TenantID != tenantID {
			continue
		}
		if !matchesSearch(filter.Search, p.Name, p.SKU) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter), nil
}

// CreateProduct creates a product with a server-generated id
func (s *MemStore) CreateProduct(ctx context.Context, payload catalog.ProductPayload) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := catalog.Product{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Name:         payload.Name,
		SKU:          payload.SKU,
		Price:        payload.Price,
		Stock:        payload.Stock,
	}
	s.products[p.ID] = p
	return &p, nil
}

// UpdateProduct applies a partial update. Stock only moves through stock
// movements.
func (s *MemStore) UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, update catalog.ProductUpdate) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
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
	s.products[id] = p
	return &p, nil
}

// DeleteProduct removes a product; deleting a missing row is not an error
func (s *MemStore) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.TenantID != tenantID {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

// GetCategory returns one category
func (s *MemStore) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

// ListCategoriesForTenant returns global categories plus the tenant's own
func (s *MemStore) ListCategoriesForTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Category, 0)
	for _, c := range s.categories {
		if c.IsGlobal || (c.CreatedBy != nil && *c.CreatedBy == tenantID) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// CreateCategory creates a category. Tenant-authored categories must carry
// the authoring tenant.
func (s *MemStore) CreateCategory(ctx context.Context, payload catalog.CategoryPayload) (*catalog.Category, error) {
	if !payload.IsGlobal && payload.CreatedBy == nil {
		return nil, shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := catalog.Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       payload.Name,
		IsGlobal:   payload.IsGlobal,
		CreatedBy:  payload.CreatedBy,
	}
	s.categories[c.ID] = c
	return &c, nil
}

// DeleteCategory removes a category; deleting a missing row is not an error
func (s *MemStore) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, nil
}

// GetCouponByCode returns the tenant's coupon with the given code
func (s *MemStore) GetCouponByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.coupons {
		if c.TenantID == tenantID && c.Code == code {
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

// ListCouponsByTenant returns the tenant's coupons matching the filter
func (s *MemStore) ListCouponsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Coupon, 0)
	for _, c := range s.coupons {
		if c.TenantID != tenantID {
			continue
		}
		if !matchesSearch(filter.Search, c.Code) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter), nil
}

// CreateCoupon creates a coupon with a zero usage counter. A duplicate code
// within the tenant fails with shared.ErrAlreadyExists.
func (s *MemStore) CreateCoupon(ctx context.Context, payload catalog.CouponPayload) (*catalog.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.coupons {
		if existing.TenantID == payload.TenantID && existing.Code == payload.Code {
			return nil, shared.ErrAlreadyExists
		}
	}
	c := catalog.Coupon{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Code:         payload.Code,
		Discount:     payload.Discount,
		UsageLimit:   payload.UsageLimit,
		UsedCount:    0,
	}
	s.coupons[c.ID] = c
	return &c, nil
}

// RedeemCoupon increments the usage counter under the store lock, so the
// counter can never pass the limit
func (s *MemStore) RedeemCoupon(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.coupons {
		if c.TenantID != tenantID || c.Code != code {
			continue
		}
		if c.UsedCount >= c.UsageLimit {
			return nil, shared.ErrCouponExhausted
		}
		c.UsedCount++
		c.Touch()
		s.coupons[id] = c
		return &c, nil
	}
	return nil, shared.ErrNotFound
}

// DeleteCoupon removes a coupon; deleting a missing row is not an error
func (s *MemStore) DeleteCoupon(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[id]
	if !ok || c.TenantID != tenantID {
		return false, nil
	}
	delete(s.coupons, id)
	return true, nil
}

// CreateStockMovement records the movement and moves the product's stock
// level under one lock. Outbound movement floors the level at zero; a
// movement against a missing product fails with shared.ErrNotFound.
func (s *MemStore) CreateStockMovement(ctx context.Context, payload inventory.StockMovementPayload) (*inventory.StockMovement, error) {
	if payload.Quantity <= 0 {
		return nil, shared.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[payload.ProductID]
	if !ok || p.TenantID != payload.TenantID {
		return nil, shared.ErrNotFound
	}

	switch payload.Direction {
	case inventory.MovementIn:
		p.Stock += payload.Quantity
	case inventory.MovementOut:
		p.Stock -= payload.Quantity
		if p.Stock < 0 {
			p.Stock = 0
		}
	default:
		return nil, shared.ErrInvalidInput
	}

	mv := inventory.StockMovement{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		ProductID:    payload.ProductID,
		Direction:    payload.Direction,
		Quantity:     payload.Quantity,
		Note:         payload.Note,
	}
	s.movements[mv.ID] = mv
	p.Touch()
	s.products[p.ID] = p
	return &mv, nil
}

// ListStockMovementsByProduct returns the movements recorded against one
// product, newest first
func (s *MemStore) ListStockMovementsByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]inventory.StockMovement, 0)
	for _, mv := range s.movements {
		if mv.TenantID == tenantID && mv.ProductID == productID {
			out = append(out, mv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// GetCustomer returns one customer of the tenant
func (s *MemStore) GetCustomer(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

// ListCustomersByTenant returns the tenant's customers matching the filter
func (s *MemStore) ListCustomersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]partner.Customer, 0)
	for _, c := range s.customers {
		if c.TenantID != tenantID {
			continue
		}
		if !matchesSearch(filter.Search, c.Name, c.Phone, c.Email) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter), nil
}

// CountCustomersByTenant returns the total matching the filter, before
// pagination
func (s *MemStore) CountCustomersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, c := range s.customers {
		if c.TenantID == tenantID && matchesSearch(filter.Search, c.Name, c.Phone, c.Email) {
			total++
		}
	}
	return total, nil
}

// CreateCustomer creates a customer with a server-generated id
func (s *MemStore) CreateCustomer(ctx context.Context, payload partner.CustomerPayload) (*partner.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := partner.Customer{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Name:         payload.Name,
		Phone:        payload.Phone,
		Email:        payload.Email,
		Notes:        payload.Notes,
	}
	s.customers[c.ID] = c
	return &c, nil
}

// UpdateCustomer applies a partial update; nil fields are left unchanged
func (s *MemStore) UpdateCustomer(ctx context.Context, tenantID, id uuid.UUID, update partner.CustomerUpdate) (*partner.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Phone != nil {
		c.Phone = *update.Phone
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	if update.Notes != nil {
		c.Notes = *update.Notes
	}
	c.Touch()
	s.customers[id] = c
	return &c, nil
}

// DeleteCustomer removes a customer; deleting a missing row is not an error
func (s *MemStore) DeleteCustomer(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok || c.TenantID != tenantID {
		return false, nil
	}
	delete(s.customers, id)
	return true, nil
}

// GetSupplier returns one supplier of the tenant
func (s *MemStore) GetSupplier(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sup, ok := s.suppliers[id]
	if !ok || sup.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &sup, nil
}

// ListSuppliersByTenant returns the tenant's suppliers matching the filter
func (s *MemStore) ListSuppliersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]partner.Supplier, 0)
	for _, sup := range s.suppliers {
		if sup.TenantID != tenantID {
			continue
		}
		if !matchesSearch(filter.Search, sup.Name, sup.Phone) {
			continue
		}
		out = append(out, sup)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter), nil
}

// CreateSupplier creates a supplier with a server-generated id
func (s *MemStore) CreateSupplier(ctx context.Context, payload partner.SupplierPayload) (*partner.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup := partner.Supplier{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Name:         payload.Name,
		Phone:        payload.Phone,
		Outstanding:  payload.Outstanding,
	}
	s.suppliers[sup.ID] = sup
	return &sup, nil
}

// UpdateSupplier applies a partial update. Outstanding only moves through
// supplier payments.
func (s *MemStore) UpdateSupplier(ctx context.Context, tenantID, id uuid.UUID, update partner.SupplierUpdate) (*partner.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.suppliers[id]
	if !ok || sup.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	if update.Name != nil {
		sup.Name = *update.Name
	}
	if update.Phone != nil {
		sup.Phone = *update.Phone
	}
	sup.Touch()
	s.suppliers[id] = sup
	return &sup, nil
}

// DeleteSupplier removes a supplier; deleting a missing row is not an error
func (s *MemStore) DeleteSupplier(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.suppliers[id]
	if !ok || sup.TenantID != tenantID {
		return false, nil
	}
	delete(s.suppliers, id)
	return true, nil
}

// GetLead returns one lead of the tenant
func (s *MemStore) GetLead(ctx context.Context, tenantID, id uuid.UUID) (*partner.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leads[id]
	if !ok || l.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &l, nil
}

// ListLeadsByTenant returns the tenant's leads matching the filter
func (s *MemStore) ListLeadsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, _ := filter.Filters["status"].(string)
	out := make([]partner.Lead, 0)
	for _, l := range s.leads {
		if l.TenantID != tenantID {
			continue
		}
		if status != "" && string(l.Status) != status {
			continue
		}
		if !matchesSearch(filter.Search, l.Name, l.Phone, l.Source) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter), nil
}

// CreateLead creates a lead with a server-generated id. An empty status
// defaults to new.
func (s *MemStore) CreateLead(ctx context.Context, payload partner.LeadPayload) (*partner.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := payload.Status
	if status == "" {
		status = partner.LeadStatusNew
	}
	l := partner.Lead{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Name:         payload.Name,
		Phone:        payload.Phone,
		Source:       payload.Source,
		Status:       status,
	}
	s.leads[l.ID] = l
	return &l, nil
}

// UpdateLead applies a partial update; nil fields are left unchanged
func (s *MemStore) UpdateLead(ctx context.Context, tenantID, id uuid.UUID, update partner.LeadUpdate) (*partner.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok || l.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	if update.Name != nil {
		l.Name = *update.Name
	}
	if update.Phone != nil {
		l.Phone = *update.Phone
	}
	if update.Source != nil {
		l.Source = *update.Source
	}
	if update.Status != nil {
		l.Status = *update.Status
	}
	l.Touch()
	s.leads[id] = l
	return &l, nil
}

// DeleteLead removes a lead; deleting a missing row is not an error
func (s *MemStore) DeleteLead(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok || l.TenantID != tenantID {
		return false, nil
	}
	delete(s.leads, id)
	return true, nil
}

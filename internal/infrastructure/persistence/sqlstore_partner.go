package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

// GetCustomer returns one customer of the tenant
func (s *SQLStore) GetCustomer(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	var out *partner.Customer
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.CustomerModel
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

// ListCustomersByTenant returns the tenant's customers matching the filter
func (s *SQLStore) ListCustomersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var out []partner.Customer
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.CustomerModel
		q := tx.Model(&models.CustomerModel{}).Where("tenant_id = ?", tenantID)
		if err := applyFilter(q, filter, "name", "phone", "email").Find(&rows).Error; err != nil {
			return err
		}
		out = make([]partner.Customer, 0, len(rows))
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

// CountCustomersByTenant returns the total matching the filter, before
// pagination
func (s *SQLStore) CountCustomersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var total int64
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		q := tx.Model(&models.CustomerModel{}).Where("tenant_id = ?", tenantID)
		return applyCountFilter(q, filter, "name", "phone", "email").Count(&total).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// CreateCustomer creates a customer with a server-generated id
func (s *SQLStore) CreateCustomer(ctx context.Context, payload partner.CustomerPayload) (*partner.Customer, error) {
	c := &partner.Customer{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Name:         payload.Name,
		Phone:        payload.Phone,
		Email:        payload.Email,
		Notes:        payload.Notes,
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, payload.TenantID), func(tx *gorm.DB) error {
		return tx.Create(models.CustomerModelFromDomain(c)).Error
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCustomer applies a partial update; nil fields are left unchanged
func (s *SQLStore) UpdateCustomer(ctx context.Context, tenantID, id uuid.UUID, update partner.CustomerUpdate) (*partner.Customer, error) {
	var out *partner.Customer
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.CustomerModel
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&m).Error; err != nil {
			return mapNotFound(err)
		}
		c := m.ToDomain()
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
		if err := tx.Save(models.CustomerModelFromDomain(c)).Error; err != nil {
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

// DeleteCustomer removes a customer; deleting a missing row is not an error
func (s *SQLStore) DeleteCustomer(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		res := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.CustomerModel{})
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

// GetSupplier returns one supplier of the tenant
func (s *SQLStore) GetSupplier(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	var out *partner.Supplier
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.SupplierModel
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

// ListSuppliersByTenant returns the tenant's suppliers matching the filter
func (s *SQLStore) ListSuppliersByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	var out []partner.Supplier
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.SupplierModel
		q := tx.Model(&models.SupplierModel{}).Where("tenant_id = ?", tenantID)
		if err := applyFilter(q, filter, "name", "phone").Find(&rows).Error; err != nil {
			return err
		}
		out = make([]partner.Supplier, 0, len(rows))
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

// CreateSupplier creates a supplier with a server-generated id
func (s *SQLStore) CreateSupplier(ctx context.Context, payload partner.SupplierPayload) (*partner.Supplier, error) {
	sup := &partner.Supplier{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Name:         payload.Name,
		Phone:        payload.Phone,
		Outstanding:  payload.Outstanding,
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, payload.TenantID), func(tx *gorm.DB) error {
		return tx.Create(models.SupplierModelFromDomain(sup)).Error
	})
	if err != nil {
		return nil, err
	}
	return sup, nil
}

// UpdateSupplier applies a partial update. Outstanding is not updatable
// here; it only moves through supplier payments.
func (s *SQLStore) UpdateSupplier(ctx context.Context, tenantID, id uuid.UUID, update partner.SupplierUpdate) (*partner.Supplier, error) {
	var out *partner.Supplier
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.SupplierModel
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&m).Error; err != nil {
			return mapNotFound(err)
		}
		sup := m.ToDomain()
		if update.Name != nil {
			sup.Name = *update.Name
		}
		if update.Phone != nil {
			sup.Phone = *update.Phone
		}
		sup.Touch()
		if err := tx.Save(models.SupplierModelFromDomain(sup)).Error; err != nil {
			return err
		}
		out = sup
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSupplier removes a supplier; deleting a missing row is not an error
func (s *SQLStore) DeleteSupplier(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		res := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.SupplierModel{})
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

// GetLead returns one lead of the tenant
func (s *SQLStore) GetLead(ctx context.Context, tenantID, id uuid.UUID) (*partner.Lead, error) {
	var out *partner.Lead
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.LeadModel
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

// ListLeadsByTenant returns the tenant's leads matching the filter
func (s *SQLStore) ListLeadsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Lead, error) {
	var out []partner.Lead
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.LeadModel
		q := tx.Model(&models.LeadModel{}).Where("tenant_id = ?", tenantID)
		if err := applyFilter(q, filter, "name", "phone", "source").Find(&rows).Error; err != nil {
			return err
		}
		out = make([]partner.Lead, 0, len(rows))
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

// CreateLead creates a lead with a server-generated id. An empty status
// defaults to new.
func (s *SQLStore) CreateLead(ctx context.Context, payload partner.LeadPayload) (*partner.Lead, error) {
	status := payload.Status
	if status == "" {
		status = partner.LeadStatusNew
	}
	l := &partner.Lead{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Name:         payload.Name,
		Phone:        payload.Phone,
		Source:       payload.Source,
		Status:       status,
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, payload.TenantID), func(tx *gorm.DB) error {
		return tx.Create(models.LeadModelFromDomain(l)).Error
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateLead applies a partial update; nil fields are left unchanged
func (s *SQLStore) UpdateLead(ctx context.Context, tenantID, id uuid.UUID, update partner.LeadUpdate) (*partner.Lead, error) {
	var out *partner.Lead
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.LeadModel
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&m).Error; err != nil {
			return mapNotFound(err)
		}
		l := m.ToDomain()
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
		if err := tx.Save(models.LeadModelFromDomain(l)).Error; err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteLead removes a lead; deleting a missing row is not an error
func (s *SQLStore) DeleteLead(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		res := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.LeadModel{})
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

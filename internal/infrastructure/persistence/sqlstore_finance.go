package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

// GetExpense returns one expense of the tenant
func (s *SQLStore) GetExpense(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	var out *finance.Expense
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.ExpenseModel
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

// ListExpensesByTenant returns the tenant's expenses matching the filter
func (s *SQLStore) ListExpensesByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	var out []finance.Expense
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.ExpenseModel
		q := tx.Model(&models.ExpenseModel{}).Where("tenant_id = ?", tenantID)
		if err := applyFilter(q, filter, "category", "note").Find(&rows).Error; err != nil {
			return err
		}
		out = make([]finance.Expense, 0, len(rows))
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

// CreateExpense writes the expense and its "out" ledger entry in the same
// transaction; both appear or neither does
func (s *SQLStore) CreateExpense(ctx context.Context, payload finance.ExpensePayload) (*finance.Expense, error) {
	e := &finance.Expense{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		Category:     payload.Category,
		Amount:       payload.Amount,
		Note:         payload.Note,
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, payload.TenantID), func(tx *gorm.DB) error {
		if err := tx.Create(models.ExpenseModelFromDomain(e)).Error; err != nil {
			return err
		}
		entry := &finance.LedgerEntry{
			TenantEntity: shared.NewTenantEntity(payload.TenantID),
			Type:         finance.LedgerOut,
			Amount:       payload.Amount,
			RefType:      finance.LedgerRefExpense,
			RefID:        e.ID,
			Note:         payload.Note,
		}
		return tx.Create(models.LedgerEntryModelFromDomain(entry)).Error
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteExpense removes the expense and its ledger entry in the same
// transaction; deleting a missing expense is not an error
func (s *SQLStore) DeleteExpense(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		res := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.ExpenseModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("tenant_id = ? AND ref_type = ? AND ref_id = ?",
			tenantID, string(finance.LedgerRefExpense), id).
			Delete(&models.LedgerEntryModel{}).Error
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// GetLedgerEntry returns one ledger entry of the tenant
func (s *SQLStore) GetLedgerEntry(ctx context.Context, tenantID, id uuid.UUID) (*finance.LedgerEntry, error) {
	var out *finance.LedgerEntry
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.LedgerEntryModel
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

// ListLedgerEntriesByTenant returns the tenant's ledger entries matching the
// filter
func (s *SQLStore) ListLedgerEntriesByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerEntry, error) {
	var out []finance.LedgerEntry
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.LedgerEntryModel
		q := tx.Model(&models.LedgerEntryModel{}).Where("tenant_id = ?", tenantID)
		if err := applyFilter(q, filter, "note").Find(&rows).Error; err != nil {
			return err
		}
		out = make([]finance.LedgerEntry, 0, len(rows))
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

// SumLedgerByType totals entry amounts of one direction for a tenant
func (s *SQLStore) SumLedgerByType(ctx context.Context, tenantID uuid.UUID, typ finance.LedgerType) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		return tx.Model(&models.LedgerEntryModel{}).
			Select("COALESCE(SUM(amount), 0) AS total").
			Where("tenant_id = ? AND type = ?", tenantID, string(typ)).
			Scan(&row).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// GetSupplierPayment returns one supplier payment of the tenant
func (s *SQLStore) GetSupplierPayment(ctx context.Context, tenantID, id uuid.UUID) (*finance.SupplierPayment, error) {
	var out *finance.SupplierPayment
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.SupplierPaymentModel
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

// ListSupplierPaymentsBySupplier returns the payments recorded against one
// supplier, newest first
func (s *SQLStore) ListSupplierPaymentsBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) ([]finance.SupplierPayment, error) {
	var out []finance.SupplierPayment
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var rows []models.SupplierPaymentModel
		err := tx.Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID).
			Order("created_at DESC").
			Find(&rows).Error
		if err != nil {
			return err
		}
		out = make([]finance.SupplierPayment, 0, len(rows))
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

// CreateSupplierPayment records the payment, decrements the supplier's
// outstanding balance (floored at zero) and writes the matching "out" ledger
// entry, all in one transaction. A payment against a missing supplier fails
// with shared.ErrNotFound.
func (s *SQLStore) CreateSupplierPayment(ctx context.Context, payload finance.SupplierPaymentPayload) (*finance.SupplierPayment, error) {
	p := &finance.SupplierPayment{
		TenantEntity: shared.NewTenantEntity(payload.TenantID),
		SupplierID:   payload.SupplierID,
		Amount:       payload.Amount,
		Note:         payload.Note,
	}
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, payload.TenantID), func(tx *gorm.DB) error {
		var sup models.SupplierModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND id = ?", payload.TenantID, payload.SupplierID).
			First(&sup).Error
		if err != nil {
			return mapNotFound(err)
		}

		// An overpayment floors the balance at zero, so only part of the
		// amount is applied; the delete path restores exactly that part.
		p.Applied = payload.Amount
		if p.Applied.GreaterThan(sup.Outstanding) {
			p.Applied = sup.Outstanding
		}
		if err := tx.Create(models.SupplierPaymentModelFromDomain(p)).Error; err != nil {
			return err
		}

		remaining := sup.Outstanding.Sub(p.Applied)
		err = tx.Model(&models.SupplierModel{}).
			Where("tenant_id = ? AND id = ?", payload.TenantID, payload.SupplierID).
			Updates(map[string]interface{}{"outstanding": remaining, "updated_at": p.UpdatedAt}).Error
		if err != nil {
			return err
		}

		entry := &finance.LedgerEntry{
			TenantEntity: shared.NewTenantEntity(payload.TenantID),
			Type:         finance.LedgerOut,
			Amount:       payload.Amount,
			RefType:      finance.LedgerRefPayment,
			RefID:        p.ID,
			Note:         payload.Note,
		}
		return tx.Create(models.LedgerEntryModelFromDomain(entry)).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteSupplierPayment removes the payment, restores the supplier's
// outstanding balance and drops the ledger entry, all in one transaction
func (s *SQLStore) DeleteSupplierPayment(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.runner.WithContext(ctx, tenant.ScopeFromContext(ctx, tenantID), func(tx *gorm.DB) error {
		var m models.SupplierPaymentModel
		err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var sup models.SupplierModel
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND id = ?", tenantID, m.SupplierID).
			First(&sup).Error
		if err == nil {
			err = tx.Model(&models.SupplierModel{}).
				Where("tenant_id = ? AND id = ?", tenantID, m.SupplierID).
				Update("outstanding", sup.Outstanding.Add(m.Applied)).Error
			if err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		err = tx.Where("tenant_id = ? AND ref_type = ? AND ref_id = ?",
			tenantID, string(finance.LedgerRefPayment), id).
			Delete(&models.LedgerEntryModel{}).Error
		if err != nil {
			return err
		}

		res := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.SupplierPaymentModel{})
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

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/finance"
)

// ExpenseModel is the persistence model for finance.Expense
type ExpenseModel struct {
	TenantModel
	Category string          `gorm:"not null;index"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Note     string
}

// TableName returns the table name
func (ExpenseModel) TableName() string { return "expenses" }

// ToDomain converts the model to the domain entity
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		TenantEntity: m.TenantModel.ToDomain(),
		Category:     m.Category,
		Amount:       m.Amount,
		Note:         m.Note,
	}
}

// ExpenseModelFromDomain builds the model from the domain entity
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{
		Category: e.Category,
		Amount:   e.Amount,
		Note:     e.Note,
	}
	m.TenantModel.FromDomain(e.TenantEntity)
	return m
}

// LedgerEntryModel is the persistence model for finance.LedgerEntry
type LedgerEntryModel struct {
	TenantModel
	Type    string          `gorm:"not null;index"`
	Amount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RefType string          `gorm:"not null;index:idx_ledger_ref"`
	RefID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_ref"`
	Note    string
}

// TableName returns the table name
func (LedgerEntryModel) TableName() string { return "ledger_entries" }

// ToDomain converts the model to the domain entity
func (m *LedgerEntryModel) ToDomain() *finance.LedgerEntry {
	return &finance.LedgerEntry{
		TenantEntity: m.TenantModel.ToDomain(),
		Type:         finance.LedgerType(m.Type),
		Amount:       m.Amount,
		RefType:      finance.LedgerRefType(m.RefType),
		RefID:        m.RefID,
		Note:         m.Note,
	}
}

// LedgerEntryModelFromDomain builds the model from the domain entity
func LedgerEntryModelFromDomain(e *finance.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{
		Type:    string(e.Type),
		Amount:  e.Amount,
		RefType: string(e.RefType),
		RefID:   e.RefID,
		Note:    e.Note,
	}
	m.TenantModel.FromDomain(e.TenantEntity)
	return m
}

// SupplierPaymentModel is the persistence model for finance.SupplierPayment
type SupplierPaymentModel struct {
	TenantModel
	SupplierID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Applied    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Note       string
}

// TableName returns the table name
func (SupplierPaymentModel) TableName() string { return "supplier_payments" }

// ToDomain converts the model to the domain entity
func (m *SupplierPaymentModel) ToDomain() *finance.SupplierPayment {
	return &finance.SupplierPayment{
		TenantEntity: m.TenantModel.ToDomain(),
		SupplierID:   m.SupplierID,
		Amount:       m.Amount,
		Applied:      m.Applied,
		Note:         m.Note,
	}
}

// SupplierPaymentModelFromDomain builds the model from the domain entity
func SupplierPaymentModelFromDomain(p *finance.SupplierPayment) *SupplierPaymentModel {
	m := &SupplierPaymentModel{
		SupplierID: p.SupplierID,
		Amount:     p.Amount,
		Applied:    p.Applied,
		Note:       p.Note,
	}
	m.TenantModel.FromDomain(p.TenantEntity)
	return m
}

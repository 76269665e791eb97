package models

import (
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for partner.Customer
type CustomerModel struct {
	TenantModel
	Name  string `gorm:"not null;index"`
	Phone string `gorm:"index"`
	Email string
	Notes string
}

// TableName returns the table name
func (CustomerModel) TableName() string { return "customers" }

// ToDomain converts the model to the domain entity
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		TenantEntity: m.TenantModel.ToDomain(),
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		Notes:        m.Notes,
	}
}

// CustomerModelFromDomain builds the model from the domain entity
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:  c.Name,
		Phone: c.Phone,
		Email: c.Email,
		Notes: c.Notes,
	}
	m.TenantModel.FromDomain(c.TenantEntity)
	return m
}

// SupplierModel is the persistence model for partner.Supplier
type SupplierModel struct {
	TenantModel
	Name        string `gorm:"not null;index"`
	Phone       string
	Outstanding decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName returns the table name
func (SupplierModel) TableName() string { return "suppliers" }

// ToDomain converts the model to the domain entity
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		TenantEntity: m.TenantModel.ToDomain(),
		Name:         m.Name,
		Phone:        m.Phone,
		Outstanding:  m.Outstanding,
	}
}

// SupplierModelFromDomain builds the model from the domain entity
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{
		Name:        s.Name,
		Phone:       s.Phone,
		Outstanding: s.Outstanding,
	}
	m.TenantModel.FromDomain(s.TenantEntity)
	return m
}

// LeadModel is the persistence model for partner.Lead
type LeadModel struct {
	TenantModel
	Name   string `gorm:"not null;index"`
	Phone  string
	Source string `gorm:"index"`
	Status string `gorm:"not null;index"`
}

// TableName returns the table name
func (LeadModel) TableName() string { return "leads" }

// ToDomain converts the model to the domain entity
func (m *LeadModel) ToDomain() *partner.Lead {
	return &partner.Lead{
		TenantEntity: m.TenantModel.ToDomain(),
		Name:         m.Name,
		Phone:        m.Phone,
		Source:       m.Source,
		Status:       partner.LeadStatus(m.Status),
	}
}

// LeadModelFromDomain builds the model from the domain entity
func LeadModelFromDomain(l *partner.Lead) *LeadModel {
	m := &LeadModel{
		Name:   l.Name,
		Phone:  l.Phone,
		Source: l.Source,
		Status: string(l.Status),
	}
	m.TenantModel.FromDomain(l.TenantEntity)
	return m
}

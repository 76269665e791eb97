package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// LeadStatus is the pipeline state of a sales lead
type LeadStatus string

// Lead statuses
const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead is a tenant-owned sales lead
type Lead struct {
	shared.TenantEntity
	Name   string     `json:"name"`
	Phone  string     `json:"phone"`
	Source string     `json:"source"`
	Status LeadStatus `json:"status"`
}

// LeadPayload is the creation payload for a lead
type LeadPayload struct {
	TenantID uuid.UUID
	Name     string
	Phone    string
	Source   string
	Status   LeadStatus
}

// LeadUpdate is a partial update; nil fields are left unchanged
type LeadUpdate struct {
	Name   *string
	Phone  *string
	Source *string
	Status *LeadStatus
}

// LeadStore is the storage contract for leads
type LeadStore interface {
	GetLead(ctx context.Context, tenantID, id uuid.UUID) (*Lead, error)
	ListLeadsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lead, error)
	CreateLead(ctx context.Context, payload LeadPayload) (*Lead, error)
	UpdateLead(ctx context.Context, tenantID, id uuid.UUID, update LeadUpdate) (*Lead, error)
	DeleteLead(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// Category is shared reference data. Global categories are owned by the
// platform and visible to every tenant; tenant-authored categories carry the
// authoring tenant and are visible only to it.
type Category struct {
	shared.BaseEntity
	Name      string     `json:"name"`
	IsGlobal  bool       `json:"is_global"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
}

// CategoryPayload is the creation payload for a category. CreatedBy must be
// set when IsGlobal is false.
type CategoryPayload struct {
	Name      string
	IsGlobal  bool
	CreatedBy *uuid.UUID
}

// CategoryStore is the storage contract for categories
type CategoryStore interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	// ListCategoriesForTenant returns global categories plus the tenant's own
	ListCategoriesForTenant(ctx context.Context, tenantID uuid.UUID) ([]Category, error)
	CreateCategory(ctx context.Context, payload CategoryPayload) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)
}

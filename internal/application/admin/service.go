// Package admin holds the cross-tenant aggregation service used by platform
// operators. It is the only code path that reads more than one tenant's
// data, and it does so by iterating an explicit tenant allow-list through
// the ordinary tenant-scoped store operations; there is no "all tenants"
// query anywhere.
package admin

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/storage"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

// fetchPageSize is the page size used when draining one tenant's leads.
// It must stay within the store contract's page-size bounds.
const fetchPageSize = 200

// LeadQuery is the tagged filter for cross-tenant lead aggregation. An
// empty TenantIDs list yields an empty result, never all tenants.
type LeadQuery struct {
	TenantIDs []uuid.UUID `json:"tenant_ids" binding:"required"`
	Status    string      `json:"status,omitempty"`
	Source    string      `json:"source,omitempty"`
	Search    string      `json:"search,omitempty"`
	SortBy    string      `json:"sort_by,omitempty"`
	SortDir   string      `json:"sort_dir,omitempty"`
	Page      int         `json:"page,omitempty"`
	PageSize  int         `json:"page_size,omitempty"`
}

// leadSortFields is the allow-list for LeadQuery.SortBy
var leadSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"source":     true,
}

// TenantSummary is one tenant's row in the platform overview
type TenantSummary struct {
	TenantID      uuid.UUID       `json:"tenant_id"`
	CustomerCount int64           `json:"customer_count"`
	LedgerOut     decimal.Decimal `json:"ledger_out"`
}

// Service aggregates data across tenants for the admin role
type Service struct {
	store storage.Store
}

// NewService creates the admin aggregation service
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// requireAdmin rejects callers whose security context does not carry the
// admin role
func requireAdmin(ctx context.Context) error {
	sc, ok := tenant.FromContext(ctx)
	if !ok || !sc.IsAdmin() {
		return shared.ErrForbidden
	}
	return nil
}

// AggregateLeads collects leads from every allow-listed tenant, then
// filters, sorts and paginates in memory. The total reflects all matches
// before the page window is applied.
func (s *Service) AggregateLeads(ctx context.Context, q LeadQuery) (shared.Paginated[partner.Lead], error) {
	var empty shared.Paginated[partner.Lead]
	if err := requireAdmin(ctx); err != nil {
		return empty, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	if len(q.TenantIDs) == 0 {
		return shared.NewPaginated([]partner.Lead{}, 0, page, pageSize), nil
	}

	fetch := shared.DefaultFilter()
	fetch.PageSize = fetchPageSize
	if q.Status != "" {
		fetch.Filters["status"] = q.Status
	}

	// Each tenant is drained page by page until a short page, so the total
	// reflects every matching row, not just the first fetch.
	matched := make([]partner.Lead, 0)
	for _, tenantID := range q.TenantIDs {
		for fetchPage := 1; ; fetchPage++ {
			fetch.Page = fetchPage
			leads, err := s.store.ListLeadsByTenant(ctx, tenantID, fetch)
			if err != nil {
				return empty, err
			}
			for _, l := range leads {
				if q.Source != "" && l.Source != q.Source {
					continue
				}
				if !matchesLead(l, q.Search) {
					continue
				}
				matched = append(matched, l)
			}
			if len(leads) < fetchPageSize {
				break
			}
		}
	}

	sortLeads(matched, q.SortBy, q.SortDir)

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return shared.NewPaginated(matched[start:end], total, page, pageSize), nil
}

// Overview returns per-tenant headline numbers for the allow-listed tenants
func (s *Service) Overview(ctx context.Context, tenantIDs []uuid.UUID) ([]TenantSummary, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	out := make([]TenantSummary, 0, len(tenantIDs))
	for _, tenantID := range tenantIDs {
		count, err := s.store.CountCustomersByTenant(ctx, tenantID, shared.DefaultFilter())
		if err != nil {
			return nil, err
		}
		spent, err := s.store.SumLedgerByType(ctx, tenantID, finance.LedgerOut)
		if err != nil {
			return nil, err
		}
		out = append(out, TenantSummary{
			TenantID:      tenantID,
			CustomerCount: count,
			LedgerOut:     spent,
		})
	}
	return out, nil
}

func matchesLead(l partner.Lead, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(l.Name), search) ||
		strings.Contains(strings.ToLower(l.Phone), search) ||
		strings.Contains(strings.ToLower(l.Source), search)
}

// sortLeads orders in memory by an allow-listed field; unknown fields fall
// back to created_at
func sortLeads(leads []partner.Lead, sortBy, sortDir string) {
	if !leadSortFields[sortBy] {
		sortBy = "created_at"
	}
	asc := strings.EqualFold(sortDir, "asc")

	less := func(i, j int) bool {
		a, b := leads[i], leads[j]
		switch sortBy {
		case "name":
			return a.Name < b.Name
		case "status":
			return a.Status < b.Status
		case "source":
			return a.Source < b.Source
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	if asc {
		sort.SliceStable(leads, less)
	} else {
		sort.SliceStable(leads, func(i, j int) bool { return less(j, i) })
	}
}

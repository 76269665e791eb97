package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorhub/backend/internal/domain/finance"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/memstore"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

func adminCtx() context.Context {
	return tenant.WithSecurityContext(context.Background(), tenant.AdminContext("ops-1"))
}

func seedLeads(t *testing.T, s *memstore.MemStore, tenantID uuid.UUID, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := s.CreateLead(context.Background(), partner.LeadPayload{
			TenantID: tenantID,
			Name:     name,
			Source:   "referral",
		})
		require.NoError(t, err)
	}
}

func TestAggregateLeads_NonAdminForbidden(t *testing.T) {
	svc := NewService(memstore.New())

	ctx := tenant.WithSecurityContext(context.Background(), tenant.TenantContext(uuid.New(), "user-1"))
	_, err := svc.AggregateLeads(ctx, LeadQuery{TenantIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.AggregateLeads(context.Background(), LeadQuery{TenantIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestAggregateLeads_EmptyAllowListYieldsEmptyResult(t *testing.T) {
	s := memstore.New()
	seedLeads(t, s, uuid.New(), "someone")
	svc := NewService(s)

	// No allow-list never means "all tenants".
	result, err := svc.AggregateLeads(adminCtx(), LeadQuery{})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Total)
}

func TestAggregateLeads_OnlyAllowListedTenants(t *testing.T) {
	s := memstore.New()
	tenantA := uuid.New()
	tenantB := uuid.New()
	tenantC := uuid.New()
	seedLeads(t, s, tenantA, "alpha")
	seedLeads(t, s, tenantB, "beta")
	seedLeads(t, s, tenantC, "gamma")
	svc := NewService(s)

	result, err := svc.AggregateLeads(adminCtx(), LeadQuery{TenantIDs: []uuid.UUID{tenantA, tenantB}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	for _, l := range result.Items {
		assert.NotEqual(t, tenantC, l.TenantID)
	}
}

func TestAggregateLeads_FilterSortPaginate(t *testing.T) {
	s := memstore.New()
	tenantID := uuid.New()
	seedLeads(t, s, tenantID, "carol", "alice", "bob", "dave", "erin")
	svc := NewService(s)

	result, err := svc.AggregateLeads(adminCtx(), LeadQuery{
		TenantIDs: []uuid.UUID{tenantID},
		SortBy:    "name",
		SortDir:   "asc",
		Page:      1,
		PageSize:  2,
	})
	require.NoError(t, err)

	// Total reflects all matches, not the page window.
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "alice", result.Items[0].Name)
	assert.Equal(t, "bob", result.Items[1].Name)
}

func TestAggregateLeads_SearchAndStatus(t *testing.T) {
	s := memstore.New()
	tenantID := uuid.New()
	ctx := context.Background()
	_, err := s.CreateLead(ctx, partner.LeadPayload{TenantID: tenantID, Name: "warm lead", Status: partner.LeadStatusContacted})
	require.NoError(t, err)
	_, err = s.CreateLead(ctx, partner.LeadPayload{TenantID: tenantID, Name: "cold lead", Status: partner.LeadStatusNew})
	require.NoError(t, err)
	svc := NewService(s)

	result, err := svc.AggregateLeads(adminCtx(), LeadQuery{
		TenantIDs: []uuid.UUID{tenantID},
		Status:    string(partner.LeadStatusContacted),
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "warm lead", result.Items[0].Name)

	result, err = svc.AggregateLeads(adminCtx(), LeadQuery{
		TenantIDs: []uuid.UUID{tenantID},
		Search:    "cold",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "cold lead", result.Items[0].Name)
}

func TestAggregateLeads_TotalCountsPastOneFetchPage(t *testing.T) {
	s := memstore.New()
	tenantID := uuid.New()
	ctx := context.Background()

	// More leads than one store page (200), so the aggregation has to keep
	// fetching; the total must count every match, not the first page.
	const leadCount = 250
	for i := 0; i < leadCount; i++ {
		_, err := s.CreateLead(ctx, partner.LeadPayload{
			TenantID: tenantID,
			Name:     fmt.Sprintf("lead-%03d", i),
		})
		require.NoError(t, err)
	}
	svc := NewService(s)

	result, err := svc.AggregateLeads(adminCtx(), LeadQuery{
		TenantIDs: []uuid.UUID{tenantID},
		PageSize:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(leadCount), result.Total)
	assert.Len(t, result.Items, 10)
}

func TestAggregateLeads_UnknownSortFieldFallsBack(t *testing.T) {
	s := memstore.New()
	tenantID := uuid.New()
	seedLeads(t, s, tenantID, "a", "b")
	svc := NewService(s)

	// A sort field outside the allow-list must not panic or leak into the
	// ordering contract; it falls back to created_at.
	result, err := svc.AggregateLeads(adminCtx(), LeadQuery{
		TenantIDs: []uuid.UUID{tenantID},
		SortBy:    "tenant_id; DROP TABLE leads",
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
}

func TestOverview(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := s.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantID, Name: "Acme"})
	require.NoError(t, err)
	_, err = s.CreateExpense(ctx, finance.ExpensePayload{
		TenantID: tenantID,
		Category: "rent",
		Amount:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	svc := NewService(s)

	summaries, err := svc.Overview(adminCtx(), []uuid.UUID{tenantID})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, tenantID, summaries[0].TenantID)
	assert.Equal(t, int64(1), summaries[0].CustomerCount)
	assert.True(t, summaries[0].LedgerOut.Equal(decimal.NewFromInt(500)), "got %s", summaries[0].LedgerOut)
}

func TestOverview_NonAdminForbidden(t *testing.T) {
	svc := NewService(memstore.New())
	_, err := svc.Overview(context.Background(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

package hybrid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/memstore"
)

// Two memstores stand in for the ephemeral and relational sides; the router
// only cares that both satisfy storage.Store.
func newTestRouter(t *testing.T, relationalEntities ...string) (*Router, *memstore.MemStore, *memstore.MemStore) {
	t.Helper()
	ephemeral := memstore.New()
	relational := memstore.New()
	r, err := New(ephemeral, relational, relationalEntities)
	require.NoError(t, err)
	return r, ephemeral, relational
}

func TestNew_RejectsSplitCoupledPairs(t *testing.T) {
	tests := []struct {
		name     string
		entities []string
	}{
		{"payments without suppliers", []string{EntitySupplierPayments, EntityExpenses}},
		{"suppliers without payments", []string{EntitySuppliers}},
		{"expenses split from payments", []string{EntityExpenses}},
		{"movements without products", []string{EntityStockMovements}},
		{"products without movements", []string{EntityProducts}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(memstore.New(), memstore.New(), tt.entities)
			assert.Error(t, err)
		})
	}
}

func TestNew_AcceptsCoLocatedGroups(t *testing.T) {
	_, err := New(memstore.New(), memstore.New(), []string{
		EntitySuppliers, EntitySupplierPayments, EntityExpenses,
		EntityProducts, EntityStockMovements,
	})
	assert.NoError(t, err)
}

func TestRouter_EntityOwnershipIsExclusive(t *testing.T) {
	r, ephemeral, relational := newTestRouter(t, EntityCustomers)
	ctx := context.Background()
	tenantID := uuid.New()

	c, err := r.CreateCustomer(ctx, partner.CustomerPayload{TenantID: tenantID, Name: "Acme"})
	require.NoError(t, err)

	// The write landed on the relational side only.
	_, err = relational.GetCustomer(ctx, tenantID, c.ID)
	assert.NoError(t, err)
	_, err = ephemeral.GetCustomer(ctx, tenantID, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Reads resolve through the same owner.
	got, err := r.GetCustomer(ctx, tenantID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestRouter_UnlistedEntityStaysEphemeral(t *testing.T) {
	r, ephemeral, relational := newTestRouter(t, EntityCustomers)
	ctx := context.Background()
	tenantID := uuid.New()

	l, err := r.CreateLead(ctx, partner.LeadPayload{TenantID: tenantID, Name: "Prospect"})
	require.NoError(t, err)

	_, err = ephemeral.GetLead(ctx, tenantID, l.ID)
	assert.NoError(t, err)
	_, err = relational.GetLead(ctx, tenantID, l.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRouter_ContractPassesThrough(t *testing.T) {
	r, _, _ := newTestRouter(t, EntityCustomers)
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := r.GetCustomer(ctx, tenantID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	deleted, err := r.DeleteCustomer(ctx, tenantID, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRelationalEntities(t *testing.T) {
	r, _, _ := newTestRouter(t, EntityCustomers, EntityLeads)
	assert.ElementsMatch(t, []string{EntityCustomers, EntityLeads}, r.RelationalEntities())
}

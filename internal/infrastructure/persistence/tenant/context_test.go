package tenant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantContext(t *testing.T) {
	tenantID := uuid.New()
	sc := TenantContext(tenantID, "user-1")

	assert.Equal(t, tenantID.String(), sc.TenantID)
	assert.Equal(t, RoleTenant, sc.Role)
	assert.Equal(t, "user-1", sc.ActorID)
	assert.True(t, sc.Valid())
	assert.False(t, sc.IsAdmin())
}

func TestAdminContext(t *testing.T) {
	sc := AdminContext("ops-1")

	assert.Empty(t, sc.TenantID)
	assert.True(t, sc.Valid())
	assert.True(t, sc.IsAdmin())
}

func TestValid_TenantRoleRequiresTenantID(t *testing.T) {
	sc := SecurityContext{Role: RoleTenant}
	assert.False(t, sc.Valid())

	sc.TenantID = uuid.NewString()
	assert.True(t, sc.Valid())
}

func TestValid_UnknownRole(t *testing.T) {
	sc := SecurityContext{TenantID: uuid.NewString(), Role: "superuser"}
	assert.False(t, sc.Valid())
}

func TestNormalized_EmptyRoleDowngradesToTenant(t *testing.T) {
	sc := SecurityContext{TenantID: uuid.NewString()}
	assert.Equal(t, RoleTenant, sc.normalized().Role)

	admin := AdminContext("ops")
	assert.Equal(t, RoleAdmin, admin.normalized().Role)
}

func TestFromContext_RoundTrip(t *testing.T) {
	sc := TenantContext(uuid.New(), "user-1")
	ctx := WithSecurityContext(context.Background(), sc)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, sc, got)
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestScopeFromContext_UsesExplicitTenant(t *testing.T) {
	authTenant := uuid.New()
	targetTenant := uuid.New()
	ctx := WithSecurityContext(context.Background(), TenantContext(authTenant, "user-1"))

	sc := ScopeFromContext(ctx, targetTenant)

	// The store method's explicit tenant argument wins; role and actor
	// carry over from the authenticated context.
	assert.Equal(t, targetTenant.String(), sc.TenantID)
	assert.Equal(t, RoleTenant, sc.Role)
	assert.Equal(t, "user-1", sc.ActorID)
}

func TestScopeFromContext_AdminKeepsRole(t *testing.T) {
	tenantID := uuid.New()
	ctx := WithSecurityContext(context.Background(), AdminContext("ops-1"))

	sc := ScopeFromContext(ctx, tenantID)

	assert.Equal(t, tenantID.String(), sc.TenantID)
	assert.Equal(t, RoleAdmin, sc.Role)
}

func TestScopeFromContext_BareContext(t *testing.T) {
	tenantID := uuid.New()
	sc := ScopeFromContext(context.Background(), tenantID)

	assert.Equal(t, tenantID.String(), sc.TenantID)
	assert.Equal(t, RoleTenant, sc.Role)
	assert.Empty(t, sc.ActorID)
}

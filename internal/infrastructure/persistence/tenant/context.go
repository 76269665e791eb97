// Package tenant provides the security-context-scoped execution unit for the
// relational store.
//
// Every tenant-scoped database call runs through Runner.WithContext, which
// pins one pooled connection, stamps it with the caller's tenant/role/actor
// via transaction-local session variables, runs the unit of work inside a
// transaction, and unconditionally clears the variables before the
// connection returns to the pool. Row-level-security policies in the schema
// read these variables to decide which rows a statement may touch, so a
// stamp left on a pooled connection is a cross-tenant data leak.
package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Role describes who is performing a unit of work
type Role string

// Roles
const (
	// RoleTenant scopes all access to a single vendor's rows
	RoleTenant Role = "tenant"
	// RoleAdmin is the cross-tenant platform role
	RoleAdmin Role = "admin"
)

// Session variable names read by the row-level-security policies. This is a
// contract with the schema (see migrations) and is not renegotiable per call.
const (
	SessionKeyTenantID = "app.tenant_id"
	SessionKeyRole     = "app.role"
	SessionKeyActorID  = "app.actor_id"
)

// SecurityContext is the tenant/role/actor triple attached to one unit of
// work. It is created per call and never persisted.
type SecurityContext struct {
	// TenantID is empty only for admin-role contexts
	TenantID string
	Role     Role
	// ActorID identifies the acting user for audit trails; may be empty
	ActorID string
}

// TenantContext returns a tenant-role context for the given tenant
func TenantContext(tenantID uuid.UUID, actorID string) SecurityContext {
	return SecurityContext{
		TenantID: tenantID.String(),
		Role:     RoleTenant,
		ActorID:  actorID,
	}
}

// AdminContext returns a cross-tenant admin-role context
func AdminContext(actorID string) SecurityContext {
	return SecurityContext{
		Role:    RoleAdmin,
		ActorID: actorID,
	}
}

// Valid reports whether the context is well formed: a tenant-role context
// needs a tenant ID. An invalid context is still stamped as-is, so at the
// database layer it resolves to "no tenant" and matches zero rows; it can
// never widen to all tenants.
func (sc SecurityContext) Valid() bool {
	if sc.Role == RoleTenant {
		return sc.TenantID != ""
	}
	return sc.Role == RoleAdmin
}

// IsAdmin reports whether the context carries the admin role
func (sc SecurityContext) IsAdmin() bool {
	return sc.Role == RoleAdmin
}

// normalized fills in the default role. An empty role is the tenant role:
// downgrading is always the safe direction.
func (sc SecurityContext) normalized() SecurityContext {
	if sc.Role == "" {
		sc.Role = RoleTenant
	}
	return sc
}

type contextKey struct{}

// WithSecurityContext attaches a security context to the request context.
// The HTTP middleware installs it after authenticating the caller.
func WithSecurityContext(ctx context.Context, sc SecurityContext) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

// FromContext retrieves the security context from the request context
func FromContext(ctx context.Context) (SecurityContext, bool) {
	sc, ok := ctx.Value(contextKey{}).(SecurityContext)
	return sc, ok
}

// ScopeFromContext builds the security context for a store call: the role and
// actor come from the authenticated request context, the tenant from the
// explicit argument the store method received. When nothing is attached to
// the context the call is treated as a plain tenant-role call.
func ScopeFromContext(ctx context.Context, tenantID uuid.UUID) SecurityContext {
	if sc, ok := FromContext(ctx); ok {
		sc.TenantID = tenantID.String()
		return sc.normalized()
	}
	return TenantContext(tenantID, "")
}

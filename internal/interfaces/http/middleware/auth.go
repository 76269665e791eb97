package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

// Claims are the token claims this service understands. The tenant id is
// empty on admin tokens.
type Claims struct {
	TenantID string `json:"tenant_id,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token and installs the derived security context
// on the request context. Every route behind this middleware can resolve
// tenant.FromContext.
func Auth(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		sc := tenant.SecurityContext{
			TenantID: claims.TenantID,
			Role:     tenant.Role(claims.Role),
			ActorID:  claims.Subject,
		}
		if !sc.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token carries no usable scope"})
			return
		}

		ctx := tenant.WithSecurityContext(c.Request.Context(), sc)
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), sc.TenantID)
		ctx, _ = logger.WithActorID(ctx, logger.FromContext(ctx), sc.ActorID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminRequired rejects requests whose security context is not admin-role.
// It must run after Auth.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := tenant.FromContext(c.Request.Context())
		if !ok || !sc.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

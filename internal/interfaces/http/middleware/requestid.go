// Package middleware contains the gin middleware for request identity,
// authentication and role guarding.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/infrastructure/logger"
)

// RequestIDHeader is the header a caller may use to propagate its own id
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, echoes it in the response and
// installs it on both the gin and the request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		ctx, _ := logger.WithRequestID(c.Request.Context(), logger.FromContext(c.Request.Context()), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

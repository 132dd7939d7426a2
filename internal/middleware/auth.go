package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/serializer"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

const userContextKey = "user"

// SessionAuth authenticates requests with a bearer session token. The
// resolved user lands in the gin context under "user", and on the current
// span for telemetry filtering.
func SessionAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		u, err := auth.Verify(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("user_id", u.ID))
		}

		c.Set(userContextKey, u)
		c.Next()
	}
}

// RequireAdmin aborts unless SessionAuth resolved an admin user.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || u.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				serializer.Err(http.StatusForbidden, "admin access required", nil))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil outside SessionAuth.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

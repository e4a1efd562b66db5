package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/enuri14/EcoTour-Enuri/pkg/response"
)

// AdminSecretHeader is the header carrying the catalog admin credential.
const AdminSecretHeader = "X-Admin-Secret"

// AdminConfig holds configuration for the admin gate.
type AdminConfig struct {
	Secret string
}

// RequireAdmin gates catalog administration behind a static shared secret.
// An empty configured secret disables admin routes entirely rather than
// leaving them open.
func RequireAdmin(cfg *AdminConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg == nil || cfg.Secret == "" {
			response.Forbidden(c, "Admin access is not configured")
			c.Abort()
			return
		}
		if c.GetHeader(AdminSecretHeader) != cfg.Secret {
			response.Forbidden(c, "Admin only")
			c.Abort()
			return
		}
		c.Next()
	}
}

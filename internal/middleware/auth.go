package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slotwise/booking-api/internal/handler"
	"github.com/slotwise/booking-api/internal/service/auth"
	"github.com/slotwise/booking-api/internal/service/provider"
)

const (
	ContextAccountID  = "accountID"
	ContextProviderID = "providerID"
)

type AuthMiddleware struct {
	authService     auth.Servicer
	providerService provider.Servicer
}

func NewAuthMiddleware(authService auth.Servicer, providerService provider.Servicer) *AuthMiddleware {
	return &AuthMiddleware{
		authService:     authService,
		providerService: providerService,
	}
}

// Authenticate verifies the bearer token and sets the account in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextAccountID, claims.AccountID.String())
		c.Next()
	}
}

// RequireProvider guards provider-only routes with an explicit capability
// lookup: the account must have a provider profile. The resolved provider
// id is set in context for the handler.
func (m *AuthMiddleware) RequireProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := uuid.Parse(c.GetString(ContextAccountID))
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid account ID"))
			c.Abort()
			return
		}

		prov, err := m.providerService.ProviderForAccount(c.Request.Context(), accountID)
		if err != nil {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("provider profile required"))
			c.Abort()
			return
		}

		c.Set(ContextProviderID, prov.ID.String())
		c.Next()
	}
}

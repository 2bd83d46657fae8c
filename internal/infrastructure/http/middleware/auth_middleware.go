package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/insightlab/meeting-insights/pkg/jwt"
)

// Context keys set by the auth middleware
const (
	ClaimsContextKey = "claims"
	ClientContextKey = "client_id"
)

// AuthMiddleware validates bearer tokens on protected routes
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	disabled   bool
}

// NewAuthMiddleware creates the auth middleware. When disabled is true every
// request passes through with admin claims, for local development.
func NewAuthMiddleware(jwtManager *jwt.Manager, disabled bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		disabled:   disabled,
	}
}

// Authenticate validates the JWT and sets "claims" and "client_id" into the
// Echo context
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.disabled {
			c.Set(ClaimsContextKey, &jwt.Claims{Name: "dev", Role: jwt.RoleAdmin})
			return next(c)
		}

		token := extractToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
		}

		claims, err := m.jwtManager.ValidateAccessToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set(ClaimsContextKey, claims)
		c.Set(ClientContextKey, claims.ClientID)
		return next(c)
	}
}

// RequireRole checks that the authenticated client carries one of the roles.
// Admin always passes.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := GetClaims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Client not authenticated")
			}
			if claims.Role == jwt.RoleAdmin {
				return next(c)
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// GetClaims retrieves the validated claims from the Echo context
func GetClaims(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
	return claims, ok
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/callcaps/callcaps-server/pkg/jwt"
)

// Context keys set by EchoAuth
const (
	ClaimsContextKey         = "claims"
	UserIDContextKey         = "user_id"
	OrganizationIDContextKey = "organization_id"
	MemberIDContextKey       = "member_id"
)

// EchoAuth returns an Echo middleware that validates the bearer JWT and sets
// the claims plus user/organization/member ids into the Echo context.
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(ClaimsContextKey, claims)
			c.Set(UserIDContextKey, claims.UserID)
			c.Set(OrganizationIDContextKey, claims.OrganizationID)
			c.Set(MemberIDContextKey, claims.MemberID)

			return next(c)
		}
	}
}

// GetClaims retrieves the validated claims from the Echo context
func GetClaims(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
	return claims, ok
}

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

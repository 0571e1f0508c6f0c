// Package middleware holds the echo middleware shared by the route groups:
// authentication, role gating, response caching, rate limiting and request
// logging.
package middleware

import "github.com/labstack/echo/v4"

// Context keys set by JWTAuth.
const (
	KeyUserID = "user_id"
	KeyRole   = "role"
)

// UserID returns the authenticated user's id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	s, _ := c.Get(KeyUserID).(string)
	return s
}

// Role returns the authenticated user's role, or "".
func Role(c echo.Context) string {
	s, _ := c.Get(KeyRole).(string)
	return s
}

func userOr(c echo.Context, anon string) string {
	if uid := UserID(c); uid != "" {
		return uid
	}
	return anon
}

package auth

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// CurrentClaims returns the validated claims placed on the context by the
// JWT middleware, or false for unauthenticated requests.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}

// CurrentUserID returns the authenticated caller's user ID.
func CurrentUserID(c echo.Context) (uint, bool) {
	claims, ok := CurrentClaims(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

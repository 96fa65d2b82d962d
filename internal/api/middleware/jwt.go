package middleware

import (
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ExtractUserIDFromJWT copies the id and is_admin claims from the verified
// token into the request context. JSON numbers decode as float64, so the id
// claim arrives that way.
func ExtractUserIDFromJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok || token == nil {
				return next(c)
			}

			claims, ok := token.Claims.(jwtv5.MapClaims)
			if !ok {
				return next(c)
			}

			rawID, ok := claims["id"].(float64)
			if !ok {
				return next(c)
			}

			ctx := ContextWithUserID(c.Request().Context(), int64(rawID))
			if admin, ok := claims["is_admin"].(bool); ok {
				ctx = contextWithIsAdmin(ctx, admin)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

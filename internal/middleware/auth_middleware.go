package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"elaraMarket/pkg/logger"
)

// Claims carried by the admin API tokens.
type Claims struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// AuthMiddleware validates the Bearer token and stashes the caller's identity
// on the request context.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "Missing authorization header",
				})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "Invalid authorization format",
				})
			}

			claims, err := parseToken(tokenParts[1], secret)
			if err != nil {
				logger.Warn("rejected token", "error", err)
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "Invalid token",
				})
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || expAt == nil {
				return c.JSON(http.StatusForbidden, echo.Map{
					"message": "Status Forbidden",
				})
			}
			if time.Now().After(expAt.Time) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"message": "Token expired",
				})
			}

			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || strings.ToUpper(role) != "ADMIN" {
				return c.JSON(http.StatusForbidden, echo.Map{
					"message": "Admin access required",
				})
			}

			return next(c)
		}
	}
}

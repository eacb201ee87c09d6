package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aiMarketingMsg/pkg/logger"
	"aiMarketingMsg/pkg/utils"

	jsonres "aiMarketingMsg/pkg/response"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks that a session token is still live in Redis.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// AuthMiddleware validates the bearer JWT without consulting Redis.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, errRes := parseBearerToken(c)
			if errRes != nil {
				return errRes
			}

			c.Set("user_id", claims.userID)
			c.Set("role", claims.role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AuthMiddlewareWithRedis validates the bearer JWT and requires the session
// to still exist in Redis, so a logout revokes access immediately.
func AuthMiddlewareWithRedis(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, errRes := parseBearerToken(c)
			if errRes != nil {
				return errRes
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			userID, err := tokenValidator.ValidateToken(ctx, tokenString)
			if err != nil {
				logger.Error("token not found in redis", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "token expired or invalid", nil,
				))
			}

			if userID != strconv.FormatUint(uint64(claims.userID), 10) {
				logger.Error("user id mismatch between jwt and redis")
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "invalid token", nil,
				))
			}

			c.Set("user_id", claims.userID)
			c.Set("role", claims.role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AdminOnly requires the role claim set by the auth middleware to be admin.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !strings.EqualFold(role, "admin") {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

type tokenClaims struct {
	userID uint
	role   string
}

func parseBearerToken(c echo.Context) (tokenClaims, string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return tokenClaims{}, "", c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "missing authorization header", nil,
		))
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return tokenClaims{}, "", c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "invalid authorization format", nil,
		))
	}

	tokenString := tokenParts[1]

	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		logger.Error("failed to parse jwt", err)
		return tokenClaims{}, "", c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "invalid token", nil,
		))
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || time.Now().After(expAt.Time) {
		return tokenClaims{}, "", c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "token expired", nil,
		))
	}

	userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		logger.Error("invalid user id in token", err)
		return tokenClaims{}, "", c.JSON(http.StatusForbidden, jsonres.Error(
			"FORBIDDEN", "invalid user id in token", nil,
		))
	}

	return tokenClaims{userID: uint(userIDUint), role: claims.Role}, tokenString, nil
}

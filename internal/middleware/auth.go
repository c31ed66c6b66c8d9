package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "userId"
	ctxRole   = "role"
)

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// RequireAuth verifies the bearer token and stores the caller's id and role
// on the request context.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		sub, _ := claims["sub"].(string)
		uid, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || uid == 0 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		role, _ := claims["role"].(string)
		if role == "" {
			role = string(model.RoleUser)
		}
		c.Set(ctxUserID, uid)
		c.Set(ctxRole, model.Role(role))
		return next(c)
	}
}

// OptionalAuth populates the caller's id and role when a valid bearer token
// is present, and lets anonymous requests through untouched.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return next(c)
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			return next(c)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return next(c)
		}
		sub, _ := claims["sub"].(string)
		uid, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || uid == 0 {
			return next(c)
		}
		role, _ := claims["role"].(string)
		if role == "" {
			role = string(model.RoleUser)
		}
		c.Set(ctxUserID, uid)
		c.Set(ctxRole, model.Role(role))
		return next(c)
	}
}

// RequireRole restricts a route to the given roles. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := CallerRole(c)
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

// CallerID returns the authenticated user id, or 0 when anonymous.
func CallerID(c echo.Context) uint64 {
	uid, _ := c.Get(ctxUserID).(uint64)
	return uid
}

func CallerRole(c echo.Context) model.Role {
	role, _ := c.Get(ctxRole).(model.Role)
	if role == "" {
		return model.RoleUser
	}
	return role
}

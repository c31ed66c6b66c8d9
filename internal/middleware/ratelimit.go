package middleware

import (
	"net/http"
	"time"

	"github.com/bazary/bazary-backend/internal/logger"
	"github.com/bazary/bazary-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ActionRateLimit throttles one named write action per user per window,
// backed by the shared redis counter store so the limit holds across
// multiple stateless instances. Must run after RequireAuth.
func ActionRateLimit(rdb *redis.Client, action string, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := CallerID(c)
			if uid == 0 {
				return next(c)
			}
			ok, err := service.CheckAndSetRateLimit(c.Request().Context(), rdb, uid, action, window)
			if err != nil {
				// The limiter is advisory; a redis outage must not take
				// write traffic down with it.
				logger.L().Warn("rate limit check failed", zap.String("action", action), zap.Error(err))
				return next(c)
			}
			if !ok {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "too many requests, slow down",
				})
			}
			return next(c)
		}
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/molticket/webgate/internal/config"
)

// RateLimitPosts throttles mutating requests per session and path with a
// fixed window in Redis. GET page loads are never limited. When Redis is
// down the limiter fails open.
func RateLimitPosts(cfg config.RateLimit, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	window := redis.NewScript(`
		local n = redis.call('INCR', KEYS[1])
		if n == 1 then
			redis.call('PEXPIRE', KEYS[1], ARGV[1])
		end
		return n
	`)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
				return next(c)
			}
			key := fmt.Sprintf("ratelimit:%s:%s", CurrentSession(c).ID, c.Path())
			n, err := window.Run(c.Request().Context(), rdb, []string{key},
				cfg.Window.Milliseconds()).Int64()
			if err != nil {
				return next(c)
			}
			if n > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After",
					fmt.Sprintf("%d", int(cfg.Window/time.Second)))
				return c.String(http.StatusTooManyRequests, "too many requests, slow down")
			}
			return next(c)
		}
	}
}

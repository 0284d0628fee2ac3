package middleware

import (
	"net/http"
	"time"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Security adds the fixed set of security headers to every response.
func Security() echo.MiddlewareFunc {
	headers := utils.GenerateSecurityHeaders()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for name, value := range headers {
				c.Response().Header().Set(name, value)
			}
			return next(c)
		}
	}
}

// RateLimit adds rate limiting
func RateLimit(cfg *config.Config) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
		rate.Limit(float64(cfg.Security.RateLimitRequests) / cfg.Security.RateLimitWindow.Seconds()),
	))
}

// APIKeyAuth validates API keys
func APIKeyAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Extract API key from header
			apiKey := c.Request().Header.Get("X-API-Key")
			if apiKey == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "API key is required")
			}

			// Store API key in context for handler validation
			c.Set("api_key", apiKey)

			return next(c)
		}
	}
}

// CORS configures CORS
func CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-API-Key"},
		MaxAge:       int(12 * time.Hour / time.Second),
	})
}

// RequestID adds request ID to context
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestID()
}

// Logger configures structured logging
func Logger() echo.MiddlewareFunc {
	return middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `{"time":"${time_rfc3339}","id":"${id}","remote_ip":"${remote_ip}","host":"${host}","method":"${method}","uri":"${uri}","user_agent":"${user_agent}","status":${status},"error":"${error}","latency":${latency},"latency_human":"${latency_human}","bytes_in":${bytes_in},"bytes_out":${bytes_out}}` + "\n",
	})
}

// Recover recovers from panics
func Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

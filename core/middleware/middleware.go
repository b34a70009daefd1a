package middleware

import (
	"rehearsal-room-api/core/config"
	"rehearsal-room-api/core/constants"
	"rehearsal-room-api/core/utils"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type Middleware struct {
	cfg   *config.Config
	redis *redis.Client
}

// NewMiddleware builds the middleware set. redis may be nil, in which case
// rate limiting is disabled.
func NewMiddleware(cfg *config.Config, rdb *redis.Client) *Middleware {
	return &Middleware{cfg: cfg, redis: rdb}
}

// RequestID tags every request with a short id, echoed in the response
// header and available to handlers for log correlation.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(constants.HeaderRequestID)
			if id == "" {
				id = utils.NewRequestID()
			}
			c.Set(constants.ContextRequestID, id)
			c.Response().Header().Set(constants.HeaderRequestID, id)
			return next(c)
		}
	}
}

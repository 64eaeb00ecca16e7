package middleware

import (
	"time"

	applogger "FinDash/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDKey is the echo context key carrying the request id.
const RequestIDKey = "request_id"

// RequestLogging logs HTTP requests and tags each one with a request id.
// An incoming X-Request-ID header is reused when present.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(RequestIDKey, id)
			res.Header().Set(echo.HeaderXRequestID, id)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			if l != nil {
				l.Info("http request",
					applogger.String("request_id", id),
					applogger.String("method", req.Method),
					applogger.String("uri", req.RequestURI),
					applogger.String("remote", c.RealIP()),
					applogger.Int("status", res.Status),
					applogger.Duration("latency_ms", time.Since(start)),
				)
			}
			return nil
		}
	}
}

package middleware

import (
	"github.com/labstack/echo/v4"
)

// RequestObserver starts a timing span for one request and returns its completion callback.
type RequestObserver interface {
	RequestStarted() func(method, route string, status int)
}

// MetricsMiddleware records request counts, latencies and in-flight requests.
type MetricsMiddleware struct {
	observer RequestObserver
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(observer RequestObserver) *MetricsMiddleware {
	return &MetricsMiddleware{observer: observer}
}

// Handle must wrap LoggerMiddleware, which commits error responses, so the status it reads is final.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		done := m.observer.RequestStarted()
		err := next(c)

		// Route templates keep label cardinality bounded.
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		done(c.Request().Method, route, c.Response().Status)

		return err
	}
}

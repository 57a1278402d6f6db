package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyAccountID is the echo.Context key of the authenticated account id.
	KeyAccountID ContextKey = "account_id"

	// KeyRole is the echo.Context key of the authenticated account role.
	KeyRole ContextKey = "role"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// SetIdentity stores the caller resolved from the access token.
func SetIdentity(c echo.Context, accountID uuid.UUID, role string) {
	c.Set(string(KeyAccountID), accountID)
	c.Set(string(KeyRole), role)
}

// GetAccountID returns the authenticated account id, if any.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyAccountID)).(uuid.UUID)

	return id, ok && id != uuid.Nil
}

// GetRole returns the role claimed by the access token, if any.
func GetRole(c echo.Context) (string, bool) {
	role, ok := c.Get(string(KeyRole)).(string)

	return role, ok && role != ""
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

package middleware

import (
	"context"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type for values this package stores in a context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	sessionKey   = contextKey("session")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	session, ok := GetSessionFromContext(c)
	if !ok {
		return "", false
	}
	return session.UserID, true
}

// GetSessionFromContext retrieves the caller's session set by AuthMiddleware.
func GetSessionFromContext(c *gin.Context) (domain.Session, bool) {
	return SessionFromCtx(c.Request.Context())
}

// SessionFromCtx retrieves the session from a standard context.
func SessionFromCtx(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(domain.Session)
	if !ok || session.UserID == "" {
		return domain.Session{}, false
	}
	return session, true
}

// WithSession returns a copy of ctx carrying the session.
func WithSession(ctx context.Context, session domain.Session) context.Context {
	ctx = context.WithValue(ctx, userIDKey, session.UserID)
	return context.WithValue(ctx, sessionKey, session)
}

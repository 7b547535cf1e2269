package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// FeatureClaims lets a token switch the return side effects on or off for its session.
// Absent fields fall back to the server defaults.
type FeatureClaims struct {
	ReconcilePurchaseOrders *bool `json:"reconcilePurchaseOrders,omitempty"`
	ApplySupplierBalance    *bool `json:"applySupplierBalance,omitempty"`
}

// SessionClaims are the JWT claims accepted by AuthMiddleware.
type SessionClaims struct {
	jwt.RegisteredClaims
	Features *FeatureClaims `json:"features,omitempty"`
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens and stores the
// caller's session (user id plus feature flags) in the request context.
func AuthMiddleware(jwtSecret, issuer string, defaults domain.FeatureFlags) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg(),
	})}
	if issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		}, parserOpts...)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if !token.Valid || claims.Subject == "" {
			logger.Warn("User ID (subject) missing from token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		session := domain.Session{UserID: claims.Subject, Flags: claims.flags(defaults)}
		enrichedLogger := logger.With(slog.String("user_id", session.UserID))

		ctx := WithSession(c.Request.Context(), session)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}

func (c *SessionClaims) flags(defaults domain.FeatureFlags) domain.FeatureFlags {
	flags := defaults
	if c.Features == nil {
		return flags
	}
	if c.Features.ReconcilePurchaseOrders != nil {
		flags.ReconcilePurchaseOrders = *c.Features.ReconcilePurchaseOrders
	}
	if c.Features.ApplySupplierBalance != nil {
		flags.ApplySupplierBalance = *c.Features.ApplySupplierBalance
	}
	return flags
}

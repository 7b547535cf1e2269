package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/SscSPs/returns_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims middleware.SessionClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(issuer string, captured *domain.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret, issuer, domain.DefaultFeatureFlags()))
	r.GET("/whoami", func(c *gin.Context) {
		session, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		*captured = session
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_ValidTokenSetsSession(t *testing.T) {
	var session domain.Session
	r := newAuthRouter("", &session)

	off := false
	token := signToken(t, middleware.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Features: &middleware.FeatureClaims{ApplySupplierBalance: &off},
	})

	rec := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", session.UserID)
	assert.True(t, session.Flags.ReconcilePurchaseOrders, "unset flag keeps the default")
	assert.False(t, session.Flags.ApplySupplierBalance)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	var session domain.Session
	r := newAuthRouter("returns-app", &session)

	expired := signToken(t, middleware.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "returns-app",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}})
	wrongIssuer := signToken(t, middleware.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject: "user-1",
		Issuer:  "someone-else",
	}})
	noSubject := signToken(t, middleware.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer: "returns-app",
	}})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "expired", header: "Bearer " + expired},
		{name: "wrong issuer", header: "Bearer " + wrongIssuer},
		{name: "no subject", header: "Bearer " + noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotNil(t, middleware.GetLoggerFromCtx(req.Context()))
}

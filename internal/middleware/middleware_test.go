package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, claims middleware.Claims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": userID, "admin": middleware.IsAdmin(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := middleware.Claims{
		Role: middleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "engagement",
			Subject:   "e1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""
	wrongIssuer := valid
	wrongIssuer.Issuer = "elsewhere"

	testCases := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"valid", "Bearer " + signToken(t, valid, testSecret), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, valid, "other-secret"), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, expired, testSecret), http.StatusUnauthorized},
		{"no subject", "Bearer " + signToken(t, noSubject, testSecret), http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + signToken(t, wrongIssuer, testSecret), http.StatusUnauthorized},
	}

	r := newRouter(middleware.AuthMiddleware(testSecret, "engagement"))
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantCode == http.StatusOK {
				assert.JSONEq(t, `{"user":"e1","admin":true}`, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret, ""), middleware.RequireAdmin())
	claims := middleware.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "e1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims, testSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	claims.Role = middleware.RoleAdmin
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims, testSecret))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "GET_api_v1_admin_experts_expertID", middleware.EventName(http.MethodGet, "/api/v1/admin/experts/:expertID"))
	assert.Equal(t, "POST_api_v1_me_documents_links", middleware.EventName(http.MethodPost, "/api/v1/me/documents/links"))
	assert.Empty(t, middleware.EventName(http.MethodGet, ""))
}

func TestRateLimit_InMemoryStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter, err := middleware.NewRateLimiter("2-M", nil, logger)
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(limiter))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestViewerLocation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret, ""), middleware.ViewerLocation())
	r.GET("/tz", func(c *gin.Context) {
		name := ""
		if loc := middleware.ViewerLocationFromCtx(c.Request.Context()); loc != nil {
			name = loc.String()
		}
		c.String(http.StatusOK, name)
	})

	claims := func(tz string) middleware.Claims {
		return middleware.Claims{TimeZone: tz, RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "e1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
	}

	testCases := []struct {
		name     string
		tzClaim  string
		query    string
		wantCode int
		wantBody string
	}{
		{"no zone", "", "", http.StatusOK, ""},
		{"claim", "Asia/Tokyo", "", http.StatusOK, "Asia/Tokyo"},
		{"unknown claim ignored", "Mars/Olympus", "", http.StatusOK, ""},
		{"query overrides claim", "Asia/Tokyo", "?tz=America/New_York", http.StatusOK, "America/New_York"},
		{"unknown query rejected", "", "?tz=Mars/Olympus", http.StatusBadRequest, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tz"+tc.query, nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, claims(tc.tzClaim), testSecret))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantCode == http.StatusOK {
				assert.Equal(t, tc.wantBody, w.Body.String())
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rlaig/ezorder/internal/config"
	"github.com/rlaig/ezorder/internal/utils"
)

const secret = "test-secret"

func whoami(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": UserID(c), "role": Role(c)})
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAndRole(t *testing.T) {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(secret))
	g.GET("/me", whoami)
	g.GET("/admin", whoami, RequireRole("admin", "super_admin"))

	admin, err := utils.NewAccessToken(secret, "u1", "admin", 5)
	require.NoError(t, err)
	merchant, err := utils.NewAccessToken(secret, "u2", "merchant", 5)
	require.NoError(t, err)
	forged, err := utils.NewAccessToken("other-secret", "u1", "admin", 5)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
		body   string
	}{
		{"no token", "/v1/me", "", http.StatusUnauthorized, "missing bearer token"},
		{"garbage", "/v1/me", "not-a-jwt", http.StatusUnauthorized, "invalid token"},
		{"wrong secret", "/v1/me", forged.Token, http.StatusUnauthorized, "invalid token"},
		{"valid", "/v1/me", merchant.Token, http.StatusOK, `"user":"u2"`},
		{"role allowed", "/v1/admin", admin.Token, http.StatusOK, `"role":"admin"`},
		{"role denied", "/v1/admin", merchant.Token, http.StatusForbidden, "forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, http.MethodGet, tt.path, tt.token)
			require.Equal(t, tt.status, rec.Code)
			require.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") },
		NewRedisCache(config.CacheConfig{Enabled: true}, nil, zap.NewNop()),
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, zap.NewNop()))

	rec := serve(e, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pong", rec.Body.String())
	require.Empty(t, rec.Header().Get("X-Cache"))
}

func contextFor(e *echo.Echo, target, user string) echo.Context {
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
	c.SetPath("/v1/merchant/orders")
	if user != "" {
		c.Set(KeyUserID, user)
	}
	return c
}

func TestCacheKeys(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "ezorder:cache", KeyStrategy: "user_route_query"}

	a := cacheKeyFrom(cfg, contextFor(e, "/v1/merchant/orders?status=placed", "u1"))
	b := cacheKeyFrom(cfg, contextFor(e, "/v1/merchant/orders?status=placed", "u2"))
	a2 := cacheKeyFrom(cfg, contextFor(e, "/v1/merchant/orders?status=ready", "u1"))
	require.True(t, strings.HasPrefix(a, "ezorder:cache:u:u1:"))
	require.True(t, strings.HasPrefix(b, "ezorder:cache:u:u2:"))
	require.NotEqual(t, a, a2)
	require.Equal(t, a, cacheKeyFrom(cfg, contextFor(e, "/v1/merchant/orders?status=placed", "u1")))

	require.Equal(t, "ezorder:cache:u:guest:", cacheScope(cfg, contextFor(e, "/x", "")))

	cfg.KeyStrategy = "route"
	shared := cacheKeyFrom(cfg, contextFor(e, "/v1/merchant/orders?status=placed", "u1"))
	require.True(t, strings.HasPrefix(shared, "ezorder:cache:shared:"))
	require.Equal(t, shared, cacheKeyFrom(cfg, contextFor(e, "/v1/merchant/orders?status=ready", "u2")))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, hdr, gotHdr)
	require.JSONEq(t, `{"ok":true}`, string(body))

	_, _, _, ok = decodePayload(bs[:5])
	require.False(t, ok)
	_, _, _, ok = decodePayload(append([]byte{0, 0, 0, 200, 0, 0, 1, 0}, '{'))
	require.False(t, ok)
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	require.False(t, cw.overflowed())
	_, _ = cw.Write([]byte("defg"))
	require.True(t, cw.overflowed())
	require.Equal(t, "abcd", cw.buf.String())
	require.Equal(t, "abcdefg", rec.Body.String())
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/auth/login")

	tests := map[string]string{
		"ip":            "rl:ip:10.0.0.7",
		"user":          "rl:user:anon",
		"user_route":    "rl:user:anon:route:POST /v1/auth/login",
		"ip_user_route": "rl:ip:10.0.0.7:user:anon:route:POST /v1/auth/login",
	}
	for strategy, want := range tests {
		require.Equal(t, want, buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c), strategy)
	}
	c.Set(KeyUserID, "u9")
	require.Equal(t, "rl:user:u9", buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, c))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(RequestID(), RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error {
		c.Set(KeyUserID, "u1")
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "nope") })

	rec := serve(e, http.MethodGet, "/ok", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
	serve(e, http.MethodGet, "/boom", "")

	entries := logs.FilterMessage("request").AllUntimed()
	require.Len(t, entries, 2)
	ok := entries[0].ContextMap()
	require.Equal(t, "/ok", ok["uri"])
	require.EqualValues(t, http.StatusNoContent, ok["status"])
	require.Equal(t, "u1", ok["user_id"])
	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	require.EqualValues(t, http.StatusTeapot, entries[1].ContextMap()["status"])
}

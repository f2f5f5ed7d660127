// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
	"github.com/taibuivan/tinytales/internal/platform/sec"
)

type fakeResolver struct {
	sessions map[string]*sec.AuthClaims
}

func (resolver fakeResolver) ResolveSession(ctx context.Context, sessionID string) (*sec.AuthClaims, string, error) {
	claims, ok := resolver.sessions[sessionID]
	if !ok {
		return nil, "", errors.New("unknown session")
	}
	return claims, "backend-" + sessionID, nil
}

type fakeConfig struct {
	development bool
	suffixes    []string
}

func (config fakeConfig) IsDevelopment() bool      { return config.development }
func (config fakeConfig) OriginSuffixes() []string { return config.suffixes }

func okHandler(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "trace-me")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "trace-me", seen)
}

func TestAuthenticate(t *testing.T) {
	resolver := fakeResolver{sessions: map[string]*sec.AuthClaims{
		"s1": {UserID: "u1", Role: string(sec.RoleEditor)},
	}}

	var token string
	var claims *sec.AuthClaims
	handler := Authenticate(resolver, "tt_admin_session")(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token = ctxutil.GetBackendToken(request.Context())
		claims = ctxutil.GetAuthUser(request.Context())
	}))

	t.Run("cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.AddCookie(&http.Cookie{Name: "tt_admin_session", Value: "s1"})
		handler.ServeHTTP(httptest.NewRecorder(), request)

		require.NotNil(t, claims)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "backend-s1", token)
	})

	t.Run("bearer header", func(t *testing.T) {
		claims = nil
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer s1")
		handler.ServeHTTP(httptest.NewRecorder(), request)
		require.NotNil(t, claims)
	})

	t.Run("anonymous", func(t *testing.T) {
		claims = nil
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, claims)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer nope")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Basic abc")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(sec.RoleAdmin)(http.HandlerFunc(okHandler))

	serve := func(claims *sec.AuthClaims) int {
		request := httptest.NewRequest(http.MethodDelete, "/", nil)
		if claims != nil {
			request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil))
	assert.Equal(t, http.StatusForbidden, serve(&sec.AuthClaims{Role: string(sec.RoleEditor)}))
	assert.Equal(t, http.StatusOK, serve(&sec.AuthClaims{Role: string(sec.RoleAdmin)}))
}

func TestRequireAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	RequireAuth(http.HandlerFunc(okHandler)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCORS(t *testing.T) {
	handler := CORS(fakeConfig{suffixes: []string{"tinytales.app"}})(http.HandlerFunc(okHandler))

	serve := func(origin string) string {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Origin", origin)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Header().Get("Access-Control-Allow-Origin")
	}

	assert.Equal(t, "https://admin.tinytales.app", serve("https://admin.tinytales.app"))
	assert.Equal(t, "https://tinytales.app:8443", serve("https://tinytales.app:8443"))
	assert.Empty(t, serve("https://eviltinytales.app"))
	assert.Empty(t, serve("https://tinytales.app.evil.com"))

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set("Origin", "https://admin.tinytales.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := RateLimit(ctx, 1, 2)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "192.0.2.1:5000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", RealIP(request))
}

func TestSecurityHeaders(t *testing.T) {
	recorder := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(okHandler)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", recorder.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
}

func TestCSRF(t *testing.T) {
	handler := CSRF(bytes.Repeat([]byte{7}, 32), CSRFOptions{})(http.HandlerFunc(okHandler))

	serve := func(request *http.Request) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}
	upload := func() *http.Request {
		request := httptest.NewRequest(http.MethodPost, "/admin/v1/books", strings.NewReader("--x--\r\n"))
		request.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		return request
	}

	// A safe request issues the token and its cookie.
	issued := serve(httptest.NewRequest(http.MethodGet, "/admin/v1/books", nil))
	require.Equal(t, http.StatusOK, issued.Code)
	token := issued.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)
	cookies := issued.Result().Cookies()
	require.NotEmpty(t, cookies)

	t.Run("form_without_token", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, serve(upload()).Code)
	})

	t.Run("form_with_token", func(t *testing.T) {
		request := upload()
		request.Header.Set("X-CSRF-Token", token)
		for _, cookie := range cookies {
			request.AddCookie(cookie)
		}
		assert.Equal(t, http.StatusOK, serve(request).Code)
	})

	t.Run("json_is_exempt", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/admin/v1/categories", strings.NewReader(`{}`))
		request.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusOK, serve(request).Code)
	})

	t.Run("bearer_is_exempt", func(t *testing.T) {
		request := upload()
		request.Header.Set("Authorization", "Bearer session-id")
		assert.Equal(t, http.StatusOK, serve(request).Code)
	})
}

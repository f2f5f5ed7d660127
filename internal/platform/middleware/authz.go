// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
	"github.com/taibuivan/tinytales/internal/platform/respond"
	"github.com/taibuivan/tinytales/internal/platform/sec"
)

// SessionResolver turns a portal session id into the staff claims and the
// backend token stored with it.
//
// Defining it here keeps the middleware independent of the session store, so
// tests can inject a fake.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (*sec.AuthClaims, string, error)
}

// Authenticate resolves the portal session of a request.
//
// # Flow
//  1. Read the session id from the session cookie, or from 'Authorization: Bearer <id>'.
//  2. If neither is present, the request proceeds as anonymous.
//  3. Resolve the session via [SessionResolver]; an unknown or expired id is a 401.
//  4. Inject the claims, the session id and the backend token into the context.
func Authenticate(resolver SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sessionID, err := sessionIDFrom(request, cookieName)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if sessionID == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, backendToken, err := resolver.ResolveSession(request.Context(), sessionID)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Session expired, please sign in again"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID)))
			ctx = ctxutil.WithSessionID(ctx, sessionID)
			ctx = ctxutil.WithBackendToken(ctx, backendToken)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// sessionIDFrom extracts the session id. The cookie wins over the header.
func sessionIDFrom(request *http.Request, cookieName string) (string, error) {
	if cookie, err := request.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := request.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}

	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(value) == "" {
		return "", apperr.Unauthorized("Invalid authorization format")
	}
	return strings.TrimSpace(value), nil
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose staff role is below role.
//
// It implies [RequireAuth], so both need not be mounted.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

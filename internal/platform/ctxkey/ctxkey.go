// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (staff identity, request ID,
// logger, backend credentials). Using a private, unexported type for keys prevents
// collisions with third-party packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the authenticated staff claims ([sec.AuthClaims]).
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyBackendToken is the context key for the backend-issued bearer token.
	KeyBackendToken key = "backend_token"

	// KeySessionID is the context key for the raw portal session identifier.
	KeySessionID key = "session_id"

	// KeyClientIP is the context key for the resolved client IP address.
	KeyClientIP key = "client_ip"
)

// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"time"

	"github.com/taibuivan/tinytales/internal/platform/sec"
)

// Store persists sessions keyed by the hash of their id.
type Store interface {
	Create(context context.Context, keyHash string, session *Session, ttl time.Duration) error
	// Get returns apperr.NotFound when the session is absent or expired.
	Get(context context.Context, keyHash string) (*Session, error)
	Delete(context context.Context, keyHash string) error
}

// ScopedStore is per-session state kept by another screen. Logout deletes it.
type ScopedStore interface {
	Delete(context context.Context, sessionID string) error
}

// Authenticator exchanges staff credentials for a backend access token.
type Authenticator interface {
	Login(context context.Context, email, password string) (string, error)
}

// TokenVerifier checks a backend access token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

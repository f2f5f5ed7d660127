// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session signs staff into the portal.

Credentials are checked by the content backend, which answers with a signed
access token. The portal verifies that token, requires at least the editor
role, and keeps it server-side under a random session id. Only that id reaches
the browser, as an HttpOnly cookie, and the store is keyed by its hash.
*/
package session

import (
	"time"

	"github.com/taibuivan/tinytales/internal/platform/sec"
)

// Session is the server-side record of a signed-in staff member.
type Session struct {
	Claims       *sec.AuthClaims `json:"claims"`
	BackendToken string          `json:"backendToken"`
	IPAddress    string          `json:"ipAddress,omitempty"`
	UserAgent    string          `json:"userAgent,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	ExpiresAt    time.Time       `json:"expiresAt"`
}

// LoginInput carries the credentials and client metadata of a sign-in.
type LoginInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResult is returned once a session exists.
type LoginResult struct {
	SessionID string          `json:"-"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      *sec.AuthClaims `json:"user"`
}

const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the admin portal.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Backend: Page size caps and upstream header names.
  - Security: Session cookie and Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tinytales-admin"
	AppVersion = "0.3.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads of lesson videos go through the portal, so this is generous.
	DefaultReadTimeout = 2 * time.Minute

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 2 * time.Minute

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 90 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Backend

const (
	// BackendMaxPageSize is the server-side cap on the "limit" query parameter.
	BackendMaxPageSize = 100

	// BackendUserAgent identifies the portal in backend access logs.
	BackendUserAgent = AppName + "/" + AppVersion
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderXCSRFToken    = "X-CSRF-Token"
)

// # Authentication

const (
	// AuthIssuer is the default 'iss' claim expected on backend tokens.
	AuthIssuer = "tinytales.app"

	// SessionIDLength is the byte length of the random session identifier.
	SessionIDLength = 32

	// CSRFCookieName holds the signed CSRF base token.
	CSRFCookieName = "tt_admin_csrf"
)

// # JSON Field Identifiers

const (
	FieldData     = "data"
	FieldMeta     = "meta"
	FieldError    = "error"
	FieldCode     = "code"
	FieldDetails  = "details"
	FieldWarnings = "warnings"
	FieldMessage  = "message"
	FieldStatus   = "status"
	FieldChecks   = "checks"
)

// # Database Schemas

const (
	SchemaPortal = "portal"

	// AuditStatementTimeout bounds every audit statement.
	AuditStatementTimeout = 5 * time.Second

	// AuditDefaultLimit and AuditMaxLimit bound the audit screen.
	AuditDefaultLimit = 50
	AuditMaxLimit     = 500
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession       = "portal:session:"
	RedisPrefixFeaturedDraft = "portal:featured_draft:"
)

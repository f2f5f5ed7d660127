// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/constants"
)

// # Security Headers

// SecurityHeaders sets the response headers every portal response carries.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		header := writer.Header()
		header.Set("X-Frame-Options", "DENY")
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(writer, request)
	})
}

// # Cross-Site Request Forgery

// CSRFOptions tunes [CSRF].
type CSRFOptions struct {
	// Secure marks the token cookie Secure and enforces the HTTPS referer check.
	Secure bool

	// TrustedOrigins are the hosts (host[:port]) of the staff UI.
	TrustedOrigins []string
}

// CSRF protects form posts made with the session cookie.
//
// JSON requests are exempt: a browser cannot send them cross-origin without a
// CORS preflight. So are bearer requests, which carry no ambient cookie.
// Multipart uploads and urlencoded forms must echo the X-CSRF-Token response
// header back in the same request header.
func CSRF(authKey []byte, options CSRFOptions) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		authKey,
		csrf.Secure(options.Secure),
		csrf.Path("/"),
		csrf.CookieName(constants.CSRFCookieName),
		csrf.RequestHeader(constants.HeaderXCSRFToken),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.TrustedOrigins(options.TrustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed)),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set(constants.HeaderXCSRFToken, csrf.Token(request))
			next.ServeHTTP(writer, request)
		}))

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if strings.HasPrefix(request.Header.Get("Content-Type"), "application/json") ||
				request.Header.Get(constants.HeaderAuthorization) != "" {
				next.ServeHTTP(writer, request)
				return
			}

			if !options.Secure && request.TLS == nil {
				request = csrf.PlaintextHTTPRequest(request)
			}
			protected.ServeHTTP(writer, request)
		})
	}
}

func csrfFailed(writer http.ResponseWriter, request *http.Request) {
	writeError(writer, http.StatusForbidden, apperr.CodeForbidden, "Form token is missing or invalid, reload the page and try again")
}

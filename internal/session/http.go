// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
	"github.com/taibuivan/tinytales/internal/platform/middleware"
	requestutil "github.com/taibuivan/tinytales/internal/platform/request"
	"github.com/taibuivan/tinytales/internal/platform/respond"
	"github.com/taibuivan/tinytales/internal/platform/validate"
)

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Path   string
	Secure bool
}

// Handler implements the sign-in endpoints.
type Handler struct {
	service *Service
	cookie  CookieOptions
}

func NewHandler(service *Service, cookie CookieOptions) *Handler {
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &Handler{service: service, cookie: cookie}
}

// RegisterRoutes mounts the endpoints.
//
// # Endpoints
//   - POST /login  : Starts a session and sets the cookie.
//   - POST /logout : Ends the current session.
//   - GET  /me     : Returns the signed-in staff member.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.With(middleware.RequireAuth).Get("/me", handler.me)
}

/*
login authenticates staff and establishes a session.

POST /admin/v1/auth/login

Response:
  - 200: LoginResult (user, expiresAt) with the session cookie set
  - 401: Invalid credentials
  - 403: Account lacks the editor role
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	input.IPAddress = ctxutil.GetClientIP(request.Context())
	input.UserAgent = request.UserAgent()

	result, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     handler.cookie.Name,
		Value:    result.SessionID,
		Path:     handler.cookie.Path,
		Expires:  result.ExpiresAt,
		Secure:   handler.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.OK(writer, result)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Logout(request.Context(), ctxutil.GetSessionID(request.Context())); err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     handler.cookie.Name,
		Value:    "",
		Path:     handler.cookie.Path,
		MaxAge:   -1,
		Secure:   handler.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, requestutil.Claims(request))
}

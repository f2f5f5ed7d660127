// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/audit"
	"github.com/taibuivan/tinytales/internal/platform/constants"
	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
	"github.com/taibuivan/tinytales/internal/platform/sec"
	"github.com/taibuivan/tinytales/internal/platform/validate"
)

// MinimumRole is the least privileged role allowed into the portal.
const MinimumRole = sec.RoleEditor

// Service implements staff sign-in, sign-out and session resolution.
type Service struct {
	authenticator Authenticator
	verifier      TokenVerifier
	store         Store
	ttl           time.Duration
	recorder      audit.Recorder
	logger        *slog.Logger
	now           func() time.Time
	scoped        []ScopedStore
}

// NewService builds the session service. scoped stores are cleared on logout.
func NewService(authenticator Authenticator, verifier TokenVerifier, store Store, ttl time.Duration, recorder audit.Recorder, logger *slog.Logger, scoped ...ScopedStore) *Service {
	return &Service{
		authenticator: authenticator,
		verifier:      verifier,
		store:         store,
		ttl:           ttl,
		recorder:      recorder,
		logger:        logger,
		now:           time.Now,
		scoped:        scoped,
	}
}

/*
Login exchanges credentials for a portal session.

Description: The backend checks the credentials and issues a token. The token
must verify and carry at least [MinimumRole]. The session lives for the
configured TTL or until the token expires, whichever comes first.

Returns:
  - *LoginResult: the new session id and the staff claims
  - err: VALIDATION_ERROR, UNAUTHORIZED, FORBIDDEN, or backend failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	token, err := service.authenticator.Login(context, input.Email, input.Password)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && rejectsCredentials(appErr.HTTPStatus) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	claims, err := service.verifier.VerifyToken(token)
	if err != nil {
		service.logger.Warn("session_token_rejected", slog.Any("error", err))
		return nil, apperr.Unauthorized("The backend issued an invalid token")
	}

	if !sec.UserRole(claims.Role).AtLeast(MinimumRole) {
		service.logger.Warn("session_role_denied", slog.String("user_id", claims.UserID), slog.String("role", claims.Role))
		return nil, apperr.Forbidden("This account cannot access the admin portal")
	}

	now := service.now()
	expiresAt := now.Add(service.ttl)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(expiresAt) {
		expiresAt = claims.ExpiresAt.Time
	}
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return nil, apperr.Unauthorized("The backend issued an expired token")
	}

	sessionID, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	session := &Session{
		Claims:       claims,
		BackendToken: token,
		IPAddress:    input.IPAddress,
		UserAgent:    input.UserAgent,
		CreatedAt:    now.UTC(),
		ExpiresAt:    expiresAt.UTC(),
	}
	if err := service.store.Create(context, sec.HashToken(sessionID), session, ttl); err != nil {
		return nil, apperr.Internal(fmt.Errorf("session_create_failed: %w", err))
	}

	service.logger.Info("session_started",
		slog.String("user_id", claims.UserID),
		slog.String("role", claims.Role),
		slog.Duration("ttl", ttl),
	)
	service.recorder.Record(ctxutil.WithAuthUser(context, claims), audit.Event{Action: "session.login", EntityType: "session", EntityID: claims.UserID})

	return &LoginResult{SessionID: sessionID, ExpiresAt: session.ExpiresAt, User: claims}, nil
}

// ResolveSession returns the claims and backend token stored for sessionID.
func (service *Service) ResolveSession(context context.Context, sessionID string) (*sec.AuthClaims, string, error) {
	session, err := service.store.Get(context, sec.HashToken(sessionID))
	if err != nil {
		return nil, "", err
	}

	if !session.ExpiresAt.IsZero() && !service.now().Before(session.ExpiresAt) {
		return nil, "", apperr.Unauthorized("Session expired, please sign in again")
	}
	return session.Claims, session.BackendToken, nil
}

// Logout deletes the session and its scoped state. Logging out twice is not an error.
func (service *Service) Logout(context context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := service.store.Delete(context, sec.HashToken(sessionID)); err != nil {
		return apperr.Internal(fmt.Errorf("session_delete_failed: %w", err))
	}

	// A failed delete is logged; the state still expires with its own TTL.
	for _, store := range service.scoped {
		if err := store.Delete(context, sessionID); err != nil {
			service.logger.Warn("session_scoped_state_delete_failed", slog.Any("error", err))
		}
	}

	service.logger.Info("session_ended")
	service.recorder.Record(context, audit.Event{Action: "session.logout", EntityType: "session"})
	return nil
}

// rejectsCredentials reports whether a backend login status means bad credentials
// rather than a backend fault.
func rejectsCredentials(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
		return true
	default:
		return false
	}
}

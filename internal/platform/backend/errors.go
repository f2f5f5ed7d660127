// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
)

// codeRateLimited is a backend 429, passed through so staff know to wait.
const codeRateLimited = "RATE_LIMITED"

// errorBody is the error shape the backend returns. Either field may be set.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// decodeError maps a non-2xx backend response to an [apperr.AppError].
//
// The backend's message is kept verbatim because it is shown to staff in alerts.
func decodeError(status int, raw []byte) *apperr.AppError {
	message := errorMessage(raw)
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusBadRequest:
		return apperr.ValidationError(message)
	case http.StatusUnauthorized:
		return apperr.Unauthorized(message)
	case http.StatusForbidden:
		return apperr.Forbidden(message)
	case http.StatusNotFound:
		return apperr.New(apperr.CodeNotFound, http.StatusNotFound, message)
	case http.StatusConflict:
		return apperr.Conflict(message)
	case http.StatusUnprocessableEntity:
		return apperr.Unprocessable(message)
	case http.StatusTooManyRequests:
		return apperr.New(codeRateLimited, http.StatusTooManyRequests, message)
	default:
		return apperr.Backend(status, message)
	}
}

// errorMessage extracts "message" (preferred) or "error" from a JSON body.
// Plain-text bodies are used as-is when short enough to be a message.
func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}

	text := strings.TrimSpace(string(raw))
	if len(text) > 0 && len(text) <= 300 && !strings.HasPrefix(text, "<") {
		return text
	}
	return ""
}

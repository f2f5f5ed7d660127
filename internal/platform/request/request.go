// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns (JSON bodies and multipart create/edit forms), ensuring
consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
	"github.com/taibuivan/tinytales/internal/platform/sec"
	"github.com/taibuivan/tinytales/internal/platform/validate"
)

// PayloadField is the multipart field that carries the JSON draft of a form.
const PayloadField = "payload"

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeForm decodes a create/edit form submission.

Two encodings are accepted:
  - application/json: the body is the draft; no files are returned.
  - multipart/form-data: the "payload" field holds the JSON draft and each
    name in fileFields may carry one file. With no fileFields, every file
    field of the form is returned (forms with a variable number of slots).

Files are read fully into memory (bounded by maxBytes) so that they can be
replayed to the backend after the parent entity is created.
*/
func DecodeForm(request *http.Request, maxBytes int64, target interface{}, fileFields ...string) (map[string]*backend.File, error) {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return map[string]*backend.File{}, DecodeJSON(request, target)
	}

	request.Body = http.MaxBytesReader(nil, request.Body, maxBytes)
	if err := request.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.ValidationError("Upload exceeds the maximum allowed size")
		}
		return nil, apperr.ValidationError("Invalid multipart form")
	}

	if err := json.Unmarshal([]byte(request.FormValue(PayloadField)), target); err != nil {
		return nil, validate.ErrInvalidJSON
	}

	if len(fileFields) == 0 && request.MultipartForm != nil {
		for field := range request.MultipartForm.File {
			fileFields = append(fileFields, field)
		}
	}

	files := make(map[string]*backend.File, len(fileFields))
	for _, field := range fileFields {
		part, header, err := request.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, apperr.ValidationError("Invalid file upload", apperr.FieldError{Field: field, Message: "Could not read file"})
		}

		content, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, apperr.ValidationError("Invalid file upload", apperr.FieldError{Field: field, Message: "Could not read file"})
		}

		if len(content) == 0 {
			continue
		}

		files[field] = &backend.File{
			Name:    header.Filename,
			Content: content,
		}
	}

	return files, nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated staff claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the staff claims.

Returns:
  - *sec.AuthClaims: The authenticated staff claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

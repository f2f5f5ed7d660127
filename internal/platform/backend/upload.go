// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
)

// AssetKind selects the backend upload endpoint.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetAudio AssetKind = "audio"
	AssetVideo AssetKind = "video"
)

// File is an in-memory upload received from a staff form.
type File struct {
	Name    string
	Content []byte
}

// MediaType returns the sniffed MIME type of the file content.
func (file *File) MediaType() string {
	return mimetype.Detect(file.Content).String()
}

// UploadTarget identifies the entity that owns an uploaded asset.
//
// The backend tags the stored object with OwnerParam=OwnerID and type=AssetType,
// for example bookId=42&type=cover.
type UploadTarget struct {
	Kind       AssetKind
	OwnerParam string
	OwnerID    string
	AssetType  string
}

// uploadResponse is the body of a successful upload.
type uploadResponse struct {
	URL string `json:"url"`
}

// CheckKind rejects a file whose content does not match the upload kind.
func CheckKind(kind AssetKind, file *File) error {
	if file == nil || len(file.Content) == 0 {
		return apperr.ValidationError("File is empty")
	}

	mediaType := file.MediaType()
	if !strings.HasPrefix(mediaType, string(kind)+"/") {
		return apperr.ValidationError(fmt.Sprintf("%s is %s, expected an %s file", file.Name, mediaType, kind))
	}
	return nil
}

// Upload sends file to /api/upload/{kind} and returns the stored asset URL.
func (client *Client) Upload(ctx context.Context, target UploadTarget, file *File) (string, error) {
	if err := CheckKind(target.Kind, file); err != nil {
		return "", err
	}
	if target.Kind == AssetImage {
		file = fitImage(file, client.imageMaxWidth)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", file.MediaType())

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("backend: create upload part: %w", err))
	}
	if _, err := part.Write(file.Content); err != nil {
		return "", apperr.Internal(fmt.Errorf("backend: write upload part: %w", err))
	}
	if err := writer.Close(); err != nil {
		return "", apperr.Internal(fmt.Errorf("backend: close upload body: %w", err))
	}

	query := url.Values{}
	if target.OwnerParam != "" {
		query.Set(target.OwnerParam, target.OwnerID)
	}
	if target.AssetType != "" {
		query.Set("type", target.AssetType)
	}

	request, err := client.newRequest(ctx, http.MethodPost, "/api/upload/"+string(target.Kind), query, &body)
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	raw, err := client.send(request)
	if err != nil {
		return "", err
	}

	var result uploadResponse
	if err := decodeInto(raw, &result); err != nil {
		return "", err
	}
	if result.URL == "" {
		return "", apperr.BackendUnavailable(fmt.Errorf("backend: upload of %s returned no url", file.Name))
	}

	return result.URL, nil
}

// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content holds what every catalogue screen shares: the publication status
lifecycle, the reorder request, and the asset step of multi-step create flows.

Multi-step flows follow one order. The parent entity is created first so the
backend assigns its id. Each asset is then uploaded tagged with that id, and
finally the parent is updated with the returned URLs. An asset failure after the
parent exists is reported as a warning, never rolled back.
*/
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
	"github.com/taibuivan/tinytales/internal/platform/validate"
	"github.com/taibuivan/tinytales/pkg/reorder"
)

// # Status

// Status is the publication state of a content item.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses lists every valid status, for validation messages.
var Statuses = []string{string(StatusDraft), string(StatusPublished), string(StatusArchived)}

// OrDraft returns status, or draft when it is empty.
func (status Status) OrDraft() Status {
	if status == "" {
		return StatusDraft
	}
	return status
}

// # Reordering

// MoveInput is the body of every ".../move" endpoint.
type MoveInput struct {
	ItemID    string `json:"itemId"`
	Direction string `json:"direction"`
}

// Parse validates the move and returns its direction.
func (input MoveInput) Parse(requireItem bool) (reorder.Direction, error) {
	if requireItem && strings.TrimSpace(input.ItemID) == "" {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{Field: "itemId", Message: "This field is required"})
	}

	direction, err := reorder.ParseDirection(input.Direction)
	if err != nil {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{Field: "direction", Message: "Must be one of: up, down"})
	}
	return direction, nil
}

// # Assets

// Uploader stores one asset and returns its URL.
type Uploader interface {
	UploadAsset(ctx context.Context, target backend.UploadTarget, file *backend.File) (string, error)
}

// Asset describes one file slot of a form.
type Asset struct {
	// Field is the multipart field name carrying the file.
	Field string
	Kind  backend.AssetKind
	// Type is the backend asset tag, e.g. "cover" or "thumbnail".
	Type string
	// Label names the asset in warnings shown to staff.
	Label string
}

// Owner identifies the entity assets are uploaded for.
type Owner struct {
	// Entity is the display name used in warnings, e.g. "Book".
	Entity string
	// Param is the upload query parameter naming the owner, e.g. "bookId".
	Param string
	ID    string
}

// UploadWarning is the message shown when an asset failed after its parent was saved.
func UploadWarning(entity, asset string) string {
	return fmt.Sprintf("%s was saved but the %s upload failed; retry from the edit screen", entity, asset)
}

// AttachWarning is the message shown when uploaded assets could not be linked to their parent.
func AttachWarning(entity string) string {
	return fmt.Sprintf("%s was saved but its uploaded files could not be attached; retry from the edit screen", entity)
}

// CheckFiles flags every supplied file whose sniffed content does not match its
// asset kind. It runs with the other field rules, before the parent is created.
func CheckFiles(validator *validate.Validator, assets []Asset, files map[string]*backend.File) *validate.Validator {
	for _, asset := range assets {
		file, ok := files[asset.Field]
		if !ok {
			continue
		}
		if err := backend.CheckKind(asset.Kind, file); err != nil {
			validator.Custom(asset.Field, true, err.Error())
		}
	}
	return validator
}

// UploadAssets uploads every asset present in files, in order, for owner.
//
// It returns the URL of each successful upload keyed by field, and one warning
// per failed upload. Uploads are sequential and a failure does not stop the rest.
func UploadAssets(ctx context.Context, uploader Uploader, owner Owner, assets []Asset, files map[string]*backend.File) (map[string]string, []string) {
	logger := ctxutil.GetLogger(ctx)

	urls := make(map[string]string, len(assets))
	var warnings []string

	for _, asset := range assets {
		file, ok := files[asset.Field]
		if !ok {
			continue
		}

		target := backend.UploadTarget{
			Kind:       asset.Kind,
			OwnerParam: owner.Param,
			OwnerID:    owner.ID,
			AssetType:  asset.Type,
		}

		assetURL, err := uploader.UploadAsset(ctx, target, file)
		if err != nil {
			logger.WarnContext(ctx, "asset_upload_failed",
				slog.String("entity", owner.Entity),
				slog.String("entity_id", owner.ID),
				slog.String("asset", asset.Field),
				slog.Any("error", err),
			)
			warnings = append(warnings, UploadWarning(owner.Entity, asset.Label))
			continue
		}

		urls[asset.Field] = assetURL
	}

	return urls, warnings
}

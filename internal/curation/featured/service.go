// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/audit"
	"github.com/taibuivan/tinytales/internal/platform/ctxutil"
)

// Options tunes how drafts are saved.
type Options struct {
	// Batch sends each save as one request instead of one request per change.
	Batch bool
}

type Service struct {
	catalog  Catalog
	drafts   DraftStore
	recorder audit.Recorder
	options  Options
	logger   *slog.Logger
}

func NewService(catalog Catalog, drafts DraftStore, recorder audit.Recorder, options Options, logger *slog.Logger) *Service {
	return &Service{
		catalog:  catalog,
		drafts:   drafts,
		recorder: recorder,
		options:  options,
		logger:   logger,
	}
}

// Draft returns the session's draft, building one from the catalogue when none exists.
func (service *Service) Draft(context context.Context) (*Draft, error) {
	sessionID, err := sessionOf(context)
	if err != nil {
		return nil, err
	}

	draft, err := service.drafts.Load(context, sessionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if draft != nil {
		return draft, nil
	}

	candidates, err := service.catalog.Snapshot(context)
	if err != nil {
		return nil, err
	}

	draft = build(candidates)
	if err := service.drafts.Save(context, sessionID, draft); err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Debug("featured_draft_built", slog.Int("featured", len(draft.Original)), slog.Int("candidates", len(draft.Candidates)))
	return draft, nil
}

func (service *Service) AddItem(context context.Context, key string) (*Draft, error) {
	return service.edit(context, func(draft *Draft) error { return draft.Add(key) })
}

func (service *Service) RemoveItem(context context.Context, key string) (*Draft, error) {
	return service.edit(context, func(draft *Draft) error { return draft.Remove(key) })
}

func (service *Service) MoveItem(context context.Context, key string, move content.MoveInput) (*Draft, error) {
	direction, err := move.Parse(false)
	if err != nil {
		return nil, err
	}
	return service.edit(context, func(draft *Draft) error { return draft.Move(key, direction) })
}

// Discard drops the session's draft. The next read rebuilds it from the backend.
func (service *Service) Discard(context context.Context) error {
	sessionID, err := sessionOf(context)
	if err != nil {
		return err
	}
	if err := service.drafts.Delete(context, sessionID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Save reconciles the draft with the backend.
//
// Changes are applied in plan order and the first failure stops the save. The
// draft is kept in that case so staff can retry; on success it is cleared.
func (service *Service) Save(context context.Context) (*SaveResult, error) {
	sessionID, err := sessionOf(context)
	if err != nil {
		return nil, err
	}

	draft, err := service.Draft(context)
	if err != nil {
		return nil, err
	}

	changes := Plan(draft.Original, draft.Entries)
	result := &SaveResult{}
	for _, change := range changes {
		if change.Featured {
			result.Featured++
		} else {
			result.Unfeatured++
		}
	}

	if service.options.Batch {
		if err := service.catalog.ApplyBatch(context, changes); err != nil {
			return nil, err
		}
		result.Applied = len(changes)
	} else {
		for _, change := range changes {
			if err := service.catalog.Apply(context, change); err != nil {
				service.logger.Error("featured_save_incomplete",
					slog.Int("applied", result.Applied),
					slog.Int("total", len(changes)),
					slog.String("failed_key", change.Entry.Key()),
					slog.Any("error", err),
				)
				return nil, incomplete(result.Applied, len(changes), err)
			}
			result.Applied++
		}
	}

	if err := service.drafts.Delete(context, sessionID); err != nil {
		service.logger.Warn("featured_draft_clear_failed", slog.Any("error", err))
	}

	service.logger.Info("featured_saved",
		slog.Int("featured", result.Featured),
		slog.Int("unfeatured", result.Unfeatured),
		slog.Bool("batch", service.options.Batch),
	)
	service.recorder.Record(context, audit.Event{
		Action:     "featured.save",
		EntityType: "featured",
		Detail:     fmt.Sprintf("%d featured, %d unfeatured", result.Featured, result.Unfeatured),
	})

	return result, nil
}

func (service *Service) edit(context context.Context, change func(*Draft) error) (*Draft, error) {
	sessionID, err := sessionOf(context)
	if err != nil {
		return nil, err
	}

	draft, err := service.Draft(context)
	if err != nil {
		return nil, err
	}

	if err := change(draft); err != nil {
		return nil, err
	}

	if err := service.drafts.Save(context, sessionID, draft); err != nil {
		return nil, apperr.Internal(err)
	}
	return draft, nil
}

// build splits a catalogue snapshot into the featured set, ordered by
// featuredOrder, and the candidate list.
func build(candidates []Candidate) *Draft {
	draft := &Draft{
		Original:   []Entry{},
		Candidates: make([]Entry, 0, len(candidates)),
		CreatedAt:  time.Now().UTC(),
	}

	for _, candidate := range candidates {
		draft.Candidates = append(draft.Candidates, candidate.Entry)
		if candidate.IsFeatured {
			draft.Original = append(draft.Original, candidate.Entry)
		}
	}

	slices.SortStableFunc(draft.Original, func(a, b Entry) int { return cmp.Compare(a.Order, b.Order) })
	draft.Entries = slices.Clone(draft.Original)
	draft.renumber()
	return draft
}

// incomplete reports a sequential save that stopped partway. The backend now
// holds a mix of old and new state.
func incomplete(applied, total int, cause error) *apperr.AppError {
	failure := apperr.As(cause)
	if failure == nil {
		failure = apperr.BackendUnavailable(cause)
	}

	message := fmt.Sprintf("Featured content was only partly saved (%d of %d changes); reload before trying again", applied, total)
	return apperr.New(failure.Code, failure.HTTPStatus, message).WithCause(cause)
}

func sessionOf(context context.Context) (string, error) {
	sessionID := ctxutil.GetSessionID(context)
	if sessionID == "" {
		return "", apperr.Unauthorized("A staff session is required")
	}
	return sessionID, nil
}

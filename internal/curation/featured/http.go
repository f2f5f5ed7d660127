// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/apperr"
	requestutil "github.com/taibuivan/tinytales/internal/platform/request"
	"github.com/taibuivan/tinytales/internal/platform/respond"
)

// Handler exposes the featured curator.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the curator under the caller's prefix.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.getDraft)
	router.Post("/items", handler.addItem)
	router.Delete("/items/{key}", handler.removeItem)
	router.Post("/items/{key}/move", handler.moveItem)
	router.Delete("/draft", handler.discard)
	router.Post("/save", handler.save)
}

func (handler *Handler) getDraft(writer http.ResponseWriter, request *http.Request) {
	draft, err := handler.service.Draft(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view(draft))
}

func (handler *Handler) addItem(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Key string `json:"key"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Key == "" {
		respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "key", Message: "This field is required"}))
		return
	}

	draft, err := handler.service.AddItem(request.Context(), input.Key)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view(draft))
}

func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	draft, err := handler.service.RemoveItem(request.Context(), requestutil.Param(request, "key"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view(draft))
}

func (handler *Handler) moveItem(writer http.ResponseWriter, request *http.Request) {
	var move content.MoveInput
	if err := requestutil.DecodeJSON(request, &move); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.MoveItem(request.Context(), requestutil.Param(request, "key"), move)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view(draft))
}

func (handler *Handler) discard(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Discard(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) save(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Save(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// draftView is the screen payload: the edited set with the candidates not yet featured.
type draftView struct {
	Entries   []Entry   `json:"entries"`
	Available []Entry   `json:"available"`
	Dirty     bool      `json:"dirty"`
	LoadedAt  time.Time `json:"loadedAt"`
}

func view(draft *Draft) draftView {
	featured := make(map[string]struct{}, len(draft.Entries))
	for _, entry := range draft.Entries {
		featured[entry.Key()] = struct{}{}
	}

	available := make([]Entry, 0, len(draft.Candidates))
	for _, candidate := range draft.Candidates {
		if _, ok := featured[candidate.Key()]; !ok {
			available = append(available, candidate)
		}
	}

	return draftView{
		Entries:   draft.Entries,
		Available: available,
		Dirty:     draft.Dirty(),
		LoadedAt:  draft.CreatedAt,
	}
}

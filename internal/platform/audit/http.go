// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tinytales/internal/platform/constants"
	"github.com/taibuivan/tinytales/internal/platform/respond"
)

type Handler struct {
	recorder Recorder
}

func NewHandler(recorder Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listEntries)
}

func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := Filter{
		EntityType: query.Get("entityType"),
		EntityID:   query.Get("entityId"),
		Limit:      parseLimit(query.Get("limit")),
	}

	entries, err := handler.recorder.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	switch {
	case err != nil || limit < 1:
		return constants.AuditDefaultLimit
	case limit > constants.AuditMaxLimit:
		return constants.AuditMaxLimit
	}
	return limit
}

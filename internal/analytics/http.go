// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tinytales/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/overview", handler.overview)
	router.Get("/features", handler.features)
	router.Get("/leaderboard", handler.leaderboard)
	router.Get("/dashboard", handler.dashboard)
}

func (handler *Handler) overview(writer http.ResponseWriter, request *http.Request) {
	window, err := ParseRange(request.URL.Query().Get("range"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	overview, err := handler.service.Overview(request.Context(), window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, overview)
}

func (handler *Handler) features(writer http.ResponseWriter, request *http.Request) {
	window, err := ParseRange(request.URL.Query().Get("range"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	features, err := handler.service.Features(request.Context(), window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, features)
}

func (handler *Handler) leaderboard(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	window, err := ParseRange(query.Get("range"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	leaderboard, meta, err := handler.service.Leaderboard(request.Context(), window, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, leaderboard, meta)
}

func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	window, err := ParseRange(request.URL.Query().Get("range"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dashboard, err := handler.service.Dashboard(request.Context(), window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dashboard)
}

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/middleware"
	requestutil "github.com/taibuivan/tinytales/internal/platform/request"
	"github.com/taibuivan/tinytales/internal/platform/respond"
	"github.com/taibuivan/tinytales/internal/platform/sec"
)

type Handler struct {
	service        *Service
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPlaylists)
	router.Get("/{id}", handler.getPlaylist)
	router.Post("/", handler.createPlaylist)
	router.Put("/{id}", handler.updatePlaylist)
	router.Post("/{id}/items/move", handler.moveTrack)

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Delete("/{id}", handler.deletePlaylist)
		adminRoute.Delete("/{id}/items/{itemId}", handler.deleteTrack)
	})
}

func (handler *Handler) listPlaylists(writer http.ResponseWriter, request *http.Request) {
	view, meta, err := handler.service.ListPlaylists(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, view, meta)
}

func (handler *Handler) getPlaylist(writer http.ResponseWriter, request *http.Request) {
	playlist, err := handler.service.GetPlaylist(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, playlist)
}

func (handler *Handler) createPlaylist(writer http.ResponseWriter, request *http.Request) {
	var input Playlist
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, warnings, err := handler.service.CreatePlaylist(request.Context(), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.CreatedWithWarnings(writer, created, warnings)
}

func (handler *Handler) updatePlaylist(writer http.ResponseWriter, request *http.Request) {
	var input Playlist
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdatePlaylist(request.Context(), requestutil.ID(request, "id"), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deletePlaylist(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePlaylist(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteTrack(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.DeleteTrack(request.Context(), requestutil.ID(request, "id"), requestutil.Param(request, "itemId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) moveTrack(writer http.ResponseWriter, request *http.Request) {
	var input content.MoveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.MoveTrack(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

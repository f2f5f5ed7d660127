package voice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	router.Get("/", handler.listVoices)
	router.Get("/available", handler.listAvailable)
	router.Get("/{id}", handler.getVoice)
	router.Post("/", handler.createVoice)
	router.Put("/{id}", handler.updateVoice)
	router.Post("/{id}/toggle", handler.toggleVoice)

	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteVoice)
}

func (handler *Handler) listVoices(writer http.ResponseWriter, request *http.Request) {
	view, meta, err := handler.service.ListVoices(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, view, meta)
}

func (handler *Handler) listAvailable(writer http.ResponseWriter, request *http.Request) {
	voices, err := handler.service.ListAvailable(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, voices)
}

func (handler *Handler) getVoice(writer http.ResponseWriter, request *http.Request) {
	voice, err := handler.service.GetVoice(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, voice)
}

func (handler *Handler) createVoice(writer http.ResponseWriter, request *http.Request) {
	var input Voice
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input, FieldImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, warnings, err := handler.service.CreateVoice(request.Context(), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.CreatedWithWarnings(writer, created, warnings)
}

func (handler *Handler) updateVoice(writer http.ResponseWriter, request *http.Request) {
	var input Voice
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input, FieldImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateVoice(request.Context(), requestutil.ID(request, "id"), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) toggleVoice(writer http.ResponseWriter, request *http.Request) {
	var toggle Toggle
	if err := requestutil.DecodeJSON(request, &toggle); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.ToggleVoice(request.Context(), requestutil.ID(request, "id"), toggle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteVoice(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteVoice(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

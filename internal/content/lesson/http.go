package lesson

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
	router.Get("/", handler.listLessons)
	router.Get("/{id}", handler.getLesson)
	router.Post("/", handler.createLesson)
	router.Put("/{id}", handler.updateLesson)

	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteLesson)
}

func (handler *Handler) listLessons(writer http.ResponseWriter, request *http.Request) {
	view, meta, err := handler.service.ListLessons(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, view, meta)
}

func (handler *Handler) getLesson(writer http.ResponseWriter, request *http.Request) {
	lesson, err := handler.service.GetLesson(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lesson)
}

func (handler *Handler) createLesson(writer http.ResponseWriter, request *http.Request) {
	var input Lesson
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input, FieldVideo, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, warnings, err := handler.service.CreateLesson(request.Context(), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.CreatedWithWarnings(writer, created, warnings)
}

func (handler *Handler) updateLesson(writer http.ResponseWriter, request *http.Request) {
	var input Lesson
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input, FieldVideo, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateLesson(request.Context(), requestutil.ID(request, "id"), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteLesson(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteLesson(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

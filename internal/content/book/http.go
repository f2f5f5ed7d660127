package book

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
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.Post("/", handler.createBook)
	router.Put("/{id}", handler.updateBook)
	router.Post("/{id}/series/move", handler.moveSeriesBook)

	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteBook)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	view, meta, err := handler.service.ListBooks(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, view, meta)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBook(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input, FieldCover)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, warnings, err := handler.service.CreateBook(request.Context(), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.CreatedWithWarnings(writer, created, warnings)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input, FieldCover)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateBook(request.Context(), requestutil.ID(request, "id"), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBook(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) moveSeriesBook(writer http.ResponseWriter, request *http.Request) {
	var input content.MoveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.MoveSeriesBook(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

package influencer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tinytales/internal/platform/middleware"
	requestutil "github.com/taibuivan/tinytales/internal/platform/request"
	"github.com/taibuivan/tinytales/internal/platform/respond"
	"github.com/taibuivan/tinytales/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listInfluencers)
	router.Get("/{id}", handler.getInfluencer)
	router.Post("/", handler.createInfluencer)
	router.Put("/{id}", handler.updateInfluencer)
	router.Post("/{id}/active", handler.setActive)

	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteInfluencer)
}

func (handler *Handler) listInfluencers(writer http.ResponseWriter, request *http.Request) {
	listing, meta, err := handler.service.ListInfluencers(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, listing, meta)
}

func (handler *Handler) getInfluencer(writer http.ResponseWriter, request *http.Request) {
	influencer, err := handler.service.GetInfluencer(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, influencer)
}

func (handler *Handler) createInfluencer(writer http.ResponseWriter, request *http.Request) {
	var input Influencer
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateInfluencer(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateInfluencer(writer http.ResponseWriter, request *http.Request) {
	var input Influencer
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateInfluencer(request.Context(), requestutil.ID(request, "id"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Active bool `json:"active"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.SetActive(request.Context(), requestutil.ID(request, "id"), input.Active)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteInfluencer(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteInfluencer(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

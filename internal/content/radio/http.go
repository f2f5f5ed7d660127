package radio

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
	router.Route("/tracks", func(tracks chi.Router) {
		tracks.Get("/", handler.listTracks)
		tracks.Get("/{id}", handler.getTrack)
		tracks.Post("/", handler.createTrack)
		tracks.Put("/{id}", handler.updateTrack)
		tracks.Post("/move", handler.moveTrack)
		tracks.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteTrack)
	})

	router.Route("/segments", func(segments chi.Router) {
		segments.Get("/", handler.listSegments)
		segments.Get("/{id}", handler.getSegment)
		segments.Post("/", handler.createSegment)
		segments.Put("/{id}", handler.updateSegment)
		segments.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteSegment)
	})
}

// # Tracks

func (handler *Handler) listTracks(writer http.ResponseWriter, request *http.Request) {
	view, meta, err := handler.service.ListTracks(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, view, meta)
}

func (handler *Handler) getTrack(writer http.ResponseWriter, request *http.Request) {
	track, err := handler.service.GetTrack(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, track)
}

func (handler *Handler) createTrack(writer http.ResponseWriter, request *http.Request) {
	var input Track
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input, FieldAudio)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, warnings, err := handler.service.CreateTrack(request.Context(), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.CreatedWithWarnings(writer, created, warnings)
}

func (handler *Handler) updateTrack(writer http.ResponseWriter, request *http.Request) {
	var input Track
	files, err := requestutil.DecodeForm(request, handler.maxUploadBytes, &input, FieldAudio)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateTrack(request.Context(), requestutil.ID(request, "id"), &input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) moveTrack(writer http.ResponseWriter, request *http.Request) {
	var move content.MoveInput
	if err := requestutil.DecodeJSON(request, &move); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tracks, err := handler.service.MoveTrack(request.Context(), move)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tracks)
}

func (handler *Handler) deleteTrack(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteTrack(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Segments

func (handler *Handler) listSegments(writer http.ResponseWriter, request *http.Request) {
	view, meta, err := handler.service.ListSegments(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, view, meta)
}

func (handler *Handler) getSegment(writer http.ResponseWriter, request *http.Request) {
	segment, err := handler.service.GetSegment(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, segment)
}

func (handler *Handler) createSegment(writer http.ResponseWriter, request *http.Request) {
	var input Segment
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateSegment(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateSegment(writer http.ResponseWriter, request *http.Request) {
	var input Segment
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateSegment(request.Context(), requestutil.ID(request, "id"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteSegment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSegment(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

package adaptor

import (
	"net/http"
	"net/url"

	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/usecase"
	"popcorn-palace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// titleParam returns the decoded {title} segment. chi matches on RawPath
// when the request carries escapes such as %2F, leaving them encoded.
func titleParam(r *http.Request) string {
	title := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return title
	}
	if decoded, err := url.PathUnescape(title); err == nil {
		return decoded
	}
	return title
}

// CreateMovie handles POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseSuccess(w, "Movie created successfully", movie)
}

// GetAllMovies handles GET /movies/all
func (h *MovieHandler) GetAllMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetAllMovies(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetMovieByTitle handles GET /movies/{title}
func (h *MovieHandler) GetMovieByTitle(w http.ResponseWriter, r *http.Request) {
	title := titleParam(r)

	movie, err := h.service.GetMovieByTitle(r.Context(), title)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// UpdateMovie handles POST /movies/update/{title}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	title := titleParam(r)

	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.UpdateMovieByTitle(r.Context(), title, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /movies/{title}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	title := titleParam(r)

	if err := h.service.DeleteMovieByTitle(r.Context(), title); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}

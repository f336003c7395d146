package wire

import (
	"net/http"

	"popcorn-palace/internal/adaptor"
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/internal/event"
	"popcorn-palace/internal/usecase"
	"popcorn-palace/pkg/cache"
	"popcorn-palace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	cacheGroupMovies    = "movies"
	cacheGroupShowtimes = "showtimes"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router on top of repo. A nil
// publisher drops events; a cache without a Redis client passes through.
func Wiring(repo *repository.Repository, publisher event.Publisher, responseCache *cache.Cache, logger *zap.Logger) *App {
	service := usecase.NewService(repo, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, responseCache, logger),
	}
}

func setupRouter(handler *adaptor.Handler, responseCache *cache.Cache, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireMovie(r, handler.Movie, responseCache)
	wireShowtime(r, handler.Showtime, responseCache)
	wireBooking(r, handler.Booking)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

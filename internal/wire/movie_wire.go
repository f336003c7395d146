package wire

import (
	"popcorn-palace/internal/adaptor"
	"popcorn-palace/pkg/cache"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, responseCache *cache.Cache) {
	r.Route("/movies", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(responseCache.Middleware(cacheGroupMovies))
			r.Get("/all", movieHandler.GetAllMovies)
			r.Get("/{title}", movieHandler.GetMovieByTitle)
		})

		r.Group(func(r chi.Router) {
			r.Use(responseCache.Invalidate(cacheGroupMovies))
			r.Post("/", movieHandler.CreateMovie)
			r.Post("/update/{title}", movieHandler.UpdateMovie)
			r.Delete("/{title}", movieHandler.DeleteMovie)
		})
	})
}

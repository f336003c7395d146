package wire

import (
	"popcorn-palace/internal/adaptor"
	"popcorn-palace/pkg/cache"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler, responseCache *cache.Cache) {
	r.Route("/showtimes", func(r chi.Router) {
		r.With(responseCache.Middleware(cacheGroupShowtimes)).
			Get("/{showtimeId}", showtimeHandler.GetShowtime)

		r.Group(func(r chi.Router) {
			r.Use(responseCache.Invalidate(cacheGroupShowtimes))
			r.Post("/", showtimeHandler.CreateShowtime)
			r.Post("/update/{showtimeId}", showtimeHandler.UpdateShowtime)
			r.Delete("/{showtimeId}", showtimeHandler.DeleteShowtime)
		})
	})
}

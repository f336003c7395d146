package usecase

import (
	"context"

	"popcorn-palace/internal/data/repository"
	"popcorn-palace/internal/event"

	"go.uber.org/zap"
)

type Service struct {
	Movie    MovieService
	Showtime ShowtimeService
	Booking  BookingService
}

func NewService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) *Service {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}

	return &Service{
		Movie:    NewMovieService(repo, publisher, log),
		Showtime: NewShowtimeService(repo, publisher, log),
		Booking:  NewBookingService(repo, publisher, log),
	}
}

// publish runs after the unit of work committed. A broker failure never
// fails the request that produced the event.
func publish(ctx context.Context, publisher event.Publisher, log *zap.Logger, eventType string, payload any) {
	if err := publisher.Publish(ctx, event.New(eventType, payload)); err != nil {
		log.Warn("Failed to publish event",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

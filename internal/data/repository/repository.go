package repository

import (
	"context"
	"strconv"
	"time"

	"popcorn-palace/internal/data/entity"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindByTitle(ctx context.Context, title string) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	DeleteByTitle(ctx context.Context, title string) error
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id int64) error

	// FindOverlapping returns showtimes in theater whose [start_time, end_time)
	// intersects [start, end).
	FindOverlapping(ctx context.Context, theater string, start, end time.Time) ([]*entity.Showtime, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	ExistsSeatBooking(ctx context.Context, showtimeID int64, seatNumber int) (bool, error)
}

// AtomicFunc runs fn against repositories bound to a single atomic unit of
// work. Units that share any key never run concurrently.
type AtomicFunc func(ctx context.Context, keys []string, fn func(repo *Repository) error) error

type Repository struct {
	Movie    MovieRepository
	Showtime ShowtimeRepository
	Booking  BookingRepository

	atomic AtomicFunc
}

// New assembles a Repository from store-specific parts. Store packages
// (postgres here, boltstore, memstore) are the only callers.
func New(movie MovieRepository, showtime ShowtimeRepository, booking BookingRepository, atomic AtomicFunc) *Repository {
	return &Repository{
		Movie:    movie,
		Showtime: showtime,
		Booking:  booking,
		atomic:   atomic,
	}
}

// Atomic executes fn as one all-or-nothing unit serialised on keys. If fn
// returns an error nothing it wrote is kept.
func (r *Repository) Atomic(ctx context.Context, keys []string, fn func(repo *Repository) error) error {
	return r.atomic(ctx, keys, fn)
}

// Lock keys shared by every store implementation.
func TheaterKey(theater string) string { return "theater:" + theater }

func ShowtimeKey(id int64) string { return "showtime:" + strconv.FormatInt(id, 10) }

func MovieTitleKey(title string) string { return "movie:" + title }

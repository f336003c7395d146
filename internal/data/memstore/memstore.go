// Package memstore keeps movies, showtimes and bookings in process memory.
// It is used by tests and by the "memory" store driver.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"

	"github.com/google/uuid"
)

type seatKey struct {
	showtimeID int64
	seatNumber int
}

type state struct {
	mu sync.RWMutex

	movieSeq    int64
	showtimeSeq int64

	movies    map[int64]entity.Movie
	showtimes map[int64]entity.Showtime
	bookings  map[uuid.UUID]entity.Booking
	seats     map[seatKey]uuid.UUID

	locks *keyedMutex
}

// New returns a Repository backed by maps. Atomic units hold a mutex per key
// for their whole duration; each individual call additionally takes the
// store-wide lock. Writes are not rolled back, so a unit must write last.
func New() *repository.Repository {
	s := &state{
		movies:    make(map[int64]entity.Movie),
		showtimes: make(map[int64]entity.Showtime),
		bookings:  make(map[uuid.UUID]entity.Booking),
		seats:     make(map[seatKey]uuid.UUID),
		locks:     newKeyedMutex(),
	}

	var repo *repository.Repository
	repo = repository.New(
		&movieRepository{s},
		&showtimeRepository{s},
		&bookingRepository{s},
		func(ctx context.Context, keys []string, fn func(r *repository.Repository) error) error {
			unlock := s.locks.lock(keys)
			defer unlock()

			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(repo)
		},
	)
	return repo
}

type movieRepository struct{ s *state }

func (r *movieRepository) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.movies {
		if m.Title == movie.Title {
			return repository.ErrDuplicate
		}
	}

	r.s.movieSeq++
	movie.ID = r.s.movieSeq
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *movieRepository) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *movieRepository) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.movies {
		if m.Title == title {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *movieRepository) FindAll(_ context.Context) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	movies := make([]*entity.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		movies = append(movies, &m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (r *movieRepository) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[movie.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, m := range r.s.movies {
		if id != movie.ID && m.Title == movie.Title {
			return repository.ErrDuplicate
		}
	}

	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *movieRepository) DeleteByTitle(_ context.Context, title string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, m := range r.s.movies {
		if m.Title == title {
			delete(r.s.movies, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

type showtimeRepository struct{ s *state }

func (r *showtimeRepository) Create(_ context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.showtimeSeq++
	showtime.ID = r.s.showtimeSeq
	r.s.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *showtimeRepository) FindByID(_ context.Context, id int64) (*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.showtimes[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *showtimeRepository) FindOverlapping(_ context.Context, theater string, start, end time.Time) ([]*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found []*entity.Showtime
	for _, st := range r.s.showtimes {
		if st.Theater == theater && st.Overlaps(start, end) {
			found = append(found, &st)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].StartTime.Equal(found[j].StartTime) {
			return found[i].ID < found[j].ID
		}
		return found[i].StartTime.Before(found[j].StartTime)
	})
	return found, nil
}

func (r *showtimeRepository) Update(_ context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.showtimes[showtime.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *showtimeRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.showtimes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.showtimes, id)
	return nil
}

type bookingRepository struct{ s *state }

func (r *bookingRepository) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := seatKey{booking.ShowtimeID, booking.SeatNumber}
	if _, taken := r.s.seats[key]; taken {
		return repository.ErrDuplicate
	}
	r.s.seats[key] = booking.ID
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r *bookingRepository) ExistsSeatBooking(_ context.Context, showtimeID int64, seatNumber int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, taken := r.s.seats[seatKey{showtimeID, seatNumber}]
	return taken, nil
}

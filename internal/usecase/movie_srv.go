package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/dto/response"
	"popcorn-palace/internal/event"

	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetAllMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByTitle(ctx context.Context, title string) (*response.MovieResponse, error)
	UpdateMovieByTitle(ctx context.Context, title string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovieByTitle(ctx context.Context, title string) error
}

type movieService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
}

func NewMovieService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) MovieService {
	return &movieService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "movie")),
	}
}

// resolveMovie loads a movie inside an atomic unit, translating a miss into
// ErrMovieNotFound. The scheduler uses it to check showtime references.
func resolveMovie(ctx context.Context, movies repository.MovieRepository, id int64) (*entity.Movie, error) {
	movie, err := movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, ErrMovieNotFound)
	}
	return movie, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	now := time.Now().UTC()
	movie := &entity.Movie{
		Base:        entity.Base{CreatedAt: now, UpdatedAt: now},
		Title:       req.Title,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Rating:      *req.Rating,
		ReleaseYear: req.ReleaseYear,
	}

	err := s.repo.Atomic(ctx, []string{repository.MovieTitleKey(req.Title)}, func(r *repository.Repository) error {
		existing, err := r.Movie.FindByTitle(ctx, req.Title)
		if err != nil {
			return fmt.Errorf("find movie by title: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("movie %q: %w", req.Title, ErrDuplicateTitle)
		}

		if err := r.Movie.Create(ctx, movie); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("movie %q: %w", req.Title, ErrDuplicateTitle)
			}
			return fmt.Errorf("create movie: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			s.log.Warn("Movie title already exists", zap.String("title", req.Title))
		} else {
			s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		}
		return nil, err
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	publish(ctx, s.publisher, s.log, event.MovieCreated, resp)
	return &resp, nil
}

func (s *movieService) GetAllMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.log.Debug("Movies retrieved", zap.Int("count", len(movies)))
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovieByTitle(ctx context.Context, title string) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByTitle(ctx, title)
	if err != nil {
		s.log.Error("Failed to get movie by title", zap.Error(err), zap.String("title", title))
		return nil, fmt.Errorf("get movie by title: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %q: %w", title, ErrMovieNotFound)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovieByTitle(ctx context.Context, title string, req *request.MovieRequest) (*response.MovieResponse, error) {
	keys := []string{repository.MovieTitleKey(title), repository.MovieTitleKey(req.Title)}

	var movie *entity.Movie
	err := s.repo.Atomic(ctx, keys, func(r *repository.Repository) error {
		current, err := r.Movie.FindByTitle(ctx, title)
		if err != nil {
			return fmt.Errorf("find movie by title: %w", err)
		}
		if current == nil {
			return fmt.Errorf("movie %q: %w", title, ErrMovieNotFound)
		}

		if req.Title != title {
			taken, err := r.Movie.FindByTitle(ctx, req.Title)
			if err != nil {
				return fmt.Errorf("find movie by title: %w", err)
			}
			if taken != nil {
				return fmt.Errorf("movie %q: %w", req.Title, ErrDuplicateTitle)
			}
		}

		// Full replacement; id and creation time survive.
		current.Title = req.Title
		current.Genre = req.Genre
		current.Duration = req.Duration
		current.Rating = *req.Rating
		current.ReleaseYear = req.ReleaseYear
		current.UpdatedAt = time.Now().UTC()

		if err := r.Movie.Update(ctx, current); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("movie %q: %w", req.Title, ErrDuplicateTitle)
			}
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("movie %q: %w", title, ErrMovieNotFound)
			}
			return fmt.Errorf("update movie: %w", err)
		}
		movie = current
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMovieNotFound), errors.Is(err, ErrDuplicateTitle):
			s.log.Warn("Movie update rejected", zap.Error(err), zap.String("title", title))
		default:
			s.log.Error("Failed to update movie", zap.Error(err), zap.String("title", title))
		}
		return nil, err
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", movie.ID),
		zap.String("old_title", title),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	publish(ctx, s.publisher, s.log, event.MovieUpdated, resp)
	return &resp, nil
}

func (s *movieService) DeleteMovieByTitle(ctx context.Context, title string) error {
	err := s.repo.Atomic(ctx, []string{repository.MovieTitleKey(title)}, func(r *repository.Repository) error {
		if err := r.Movie.DeleteByTitle(ctx, title); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("movie %q: %w", title, ErrMovieNotFound)
			}
			return fmt.Errorf("delete movie: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			s.log.Warn("Movie to delete not found", zap.String("title", title))
		} else {
			s.log.Error("Failed to delete movie", zap.Error(err), zap.String("title", title))
		}
		return err
	}

	s.log.Info("Movie deleted", zap.String("title", title))
	publish(ctx, s.publisher, s.log, event.MovieDeleted, map[string]string{"title": title})
	return nil
}

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

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	GetShowtimeByID(ctx context.Context, id int64) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id int64, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id int64) error
}

type showtimeService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "showtime")),
	}
}

func resolveShowtime(ctx context.Context, showtimes repository.ShowtimeRepository, id int64) (*entity.Showtime, error) {
	showtime, err := showtimes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find showtime %d: %w", id, err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %d: %w", id, ErrShowtimeNotFound)
	}
	return showtime, nil
}

// checkConflicts fails with ErrScheduleConflict when any showtime in theater
// other than exclude intersects [start, end). Pass exclude 0 on create.
func checkConflicts(ctx context.Context, showtimes repository.ShowtimeRepository, theater string, start, end time.Time, exclude int64) error {
	overlapping, err := showtimes.FindOverlapping(ctx, theater, start, end)
	if err != nil {
		return fmt.Errorf("find overlapping showtimes: %w", err)
	}

	for _, other := range overlapping {
		if other.ID == exclude {
			continue
		}
		return fmt.Errorf("theater %q conflicts with showtime %d: %w", theater, other.ID, ErrScheduleConflict)
	}
	return nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if !entity.ValidInterval(req.StartTime, req.EndTime) {
		return nil, ErrInvalidInterval
	}

	now := time.Now().UTC()
	showtime := &entity.Showtime{
		Base:      entity.Base{CreatedAt: now, UpdatedAt: now},
		MovieID:   req.MovieID,
		Theater:   req.Theater,
		Price:     *req.Price,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
	}

	err := s.repo.Atomic(ctx, []string{repository.TheaterKey(req.Theater)}, func(r *repository.Repository) error {
		if _, err := resolveMovie(ctx, r.Movie, req.MovieID); err != nil {
			return err
		}
		if err := checkConflicts(ctx, r.Showtime, showtime.Theater, showtime.StartTime, showtime.EndTime, 0); err != nil {
			return err
		}
		if err := r.Showtime.Create(ctx, showtime); err != nil {
			return fmt.Errorf("create showtime: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logWriteError("create", err, zap.String("theater", req.Theater), zap.Int64("movie_id", req.MovieID))
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.String("theater", showtime.Theater),
		zap.Time("start_time", showtime.StartTime),
		zap.Time("end_time", showtime.EndTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	publish(ctx, s.publisher, s.log, event.ShowtimeCreated, resp)
	return &resp, nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, id int64) (*response.ShowtimeResponse, error) {
	showtime, err := resolveShowtime(ctx, s.repo.Showtime, id)
	if err != nil {
		if !errors.Is(err, ErrShowtimeNotFound) {
			s.log.Error("Failed to get showtime", zap.Error(err), zap.Int64("showtime_id", id))
		}
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, id int64, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if !entity.ValidInterval(req.StartTime, req.EndTime) {
		return nil, ErrInvalidInterval
	}

	keys := []string{repository.TheaterKey(req.Theater), repository.ShowtimeKey(id)}

	var showtime *entity.Showtime
	err := s.repo.Atomic(ctx, keys, func(r *repository.Repository) error {
		current, err := resolveShowtime(ctx, r.Showtime, id)
		if err != nil {
			return err
		}
		if _, err := resolveMovie(ctx, r.Movie, req.MovieID); err != nil {
			return err
		}

		start, end := req.StartTime.UTC(), req.EndTime.UTC()
		if err := checkConflicts(ctx, r.Showtime, req.Theater, start, end, id); err != nil {
			return err
		}

		current.MovieID = req.MovieID
		current.Theater = req.Theater
		current.Price = *req.Price
		current.StartTime = start
		current.EndTime = end
		current.UpdatedAt = time.Now().UTC()

		if err := r.Showtime.Update(ctx, current); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("showtime %d: %w", id, ErrShowtimeNotFound)
			}
			return fmt.Errorf("update showtime: %w", err)
		}
		showtime = current
		return nil
	})
	if err != nil {
		s.logWriteError("update", err, zap.Int64("showtime_id", id), zap.String("theater", req.Theater))
		return nil, err
	}

	s.log.Info("Showtime updated",
		zap.Int64("showtime_id", showtime.ID),
		zap.String("theater", showtime.Theater),
	)

	resp := response.ShowtimeToResponse(showtime)
	publish(ctx, s.publisher, s.log, event.ShowtimeUpdated, resp)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, id int64) error {
	err := s.repo.Atomic(ctx, []string{repository.ShowtimeKey(id)}, func(r *repository.Repository) error {
		if err := r.Showtime.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("showtime %d: %w", id, ErrShowtimeNotFound)
			}
			return fmt.Errorf("delete showtime: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logWriteError("delete", err, zap.Int64("showtime_id", id))
		return err
	}

	s.log.Info("Showtime deleted", zap.Int64("showtime_id", id))
	publish(ctx, s.publisher, s.log, event.ShowtimeDeleted, map[string]int64{"id": id})
	return nil
}

// logWriteError logs expected domain rejections as warnings and everything
// else as errors.
func (s *showtimeService) logWriteError(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("operation", op), zap.Error(err))

	switch {
	case errors.Is(err, ErrMovieNotFound),
		errors.Is(err, ErrShowtimeNotFound),
		errors.Is(err, ErrScheduleConflict):
		s.log.Warn("Showtime write rejected", fields...)
	default:
		s.log.Error("Showtime write failed", fields...)
	}
}

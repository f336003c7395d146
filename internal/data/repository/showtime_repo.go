package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const showtimeColumns = `id, movie_id, theater, price, start_time, end_time, created_at, updated_at`

type showtimeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewShowtimeRepository(db database.Querier, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, theater, price, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		showtime.MovieID,
		showtime.Theater,
		showtime.Price,
		showtime.StartTime,
		showtime.EndTime,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	).Scan(&showtime.ID)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.Int64("movie_id", showtime.MovieID),
			zap.String("theater", showtime.Theater),
			zap.Time("start_time", showtime.StartTime),
		)
		return fmt.Errorf("create showtime for movie %d in theater %q: %w",
			showtime.MovieID, showtime.Theater, err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	showtime, err := scanShowtime(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return nil, fmt.Errorf("find showtime by ID %d: %w", id, err)
	}

	return showtime, nil
}

func (r *showtimeRepository) FindOverlapping(ctx context.Context, theater string, start, end time.Time) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE theater = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time, id
	`

	rows, err := r.db.Query(ctx, query, theater, start, end)
	if err != nil {
		r.log.Error("Failed to find overlapping showtimes",
			zap.Error(err),
			zap.String("theater", theater),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return nil, fmt.Errorf("find overlapping showtimes in theater %q: %w", theater, err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			return nil, fmt.Errorf("scan showtime: %w", err)
		}
		showtimes = append(showtimes, showtime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate showtimes: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, theater = $3, price = $4, start_time = $5, end_time = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.Theater,
		showtime.Price,
		showtime.StartTime,
		showtime.EndTime,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.Int64("showtime_id", showtime.ID),
		)
		return fmt.Errorf("update showtime %d: %w", showtime.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update showtime %d: %w", showtime.ID, ErrNotFound)
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return fmt.Errorf("delete showtime %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete showtime %d: %w", id, ErrNotFound)
	}

	r.log.Info("Showtime deleted", zap.Int64("showtime_id", id))
	return nil
}

func scanShowtime(row pgx.Row) (*entity.Showtime, error) {
	var showtime entity.Showtime
	err := row.Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.Price,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

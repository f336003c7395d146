package repository

import (
	"context"
	"errors"
	"fmt"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/pkg/database"

	"go.uber.org/zap"
)

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, showtime_id, seat_number, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ShowtimeID,
		booking.SeatNumber,
		booking.UserID,
		booking.CreatedAt,
	)

	if err != nil {
		err = mapPgError(err)
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.Int64("showtime_id", booking.ShowtimeID),
				zap.Int("seat_number", booking.SeatNumber),
			)
		}
		return fmt.Errorf("create booking for showtime %d seat %d: %w",
			booking.ShowtimeID, booking.SeatNumber, err)
	}

	return nil
}

func (r *bookingRepository) ExistsSeatBooking(ctx context.Context, showtimeID int64, seatNumber int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE showtime_id = $1 AND seat_number = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, showtimeID, seatNumber).Scan(&exists); err != nil {
		r.log.Error("Failed to check seat booking",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Int("seat_number", seatNumber),
		)
		return false, fmt.Errorf("check seat %d for showtime %d: %w", seatNumber, showtimeID, err)
	}

	return exists, nil
}

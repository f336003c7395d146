package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking rows are append-only; there is no UpdatedAt.
type Booking struct {
	ID         uuid.UUID `db:"id"`
	ShowtimeID int64     `db:"showtime_id"`
	SeatNumber int       `db:"seat_number"`
	UserID     string    `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}

package entity

import (
	"time"
)

type Showtime struct {
	Base
	MovieID   int64     `db:"movie_id"`
	Theater   string    `db:"theater"`
	Price     float64   `db:"price"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// Overlaps reports whether the showtime's [StartTime, EndTime) interval
// intersects [start, end). Intervals that only touch do not overlap.
func (s *Showtime) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}

// ValidInterval reports whether end is strictly after start.
func ValidInterval(start, end time.Time) bool {
	return end.After(start)
}

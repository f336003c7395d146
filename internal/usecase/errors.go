package usecase

import "errors"

var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrShowtimeNotFound  = errors.New("showtime not found")
	ErrDuplicateTitle    = errors.New("a movie with this title already exists")
	ErrScheduleConflict  = errors.New("showtime overlaps another showtime in the same theater")
	ErrSeatAlreadyBooked = errors.New("seat is already booked for this showtime")
	ErrInvalidInterval   = errors.New("end time must be after start time")
)

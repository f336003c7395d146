package repository

import "errors"

// ErrNotFound is returned by Update/Delete when no row matches the key.
// Find methods return (nil, nil) for a miss instead.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when the store rejects a write because of a
// uniqueness constraint (movie title, showtime seat).
var ErrDuplicate = errors.New("duplicate record")

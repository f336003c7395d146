// Package boltstore persists movies, showtimes and bookings in a single
// BoltDB file.
//
// Values are JSON documents keyed by their id (8-byte big-endian for numeric
// ids so cursors walk in insertion order). Two index buckets back the
// uniqueness rules: movie_titles maps a title to its movie id and seats maps
// "showtimeID:seatNumber" to the booking id.
//
// Bolt allows a single read-write transaction at a time, so Atomic simply
// runs the unit inside db.Update and ignores the lock keys.
package boltstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"popcorn-palace/internal/data/repository"

	bolt "github.com/boltdb/bolt"
)

var (
	bucketMovies      = []byte("movies")
	bucketMovieTitles = []byte("movie_titles")
	bucketShowtimes   = []byte("showtimes")
	bucketBookings    = []byte("bookings")
	bucketSeats       = []byte("seats")
)

// Store owns the Bolt file handle.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path and makes sure every bucket
// exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketMovies, bucketMovieTitles, bucketShowtimes, bucketBookings, bucketSeats} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Repository returns repositories backed by the store.
func (s *Store) Repository() *repository.Repository {
	atomic := func(ctx context.Context, _ []string, fn func(r *repository.Repository) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return s.db.Update(func(tx *bolt.Tx) error {
			var scoped *repository.Repository
			scoped = newRepository(&txScope{db: s.db, tx: tx},
				func(_ context.Context, _ []string, inner func(r *repository.Repository) error) error {
					return inner(scoped)
				})
			return fn(scoped)
		})
	}
	return newRepository(&txScope{db: s.db}, atomic)
}

func newRepository(scope *txScope, atomic repository.AtomicFunc) *repository.Repository {
	return repository.New(
		&movieRepository{scope},
		&showtimeRepository{scope},
		&bookingRepository{scope},
		atomic,
	)
}

// txScope runs reads and writes either in the bound transaction (inside an
// atomic unit) or in a fresh one.
type txScope struct {
	db *bolt.DB
	tx *bolt.Tx
}

func (s *txScope) view(fn func(tx *bolt.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.View(fn)
}

func (s *txScope) update(fn func(tx *bolt.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.Update(fn)
}

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func put(b *bolt.Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put(key, data)
}

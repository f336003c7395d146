package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"

	bolt "github.com/boltdb/bolt"
)

type showtimeRepository struct{ scope *txScope }

func (r *showtimeRepository) Create(_ context.Context, showtime *entity.Showtime) error {
	return r.scope.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketShowtimes)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		showtime.ID = int64(seq)
		return put(b, itob(showtime.ID), showtime)
	})
}

func (r *showtimeRepository) FindByID(_ context.Context, id int64) (*entity.Showtime, error) {
	var showtime *entity.Showtime
	err := r.scope.view(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketShowtimes).Get(itob(id))
		if v == nil {
			return nil
		}
		showtime = &entity.Showtime{}
		return json.Unmarshal(v, showtime)
	})
	return showtime, err
}

// FindOverlapping scans the whole bucket; showtimes are not indexed by theater.
func (r *showtimeRepository) FindOverlapping(_ context.Context, theater string, start, end time.Time) ([]*entity.Showtime, error) {
	var found []*entity.Showtime
	err := r.scope.view(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketShowtimes).ForEach(func(_, v []byte) error {
			var st entity.Showtime
			if err := json.Unmarshal(v, &st); err != nil {
				return err
			}
			if st.Theater == theater && st.Overlaps(start, end) {
				found = append(found, &st)
			}
			return nil
		})
	})
	return found, err
}

func (r *showtimeRepository) Update(_ context.Context, showtime *entity.Showtime) error {
	return r.scope.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketShowtimes)
		if b.Get(itob(showtime.ID)) == nil {
			return fmt.Errorf("update showtime %d: %w", showtime.ID, repository.ErrNotFound)
		}
		return put(b, itob(showtime.ID), showtime)
	})
}

func (r *showtimeRepository) Delete(_ context.Context, id int64) error {
	return r.scope.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketShowtimes)
		if b.Get(itob(id)) == nil {
			return fmt.Errorf("delete showtime %d: %w", id, repository.ErrNotFound)
		}
		return b.Delete(itob(id))
	})
}

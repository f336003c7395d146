package boltstore

import (
	"context"
	"encoding/json"
	"fmt"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"

	bolt "github.com/boltdb/bolt"
)

type movieRepository struct{ scope *txScope }

func (r *movieRepository) Create(_ context.Context, movie *entity.Movie) error {
	return r.scope.update(func(tx *bolt.Tx) error {
		titles := tx.Bucket(bucketMovieTitles)
		if titles.Get([]byte(movie.Title)) != nil {
			return fmt.Errorf("create movie %q: %w", movie.Title, repository.ErrDuplicate)
		}

		movies := tx.Bucket(bucketMovies)
		seq, err := movies.NextSequence()
		if err != nil {
			return err
		}
		movie.ID = int64(seq)

		if err := titles.Put([]byte(movie.Title), itob(movie.ID)); err != nil {
			return err
		}
		return put(movies, itob(movie.ID), movie)
	})
}

func (r *movieRepository) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	var movie *entity.Movie
	err := r.scope.view(func(tx *bolt.Tx) error {
		var err error
		movie, err = getMovie(tx, itob(id))
		return err
	})
	return movie, err
}

func (r *movieRepository) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	var movie *entity.Movie
	err := r.scope.view(func(tx *bolt.Tx) error {
		id := tx.Bucket(bucketMovieTitles).Get([]byte(title))
		if id == nil {
			return nil
		}
		var err error
		movie, err = getMovie(tx, id)
		return err
	})
	return movie, err
}

func (r *movieRepository) FindAll(_ context.Context) ([]*entity.Movie, error) {
	movies := []*entity.Movie{}
	err := r.scope.view(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMovies).ForEach(func(_, v []byte) error {
			var m entity.Movie
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			movies = append(movies, &m)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) Update(_ context.Context, movie *entity.Movie) error {
	return r.scope.update(func(tx *bolt.Tx) error {
		existing, err := getMovie(tx, itob(movie.ID))
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("update movie %d: %w", movie.ID, repository.ErrNotFound)
		}

		titles := tx.Bucket(bucketMovieTitles)
		if existing.Title != movie.Title {
			if titles.Get([]byte(movie.Title)) != nil {
				return fmt.Errorf("rename movie to %q: %w", movie.Title, repository.ErrDuplicate)
			}
			if err := titles.Delete([]byte(existing.Title)); err != nil {
				return err
			}
			if err := titles.Put([]byte(movie.Title), itob(movie.ID)); err != nil {
				return err
			}
		}

		return put(tx.Bucket(bucketMovies), itob(movie.ID), movie)
	})
}

func (r *movieRepository) DeleteByTitle(_ context.Context, title string) error {
	return r.scope.update(func(tx *bolt.Tx) error {
		titles := tx.Bucket(bucketMovieTitles)
		id := titles.Get([]byte(title))
		if id == nil {
			return fmt.Errorf("delete movie %q: %w", title, repository.ErrNotFound)
		}
		// id points into the page; copy before mutating the bucket.
		key := append([]byte(nil), id...)
		if err := titles.Delete([]byte(title)); err != nil {
			return err
		}
		return tx.Bucket(bucketMovies).Delete(key)
	})
}

func getMovie(tx *bolt.Tx, key []byte) (*entity.Movie, error) {
	v := tx.Bucket(bucketMovies).Get(key)
	if v == nil {
		return nil, nil
	}
	var m entity.Movie
	if err := json.Unmarshal(v, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

package boltstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"popcorn-palace/internal/data/boltstore"
	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *boltstore.Store {
	t.Helper()
	s, err := boltstore.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMovieLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Repository()

	movie := &entity.Movie{Title: "Inception", Genre: "Sci-Fi", Duration: 148, Rating: 8.8, ReleaseYear: 2010}
	require.NoError(t, repo.Movie.Create(ctx, movie))
	assert.Equal(t, int64(1), movie.ID)

	err := repo.Movie.Create(ctx, &entity.Movie{Title: "Inception"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	movie.Title = "Inception (Director's Cut)"
	require.NoError(t, repo.Movie.Update(ctx, movie))

	old, err := repo.Movie.FindByTitle(ctx, "Inception")
	require.NoError(t, err)
	assert.Nil(t, old)

	renamed, err := repo.Movie.FindByTitle(ctx, "Inception (Director's Cut)")
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, movie.ID, renamed.ID)

	require.NoError(t, repo.Movie.DeleteByTitle(ctx, "Inception (Director's Cut)"))
	assert.ErrorIs(t, repo.Movie.DeleteByTitle(ctx, "Inception (Director's Cut)"), repository.ErrNotFound)

	all, err := repo.Movie.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestShowtimeOverlapAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Repository()
	ten := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	st := &entity.Showtime{MovieID: 1, Theater: "T1", Price: 12.5, StartTime: ten, EndTime: ten.Add(2 * time.Hour)}
	require.NoError(t, repo.Showtime.Create(ctx, st))

	found, err := repo.Showtime.FindOverlapping(ctx, "T1", ten.Add(time.Hour), ten.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, st.ID, found[0].ID)
	assert.True(t, found[0].StartTime.Equal(ten))

	found, err = repo.Showtime.FindOverlapping(ctx, "T1", ten.Add(2*time.Hour), ten.Add(4*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, found)

	st.Theater = "T2"
	require.NoError(t, repo.Showtime.Update(ctx, st))
	got, err := repo.Showtime.FindByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Theater)

	assert.ErrorIs(t, repo.Showtime.Update(ctx, &entity.Showtime{Base: entity.Base{ID: 99}}), repository.ErrNotFound)
	require.NoError(t, repo.Showtime.Delete(ctx, st.ID))
	assert.ErrorIs(t, repo.Showtime.Delete(ctx, st.ID), repository.ErrNotFound)
}

func TestBookingSeatIndex(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Repository()

	b := &entity.Booking{ID: uuid.New(), ShowtimeID: 5, SeatNumber: 3, UserID: "alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Booking.Create(ctx, b))

	exists, err := repo.Booking.ExistsSeatBooking(ctx, 5, 3)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Booking.ExistsSeatBooking(ctx, 5, 4)
	require.NoError(t, err)
	assert.False(t, exists)

	err = repo.Booking.Create(ctx, &entity.Booking{ID: uuid.New(), ShowtimeID: 5, SeatNumber: 3, UserID: "bob"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAtomicRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Repository()
	boom := errors.New("boom")

	err := repo.Atomic(ctx, []string{"movie:Heat"}, func(r *repository.Repository) error {
		if err := r.Movie.Create(ctx, &entity.Movie{Title: "Heat"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	movie, err := repo.Movie.FindByTitle(ctx, "Heat")
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := boltstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Repository().Movie.Create(ctx, &entity.Movie{Title: "Alien"}))
	require.NoError(t, s.Close())

	s, err = boltstore.Open(path)
	require.NoError(t, err)
	defer s.Close()

	movie, err := s.Repository().Movie.FindByTitle(ctx, "Alien")
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, int64(1), movie.ID)
}

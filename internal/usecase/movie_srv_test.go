package usecase_test

import (
	"context"
	"testing"

	"popcorn-palace/internal/event"
	"popcorn-palace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieService_CreateAndGet(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	created, err := svc.Movie.CreateMovie(ctx, movieReq("Inception"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Inception", created.Title)
	assert.Equal(t, 8.7, created.Rating)

	got, err := svc.Movie.GetMovieByTitle(ctx, "Inception")
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	assert.Equal(t, []string{event.MovieCreated}, pub.types())
}

func TestMovieService_CreateDuplicateTitle(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	_, err := svc.Movie.CreateMovie(ctx, movieReq("Inception"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = svc.Movie.CreateMovie(ctx, movieReq("Inception"))
		assert.ErrorIs(t, err, usecase.ErrDuplicateTitle, "attempt %d", i)

		all, err := svc.Movie.GetAllMovies(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1, "attempt %d", i)
		assert.Equal(t, []string{event.MovieCreated}, pub.types(), "attempt %d", i)
	}
}

func TestMovieService_TitleIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Movie.CreateMovie(ctx, movieReq("Alien"))
	require.NoError(t, err)
	_, err = svc.Movie.CreateMovie(ctx, movieReq("alien"))
	require.NoError(t, err)

	_, err = svc.Movie.GetMovieByTitle(ctx, "ALIEN")
	assert.ErrorIs(t, err, usecase.ErrMovieNotFound)
}

func TestMovieService_GetAllOrderedByID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	all, err := svc.Movie.GetAllMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, title := range []string{"C", "A", "B"} {
		_, err := svc.Movie.CreateMovie(ctx, movieReq(title))
		require.NoError(t, err)
	}

	all, err = svc.Movie.GetAllMovies(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C", all[0].Title)
	assert.Equal(t, "A", all[1].Title)
	assert.Equal(t, "B", all[2].Title)
}

func TestMovieService_UpdateByTitle(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	created, err := svc.Movie.CreateMovie(ctx, movieReq("Inception"))
	require.NoError(t, err)

	req := movieReq("Inception 2")
	req.Genre = "Sci-Fi"
	req.Rating = ptr(0.0)
	updated, err := svc.Movie.UpdateMovieByTitle(ctx, "Inception", req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Inception 2", updated.Title)
	assert.Equal(t, "Sci-Fi", updated.Genre)
	assert.Equal(t, 0.0, updated.Rating)

	_, err = svc.Movie.GetMovieByTitle(ctx, "Inception")
	assert.ErrorIs(t, err, usecase.ErrMovieNotFound)

	assert.Equal(t, []string{event.MovieCreated, event.MovieUpdated}, pub.types())
}

func TestMovieService_UpdateKeepsSameTitle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Movie.CreateMovie(ctx, movieReq("Inception"))
	require.NoError(t, err)

	req := movieReq("Inception")
	req.Duration = 148
	updated, err := svc.Movie.UpdateMovieByTitle(ctx, "Inception", req)
	require.NoError(t, err)
	assert.Equal(t, 148, updated.Duration)
}

func TestMovieService_UpdateErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Movie.UpdateMovieByTitle(ctx, "Missing", movieReq("Missing"))
	assert.ErrorIs(t, err, usecase.ErrMovieNotFound)

	_, err = svc.Movie.CreateMovie(ctx, movieReq("A"))
	require.NoError(t, err)
	_, err = svc.Movie.CreateMovie(ctx, movieReq("B"))
	require.NoError(t, err)

	_, err = svc.Movie.UpdateMovieByTitle(ctx, "A", movieReq("B"))
	assert.ErrorIs(t, err, usecase.ErrDuplicateTitle)

	a, err := svc.Movie.GetMovieByTitle(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
}

func TestMovieService_DeleteByTitle(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	_, err := svc.Movie.CreateMovie(ctx, movieReq("Inception"))
	require.NoError(t, err)

	require.NoError(t, svc.Movie.DeleteMovieByTitle(ctx, "Inception"))

	err = svc.Movie.DeleteMovieByTitle(ctx, "Inception")
	assert.ErrorIs(t, err, usecase.ErrMovieNotFound)

	all, err := svc.Movie.GetAllMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, []string{event.MovieCreated, event.MovieDeleted}, pub.types())
}

func TestMovieService_PublishFailureDoesNotFailWrite(t *testing.T) {
	svc, pub := newTestService(t)
	pub.err = errBroker
	ctx := context.Background()

	_, err := svc.Movie.CreateMovie(ctx, movieReq("Inception"))
	require.NoError(t, err)

	_, err = svc.Movie.GetMovieByTitle(ctx, "Inception")
	assert.NoError(t, err)
}

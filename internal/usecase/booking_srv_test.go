package usecase_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"popcorn-palace/internal/data/boltstore"
	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/event"
	"popcorn-palace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedShowtime(t *testing.T, svc *usecase.Service) int64 {
	t.Helper()
	movieID := seedMovie(t, svc, "Inception")
	st, err := svc.Showtime.CreateShowtime(context.Background(), showtimeReq(movieID, "T1", at(0), at(2)))
	require.NoError(t, err)
	return st.ID
}

func bookingReq(showtimeID int64, seat int, user string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{ShowtimeID: showtimeID, SeatNumber: seat, UserID: user}
}

func TestBookingService_Create(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()
	showtimeID := seedShowtime(t, svc)

	b, err := svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 15, "84438967-f68f-4fa0-b620-0f08217e76af"))
	require.NoError(t, err)

	_, err = uuid.Parse(b.BookingID)
	assert.NoError(t, err)
	assert.Equal(t, showtimeID, b.ShowtimeID)
	assert.Equal(t, 15, b.SeatNumber)

	other, err := svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 16, "someone"))
	require.NoError(t, err)
	assert.NotEqual(t, b.BookingID, other.BookingID)

	assert.Equal(t, event.BookingCreated, pub.types()[len(pub.types())-1])
}

func TestBookingService_SeatAlreadyBooked(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()
	showtimeID := seedShowtime(t, svc)

	_, err := svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 15, "alice"))
	require.NoError(t, err)
	before := len(pub.types())

	_, err = svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 15, "bob"))
	assert.ErrorIs(t, err, usecase.ErrSeatAlreadyBooked)

	// Same user again is still a conflict.
	_, err = svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 15, "alice"))
	assert.ErrorIs(t, err, usecase.ErrSeatAlreadyBooked)

	assert.Len(t, pub.types(), before)
}

func TestBookingService_SameSeatOtherShowtime(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	showtimeID := seedShowtime(t, svc)

	other, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(1, "T2", at(0), at(2)))
	require.NoError(t, err)

	_, err = svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 1, "alice"))
	require.NoError(t, err)
	_, err = svc.Booking.CreateBooking(ctx, bookingReq(other.ID, 1, "alice"))
	assert.NoError(t, err)
}

func TestBookingService_UnknownShowtime(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Booking.CreateBooking(context.Background(), bookingReq(7, 1, "alice"))
	assert.ErrorIs(t, err, usecase.ErrShowtimeNotFound)
}

func TestBookingService_DeletedShowtimeKeepsBookings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	showtimeID := seedShowtime(t, svc)

	_, err := svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 1, "alice"))
	require.NoError(t, err)
	require.NoError(t, svc.Showtime.DeleteShowtime(ctx, showtimeID))

	_, err = svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 2, "alice"))
	assert.ErrorIs(t, err, usecase.ErrShowtimeNotFound)
}

func TestBookingService_ConcurrentSameSeat(t *testing.T) {
	svc, _ := newTestService(t)
	assertSingleSeatWinner(t, svc)
}

func TestBookingService_ConcurrentSameSeatBolt(t *testing.T) {
	store, err := boltstore.Open(filepath.Join(t.TempDir(), "bookings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := usecase.NewService(store.Repository(), nil, zap.NewNop())
	assertSingleSeatWinner(t, svc)
}

func assertSingleSeatWinner(t *testing.T, svc *usecase.Service) {
	t.Helper()
	ctx := context.Background()
	showtimeID := seedShowtime(t, svc)

	const workers = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Booking.CreateBooking(ctx, bookingReq(showtimeID, 7, fmt.Sprintf("user-%d", i)))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, usecase.ErrSeatAlreadyBooked):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

package boltstore

import (
	"context"
	"fmt"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"

	bolt "github.com/boltdb/bolt"
)

type bookingRepository struct{ scope *txScope }

func seatIndexKey(showtimeID int64, seatNumber int) []byte {
	return []byte(fmt.Sprintf("%d:%d", showtimeID, seatNumber))
}

func (r *bookingRepository) Create(_ context.Context, booking *entity.Booking) error {
	return r.scope.update(func(tx *bolt.Tx) error {
		seats := tx.Bucket(bucketSeats)
		key := seatIndexKey(booking.ShowtimeID, booking.SeatNumber)
		if seats.Get(key) != nil {
			return fmt.Errorf("create booking for showtime %d seat %d: %w",
				booking.ShowtimeID, booking.SeatNumber, repository.ErrDuplicate)
		}
		if err := seats.Put(key, []byte(booking.ID.String())); err != nil {
			return err
		}
		return put(tx.Bucket(bucketBookings), []byte(booking.ID.String()), booking)
	})
}

func (r *bookingRepository) ExistsSeatBooking(_ context.Context, showtimeID int64, seatNumber int) (bool, error) {
	var exists bool
	err := r.scope.view(func(tx *bolt.Tx) error {
		exists = tx.Bucket(bucketSeats).Get(seatIndexKey(showtimeID, seatNumber)) != nil
		return nil
	})
	return exists, err
}

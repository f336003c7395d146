package response

import (
	"time"

	"popcorn-palace/internal/data/entity"
)

type BookingResponse struct {
	BookingID  string    `json:"bookingId"`
	ShowtimeID int64     `json:"showtimeId"`
	SeatNumber int       `json:"seatNumber"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		BookingID:  booking.ID.String(),
		ShowtimeID: booking.ShowtimeID,
		SeatNumber: booking.SeatNumber,
		UserID:     booking.UserID,
		CreatedAt:  booking.CreatedAt,
	}
}

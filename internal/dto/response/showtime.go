package response

import (
	"time"

	"popcorn-palace/internal/data/entity"
)

type ShowtimeResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	Theater   string    `json:"theater"`
	Price     float64   `json:"price"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID,
		MovieID:   showtime.MovieID,
		Theater:   showtime.Theater,
		Price:     showtime.Price,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
	}
}

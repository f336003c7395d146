package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/dto/response"
	"popcorn-palace/internal/event"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	booking := &entity.Booking{
		ID:         uuid.New(),
		ShowtimeID: req.ShowtimeID,
		SeatNumber: req.SeatNumber,
		UserID:     req.UserID,
		CreatedAt:  time.Now().UTC(),
	}

	err := s.repo.Atomic(ctx, []string{repository.ShowtimeKey(req.ShowtimeID)}, func(r *repository.Repository) error {
		if _, err := resolveShowtime(ctx, r.Showtime, req.ShowtimeID); err != nil {
			return err
		}

		taken, err := r.Booking.ExistsSeatBooking(ctx, req.ShowtimeID, req.SeatNumber)
		if err != nil {
			return fmt.Errorf("check seat: %w", err)
		}
		if taken {
			return fmt.Errorf("showtime %d seat %d: %w", req.ShowtimeID, req.SeatNumber, ErrSeatAlreadyBooked)
		}

		if err := r.Booking.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("showtime %d seat %d: %w", req.ShowtimeID, req.SeatNumber, ErrSeatAlreadyBooked)
			}
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		fields := []zap.Field{
			zap.Error(err),
			zap.Int64("showtime_id", req.ShowtimeID),
			zap.Int("seat_number", req.SeatNumber),
			zap.String("user_id", req.UserID),
		}
		if errors.Is(err, ErrShowtimeNotFound) || errors.Is(err, ErrSeatAlreadyBooked) {
			s.log.Warn("Booking rejected", fields...)
		} else {
			s.log.Error("Failed to create booking", fields...)
		}
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("showtime_id", booking.ShowtimeID),
		zap.Int("seat_number", booking.SeatNumber),
	)

	resp := response.BookingToResponse(booking)
	publish(ctx, s.publisher, s.log, event.BookingCreated, resp)
	return &resp, nil
}

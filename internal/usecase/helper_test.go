package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"popcorn-palace/internal/data/memstore"
	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/event"
	"popcorn-palace/internal/usecase"

	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

func newTestService(t *testing.T) (*usecase.Service, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return usecase.NewService(memstore.New(), pub, zap.NewNop()), pub
}

func ptr[T any](v T) *T { return &v }

func movieReq(title string) *request.MovieRequest {
	return &request.MovieRequest{
		Title:       title,
		Genre:       "Action",
		Duration:    120,
		Rating:      ptr(8.7),
		ReleaseYear: 2025,
	}
}

var base = time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)

func at(hours float64) time.Time {
	return base.Add(time.Duration(hours * float64(time.Hour)))
}

func showtimeReq(movieID int64, theater string, start, end time.Time) *request.ShowtimeRequest {
	return &request.ShowtimeRequest{
		MovieID:   movieID,
		Price:     ptr(50.2),
		Theater:   theater,
		StartTime: start,
		EndTime:   end,
	}
}

var errBroker = errors.New("broker down")

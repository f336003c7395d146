package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShowtimeOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := &Showtime{StartTime: base, EndTime: base.Add(2 * time.Hour)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"same interval", base, base.Add(2 * time.Hour), true},
		{"starts inside", base.Add(time.Hour), base.Add(3 * time.Hour), true},
		{"ends inside", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"contains", base.Add(-time.Hour), base.Add(3 * time.Hour), true},
		{"contained", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"touching after", base.Add(2 * time.Hour), base.Add(4 * time.Hour), false},
		{"touching before", base.Add(-2 * time.Hour), base, false},
		{"disjoint", base.Add(5 * time.Hour), base.Add(6 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Overlaps(tt.start, tt.end))
		})
	}
}

func TestValidInterval(t *testing.T) {
	now := time.Now()
	assert.True(t, ValidInterval(now, now.Add(time.Minute)))
	assert.False(t, ValidInterval(now, now))
	assert.False(t, ValidInterval(now, now.Add(-time.Minute)))
}

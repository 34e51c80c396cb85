package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3)

	assert.Equal(t, 100*time.Millisecond, b.InitialDelay())
	assert.Equal(t, 30*time.Second, b.MaxDelay())
	assert.Equal(t, 2.0, b.Multiplier())
	assert.Equal(t, 0.1, b.Jitter())
	assert.Equal(t, 3, b.MaxAttempts())
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	b := NewExponentialBackoff(5, WithJitter(0), WithMaxDelay(time.Second))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{40, time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.NextDelay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	low := NewExponentialBackoff(1, WithJitter(0.5), WithRandom(func() float64 { return 0 }))
	high := NewExponentialBackoff(1, WithJitter(0.5), WithRandom(func() float64 { return 1 }))

	assert.Equal(t, 50*time.Millisecond, low.NextDelay(0))
	assert.Equal(t, 150*time.Millisecond, high.NextDelay(0))
}

func TestExponentialBackoff_Multiplier(t *testing.T) {
	b := NewExponentialBackoff(3, WithJitter(0), WithMultiplier(3), WithInitialDelay(10*time.Millisecond))

	assert.Equal(t, 90*time.Millisecond, b.NextDelay(2))
}

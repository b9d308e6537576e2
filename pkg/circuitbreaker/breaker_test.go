package circuitbreaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/solhop-labs/hopper/pkg/logger"
)

func TestCircuitBreaker(t *testing.T) {
	t.Run("trips after threshold failures inside the window", func(t *testing.T) {
		cb := New(true, 3, time.Minute, time.Minute, &logger.EmptyLogger{})

		assert.False(t, cb.RecordFailure())
		assert.False(t, cb.RecordFailure())
		assert.False(t, cb.IsOpen())
		assert.True(t, cb.RecordFailure())
		assert.True(t, cb.IsOpen())
	})

	t.Run("disabled breaker never opens", func(t *testing.T) {
		cb := New(false, 1, time.Minute, time.Minute, &logger.EmptyLogger{})

		assert.False(t, cb.RecordFailure())
		assert.False(t, cb.RecordFailure())
		assert.False(t, cb.IsOpen())
	})

	t.Run("success clears accumulated failures", func(t *testing.T) {
		cb := New(true, 3, time.Minute, time.Minute, &logger.EmptyLogger{})

		cb.RecordFailure()
		cb.RecordFailure()
		cb.RecordSuccess()
		assert.False(t, cb.RecordFailure())
		assert.False(t, cb.RecordFailure())
		assert.False(t, cb.IsOpen())
	})

	t.Run("closes again after the reset timeout", func(t *testing.T) {
		cb := New(true, 1, time.Minute, 10*time.Millisecond, &logger.EmptyLogger{})

		assert.True(t, cb.RecordFailure())
		assert.True(t, cb.IsOpen())

		time.Sleep(20 * time.Millisecond)
		assert.False(t, cb.IsOpen())
	})

	t.Run("manual reset closes the circuit", func(t *testing.T) {
		cb := New(true, 1, time.Minute, time.Minute, &logger.EmptyLogger{})

		cb.RecordFailure()
		assert.True(t, cb.IsOpen())

		cb.Reset()
		assert.False(t, cb.IsOpen())
		count, _, _, _ := cb.GetState()
		assert.Equal(t, 0, count)
	})

	t.Run("failures outside the window do not accumulate", func(t *testing.T) {
		cb := New(true, 2, 10*time.Millisecond, time.Minute, &logger.EmptyLogger{})

		cb.RecordFailure()
		time.Sleep(20 * time.Millisecond)
		assert.False(t, cb.RecordFailure())
		assert.False(t, cb.IsOpen())
	})
}

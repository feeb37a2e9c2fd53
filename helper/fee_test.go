package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCancellationDeadline(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC)

	deadline := CancellationDeadline(eventDate)

	assert.Equal(t, time.Date(2026, 6, 14, 19, 0, 0, 0, time.UTC), deadline)
}

func TestCanCancel_OutsideWindow(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC)

	now := eventDate.AddDate(0, 0, -5)
	assert.True(t, CanCancel(eventDate, now))
}

func TestCanCancel_InsideWindow(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC)

	now := eventDate.Add(-12 * time.Hour)
	assert.False(t, CanCancel(eventDate, now))
}

func TestCanCancel_ExactlyAtDeadline(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC)

	// The deadline itself is already too late.
	assert.False(t, CanCancel(eventDate, CancellationDeadline(eventDate)))
	assert.True(t, CanCancel(eventDate, CancellationDeadline(eventDate).Add(-time.Second)))
}

func TestCancellationFee_FarOut(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC)

	now := eventDate.AddDate(0, 0, -10)
	assert.Equal(t, 0.0, CancellationFee(eventDate, now))
}

func TestCancellationFee_InsideThreeDays(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC)

	now := eventDate.AddDate(0, 0, -2)
	assert.Equal(t, 150.0, CancellationFee(eventDate, now))
}

func TestCancellationFee_ExactlyThreeDays(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC)

	// Exactly 72 hours out is still free.
	now := eventDate.AddDate(0, 0, -3)
	assert.Equal(t, 0.0, CancellationFee(eventDate, now))

	assert.Equal(t, 150.0, CancellationFee(eventDate, now.Add(time.Second)))
}

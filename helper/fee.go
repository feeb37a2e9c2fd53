package helper

import (
	"time"

	"event_ticketing/constants"
)

// CancellationDeadline is the last instant at which a ticket for an event on
// eventDate may still be cancelled.
func CancellationDeadline(eventDate time.Time) time.Time {
	return eventDate.Add(-constants.CancellationDeadlineHours * time.Hour)
}

// CanCancel reports whether a cancellation at now is still inside the policy
// window.
func CanCancel(eventDate, now time.Time) bool {
	return now.Before(CancellationDeadline(eventDate))
}

// CancellationFee is a two-tier step function: a flat fee inside the final
// three days, zero before that. Exactly three days out is free.
func CancellationFee(eventDate, now time.Time) float64 {
	daysUntil := eventDate.Sub(now).Hours() / 24
	if daysUntil < constants.CancellationFeeWindowDays {
		return constants.CancellationFlatFee
	}
	return 0
}

package helper

import (
	"errors"

	"event_ticketing/model"

	"gorm.io/gorm"
)

// ErrInsufficientSeats is returned when a reservation asks for more seats
// than the event has left.
var ErrInsufficientSeats = errors.New("not enough seats available")

// ReserveSeats decrements an event's available seats by n. The decrement is a
// single conditional UPDATE, so two competing reservations can never both
// succeed on the last seats: whichever commits second affects zero rows and
// gets ErrInsufficientSeats.
func ReserveSeats(db *gorm.DB, eventId uint, n int) error {
	res := db.Model(&model.Event{}).
		Where("id = ? AND available_seats >= ?", eventId, n).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientSeats
	}
	return nil
}

// ReleaseSeats returns n seats to an event via an atomic increment. No upper
// bound is enforced here; callers must not release the same ticket twice.
func ReleaseSeats(db *gorm.DB, eventId uint, n int) error {
	return db.Model(&model.Event{}).
		Where("id = ?", eventId).
		UpdateColumn("available_seats", gorm.Expr("available_seats + ?", n)).Error
}

// ConfirmedSeatCount sums the seats of all confirmed tickets for an event.
func ConfirmedSeatCount(db *gorm.DB, eventId uint) (int, error) {
	var total *int
	err := db.Model(&model.Ticket{}).
		Where("event_id = ? AND status = ?", eventId, "confirmed").
		Select("SUM(seats)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

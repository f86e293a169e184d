package domain

import (
	"github.com/juju/errors"

	"healthcommunity/internal/models"
)

var bookingTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

// NextBookingStatus validates a booking lifecycle move.
func NextBookingStatus(from, to string) error {
	if from == to {
		return nil
	}
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return errors.BadRequestf("booking cannot move from %q to %q", from, to)
}

// ScheduleStatusFor maps a booking status onto its slot's status.
func ScheduleStatusFor(bookingStatus string) string {
	switch bookingStatus {
	case models.BookingCancelled:
		return models.ScheduleAvailable
	case models.BookingCompleted:
		return models.ScheduleCompleted
	default:
		return models.ScheduleBooked
	}
}

// ValidateRating checks that feedback is only left on completed bookings.
func ValidateRating(status string, rating *int) error {
	if rating == nil {
		return nil
	}
	if status != models.BookingCompleted {
		return errors.BadRequestf("rating is only allowed after the consultation is completed")
	}
	if *rating < 1 || *rating > 5 {
		return errors.NotValidf("rating %d", *rating)
	}
	return nil
}

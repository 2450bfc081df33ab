package booking

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"bookingslots/internal/domain/event"
)

// Events is the slice of the repository the engine needs.
type Events interface {
	MutateBookings(eventID string, fn func(e event.Event) ([]event.Booking, error)) (event.Event, error)
}

// Engine validates and applies reservations against an event's capacity and
// email-uniqueness constraints. The checks run inside MutateBookings so they
// hold the repository's write lock; two callers racing for the last seat
// serialize there and exactly one wins.
type Engine struct {
	events Events
	log    *slog.Logger
}

func NewEngine(events Events, log *slog.Logger) *Engine {
	return &Engine{events: events, log: log}
}

// Book reserves one seat. First failing check wins:
// blank fields, then capacity, then duplicate email. The email comparison is
// an exact case-sensitive match.
func (en *Engine) Book(eventID, name, email string) (event.Booking, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return event.Booking{}, fmt.Errorf("%w: name is required", event.ErrValidation)
	}
	if email == "" {
		return event.Booking{}, fmt.Errorf("%w: email is required", event.ErrValidation)
	}

	var b event.Booking
	_, err := en.events.MutateBookings(eventID, func(e event.Event) ([]event.Booking, error) {
		if len(e.Bookings) >= e.MaxParticipants {
			return nil, event.ErrEventFull
		}

		for _, existing := range e.Bookings {
			if existing.Email == email {
				return nil, event.ErrAlreadyBooked
			}
		}

		b = event.NewBooking(name, email)
		return append(e.Bookings, b), nil
	})
	if err != nil {
		return event.Booking{}, err
	}

	en.log.Info("booking created", "event_id", eventID, "booking_id", b.ID)
	return b, nil
}

// Cancel removes one booking. Only admins reach this; visitors have no
// self-service cancellation.
func (en *Engine) Cancel(eventID, bookingID string) error {
	_, err := en.events.MutateBookings(eventID, func(e event.Event) ([]event.Booking, error) {
		i := slices.IndexFunc(e.Bookings, func(b event.Booking) bool {
			return b.ID == bookingID
		})
		if i < 0 {
			return nil, event.ErrBookingNotFound
		}
		return slices.Delete(e.Bookings, i, i+1), nil
	})
	if err != nil {
		return err
	}

	en.log.Info("booking cancelled", "event_id", eventID, "booking_id", bookingID)
	return nil
}

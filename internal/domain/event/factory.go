package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewFromCreateRequest builds an Event from the incoming DTO. The repository
// calls Validate first; the factory itself assigns identity only.
func NewFromCreateRequest(req CreateEventRequest) Event {
	return Event{
		ID:              uuid.NewString(),
		Date:            req.Date,
		Time:            req.Time,
		Topic:           strings.TrimSpace(req.Topic),
		MaxParticipants: req.MaxParticipants,
		Bookings:        []Booking{},
	}
}

func NewBooking(name, email string) Booking {
	return Booking{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		RegisteredAt: time.Now().UTC(),
	}
}

// Validate keeps the repository usable without the HTTP binding layer in
// front of it. First failing field wins.
func (req CreateEventRequest) Validate() error {
	return validateEventFields(req.Date, req.Time, req.Topic, req.MaxParticipants)
}

func (req UpdateEventRequest) Validate() error {
	return validateEventFields(req.Date, req.Time, req.Topic, req.MaxParticipants)
}

func validateEventFields(date, timeOfDay, topic string, maxParticipants int) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be formatted as %s", ErrValidation, DateLayout)
	}
	if strings.TrimSpace(timeOfDay) == "" {
		return fmt.Errorf("%w: time is required", ErrValidation)
	}
	if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return fmt.Errorf("%w: time must be formatted as %s", ErrValidation, TimeLayout)
	}
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if maxParticipants < 1 || maxParticipants > MaxCapacity {
		return fmt.Errorf("%w: maxParticipants must be between 1 and %d", ErrValidation, MaxCapacity)
	}
	return nil
}

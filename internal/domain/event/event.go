package event

import (
	"errors"
	"time"
)

// Wire formats of the persisted slot. Date and time stay strings on the
// Event itself so the stored JSON matches what the view layer submits.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// MaxCapacity is the ceiling for maxParticipants on create/update.
const MaxCapacity = 100

type Booking struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Event is a bookable time-slot. Bookings are owned exclusively by their
// event and kept in registration order.
type Event struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Topic           string    `json:"topic"`
	MaxParticipants int       `json:"maxParticipants"`
	Bookings        []Booking `json:"bookings"`
}

// AvailableSpots never goes negative, even when an admin edit has pushed an
// event over capacity.
func (e Event) AvailableSpots() int {
	spots := e.MaxParticipants - len(e.Bookings)
	if spots < 0 {
		return 0
	}
	return spots
}

// Status mirrors the occupancy badge of the original UI.
type Status string

const (
	StatusOpen    Status = "open"
	StatusFilling Status = "filling"
	StatusFull    Status = "full"
)

func (e Event) Status() Status {
	switch spots := e.AvailableSpots(); {
	case spots == 0:
		return StatusFull
	case spots <= 3:
		return StatusFilling
	default:
		return StatusOpen
	}
}

var (
	ErrNotFound        = errors.New("event not found")
	ErrValidation      = errors.New("validation error")
	ErrBookingNotFound = errors.New("booking not found")
	// error if event is full
	ErrEventFull = errors.New("event is full")
	// if the email already holds a booking on this event
	ErrAlreadyBooked = errors.New("email already booked for this event")
)

type CreateEventRequest struct {
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string `json:"time" binding:"required,datetime=15:04"`
	Topic           string `json:"topic" binding:"required,min=1,max=200"`
	MaxParticipants int    `json:"maxParticipants" binding:"required,min=1,max=100"`
}

// a full update payload, might switch to a patch which optionally provides
// means for partial updates.
type UpdateEventRequest struct {
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string `json:"time" binding:"required,datetime=15:04"`
	Topic           string `json:"topic" binding:"required,min=1,max=200"`
	MaxParticipants int    `json:"maxParticipants" binding:"required,min=1,max=100"`
}

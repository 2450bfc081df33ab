package booking_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"bookingslots/internal/booking"
	"bookingslots/internal/domain/event"
	"bookingslots/internal/repo"
)

// memorySlot keeps the engine tests running against the real repository.
type memorySlot struct {
	items []event.Event
}

func (m *memorySlot) Load() ([]event.Event, error) { return m.items, nil }

func (m *memorySlot) Save(events []event.Event) error {
	m.items = make([]event.Event, len(events))
	copy(m.items, events)
	return nil
}

func newEngine(t *testing.T, seed []event.Event) (*booking.Engine, *repo.EventsRepo) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r, err := repo.New(&memorySlot{items: seed}, nil, log)
	if err != nil {
		t.Fatalf("repo.New: %v", err)
	}
	return booking.NewEngine(r, log), r
}

func introEvent(capacity int, bookings ...event.Booking) event.Event {
	return event.Event{
		ID:              "ev-1",
		Date:            "2025-03-01",
		Time:            "09:00",
		Topic:           "Intro",
		MaxParticipants: capacity,
		Bookings:        bookings,
	}
}

func TestBookFillsLastSpotThenRejects(t *testing.T) {
	en, r := newEngine(t, []event.Event{introEvent(1)})

	b, err := en.Book("ev-1", "A", "a@x.com")
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if b.ID == "" || b.RegisteredAt.IsZero() {
		t.Fatalf("booking missing identity or timestamp: %+v", b)
	}

	e, _ := r.GetByID("ev-1")
	if e.AvailableSpots() != 0 {
		t.Fatalf("spots after booking = %d, want 0", e.AvailableSpots())
	}

	if _, err := en.Book("ev-1", "B", "b@x.com"); !errors.Is(err, event.ErrEventFull) {
		t.Fatalf("got %v, want ErrEventFull", err)
	}

	e, _ = r.GetByID("ev-1")
	if len(e.Bookings) != 1 {
		t.Fatalf("rejected booking changed the list, len=%d", len(e.Bookings))
	}
}

func TestBookDuplicateEmailLeavesListUnchanged(t *testing.T) {
	en, r := newEngine(t, []event.Event{introEvent(5)})

	if _, err := en.Book("ev-1", "A", "a@x.com"); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	if _, err := en.Book("ev-1", "Another A", "a@x.com"); !errors.Is(err, event.ErrAlreadyBooked) {
		t.Fatalf("got %v, want ErrAlreadyBooked", err)
	}

	e, _ := r.GetByID("ev-1")
	if len(e.Bookings) != 1 {
		t.Fatalf("duplicate changed the list, len=%d", len(e.Bookings))
	}
}

func TestBookEmailComparisonIsCaseSensitive(t *testing.T) {
	en, _ := newEngine(t, []event.Event{introEvent(5)})

	if _, err := en.Book("ev-1", "A", "a@x.com"); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// exact string match, so a different casing books a second seat
	if _, err := en.Book("ev-1", "A", "A@x.com"); err != nil {
		t.Fatalf("case-variant email rejected: %v", err)
	}
}

// First failing check wins: blank fields beat capacity, capacity beats
// duplicates.
func TestBookValidationOrder(t *testing.T) {
	full := introEvent(1, event.Booking{ID: "b1", Name: "A", Email: "a@x.com"})

	tests := []struct {
		name    string
		inName  string
		inEmail string
		wantErr error
	}{
		{"blank_name_wins_over_full", "   ", "a@x.com", event.ErrValidation},
		{"blank_email_wins_over_full", "B", "", event.ErrValidation},
		{"full_wins_over_duplicate", "A", "a@x.com", event.ErrEventFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			en, _ := newEngine(t, []event.Event{full})

			_, err := en.Book("ev-1", tt.inName, tt.inEmail)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookUnknownEvent(t *testing.T) {
	en, _ := newEngine(t, nil)

	if _, err := en.Book("missing", "A", "a@x.com"); !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestBookingsKeepRegistrationOrder(t *testing.T) {
	en, r := newEngine(t, []event.Event{introEvent(5)})

	for _, email := range []string{"1@x.com", "2@x.com", "3@x.com"} {
		if _, err := en.Book("ev-1", "N", email); err != nil {
			t.Fatalf("book %s: %v", email, err)
		}
	}

	e, _ := r.GetByID("ev-1")
	for i, want := range []string{"1@x.com", "2@x.com", "3@x.com"} {
		if e.Bookings[i].Email != want {
			t.Fatalf("booking %d = %s, want %s", i, e.Bookings[i].Email, want)
		}
	}
}

func TestCancelRemovesBookingAndFreesSpot(t *testing.T) {
	en, r := newEngine(t, []event.Event{introEvent(1)})

	b, err := en.Book("ev-1", "A", "a@x.com")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if err := en.Cancel("ev-1", b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	e, _ := r.GetByID("ev-1")
	if len(e.Bookings) != 0 {
		t.Fatalf("cancel left %d bookings", len(e.Bookings))
	}
	if e.AvailableSpots() != 1 {
		t.Fatalf("spots after cancel = %d, want 1", e.AvailableSpots())
	}

	// the seat is bookable again, by the same email too
	if _, err := en.Book("ev-1", "A", "a@x.com"); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

// Concurrent bookings with distinct emails into an event with room for all
// of them must all land; a lost update here means a caller was told 201 for
// a booking that never persisted.
func TestConcurrentBookingsAllPersist(t *testing.T) {
	const seats = 8

	en, r := newEngine(t, []event.Event{introEvent(seats)})

	var wg sync.WaitGroup
	for i := 0; i < seats; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("%d@x.com", n)
			if _, err := en.Book("ev-1", "N", email); err != nil {
				t.Errorf("book %s: %v", email, err)
			}
		}(i)
	}
	wg.Wait()

	e, _ := r.GetByID("ev-1")
	if len(e.Bookings) != seats {
		t.Fatalf("%d bookings persisted, want %d", len(e.Bookings), seats)
	}
	if e.AvailableSpots() != 0 {
		t.Fatalf("spots = %d, want 0", e.AvailableSpots())
	}
}

// Racing for the last seat: exactly one caller may win, the rest get
// ErrEventFull, and the list never exceeds capacity.
func TestConcurrentBookingsRespectCapacity(t *testing.T) {
	en, r := newEngine(t, []event.Event{introEvent(1)})

	const callers = 8

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := en.Book("ev-1", "N", fmt.Sprintf("%d@x.com", n))
			switch {
			case err == nil:
				wins.Add(1)
			case !errors.Is(err, event.ErrEventFull):
				t.Errorf("caller %d: got %v, want ErrEventFull", n, err)
			}
		}(i)
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("%d callers won the last seat, want exactly 1", wins.Load())
	}

	e, _ := r.GetByID("ev-1")
	if len(e.Bookings) != 1 {
		t.Fatalf("capacity exceeded: %d bookings on a 1-seat event", len(e.Bookings))
	}
}

func TestCancelErrors(t *testing.T) {
	en, _ := newEngine(t, []event.Event{introEvent(5)})

	if err := en.Cancel("missing", "b1"); !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := en.Cancel("ev-1", "missing"); !errors.Is(err, event.ErrBookingNotFound) {
		t.Fatalf("got %v, want ErrBookingNotFound", err)
	}
}

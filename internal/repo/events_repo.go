package repo

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"bookingslots/internal/domain/event"
	"bookingslots/internal/observability"
	"bookingslots/internal/store"
)

// Slot is the durable slot the repository writes through to. Kept small so
// tests can fake it easily.
type Slot interface {
	Load() ([]event.Event, error)
	Save(events []event.Event) error
}

// EventsRepo is a mutation/query façade over the one ordered event list.
// Every mutation rewrites the persisted slot in full before it returns; the
// in-memory list and the slot never diverge except while a save is failing.
type EventsRepo struct {
	mu    sync.RWMutex
	slot  Slot
	items []event.Event
	prom  *observability.Prom
	log   *slog.Logger
}

// New loads the current list from the slot. A corrupt slot degrades to the
// seed dataset instead of failing startup; the corrupt data stays on disk
// untouched until the next successful save.
func New(slot Slot, prom *observability.Prom, log *slog.Logger) (*EventsRepo, error) {
	items, err := slot.Load()
	if err != nil {
		if !errors.Is(err, store.ErrCorruptSlot) {
			return nil, fmt.Errorf("load events: %w", err)
		}
		log.Error("slot unreadable, serving seed dataset", "err", err)
	}

	return &EventsRepo{
		slot:  slot,
		items: items,
		prom:  prom,
		log:   log,
	}, nil
}

func (r *EventsRepo) Create(req event.CreateEventRequest) (event.Event, error) {
	if err := req.Validate(); err != nil {
		return event.Event{}, err
	}

	e := event.NewFromCreateRequest(req)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, e)

	if err := r.persistLocked("create"); err != nil {
		r.items = r.items[:len(r.items)-1]
		return event.Event{}, err
	}
	return cloneEvent(e), nil
}

// Update applies the given field changes in place and leaves the bookings
// list alone. Lowering maxParticipants below the current booking count is
// allowed; the event simply shows as over capacity downstream.
func (r *EventsRepo) Update(id string, req event.UpdateEventRequest) (event.Event, error) {
	if err := req.Validate(); err != nil {
		return event.Event{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return event.Event{}, event.ErrNotFound
	}

	prev := r.items[i]
	r.items[i].Date = req.Date
	r.items[i].Time = req.Time
	r.items[i].Topic = req.Topic
	r.items[i].MaxParticipants = req.MaxParticipants

	if err := r.persistLocked("update"); err != nil {
		r.items[i] = prev
		return event.Event{}, err
	}
	return cloneEvent(r.items[i]), nil
}

// Delete removes the event together with all bookings it owns. Asking the
// operator for confirmation is the view layer's job, not ours.
func (r *EventsRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return event.ErrNotFound
	}

	removed := r.items[i]
	r.items = slices.Delete(r.items, i, i+1)

	if err := r.persistLocked("delete"); err != nil {
		r.items = slices.Insert(r.items, i, removed)
		return err
	}
	return nil
}

// List returns the events in stored order. No implicit sort.
func (r *EventsRepo) List() []event.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, len(r.items))
	for i, e := range r.items {
		out[i] = cloneEvent(e)
	}
	return out
}

func (r *EventsRepo) GetByID(id string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return event.Event{}, event.ErrNotFound
	}
	return cloneEvent(r.items[i]), nil
}

// MutateBookings applies fn to the event's current booking list and persists
// the result, all under the write lock. fn receives a clone of the current
// state and returns the replacement list; the capacity and duplicate checks
// the booking engine runs in there therefore cannot race a concurrent
// booking into the same seat. An error from fn aborts without persisting.
func (r *EventsRepo) MutateBookings(eventID string, fn func(e event.Event) ([]event.Booking, error)) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(eventID)
	if i < 0 {
		return event.Event{}, event.ErrNotFound
	}

	bookings, err := fn(cloneEvent(r.items[i]))
	if err != nil {
		return event.Event{}, err
	}

	prev := r.items[i].Bookings
	r.items[i].Bookings = bookings

	if err := r.persistLocked("mutate_bookings"); err != nil {
		r.items[i].Bookings = prev
		return event.Event{}, err
	}
	return cloneEvent(r.items[i]), nil
}

func (r *EventsRepo) indexLocked(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *EventsRepo) persistLocked(op string) error {
	err := r.prom.ObserveStore(op, func() error {
		return r.slot.Save(r.items)
	})
	if err != nil {
		r.log.Error("persist events failed", "op", op, "err", err)
		return fmt.Errorf("persist events: %w", err)
	}
	return nil
}

// cloneEvent hands out an independent bookings slice so callers can never
// alias the owned list.
func cloneEvent(e event.Event) event.Event {
	e.Bookings = slices.Clone(e.Bookings)
	if e.Bookings == nil {
		e.Bookings = []event.Booking{}
	}
	return e
}

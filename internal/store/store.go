package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"bookingslots/internal/domain/event"
)

// SlotKey is the single durable key holding the serialized event list. The
// name is kept from the original browser build for drop-in data
// compatibility.
const SlotKey = "bookingEvents"

// ErrCorruptSlot is returned when the slot exists but does not deserialize.
// Callers degrade to the seed dataset instead of failing hard.
var ErrCorruptSlot = errors.New("slot data is corrupt")

// Backend is one durable local slot: a single blob that is read and
// overwritten whole. ok reports whether the slot exists at all.
type Backend interface {
	Read() (data []byte, ok bool, err error)
	Write(data []byte) error
	Close() error
}

// Store serializes the full event list in and out of a Backend. There is no
// partial write, no versioning and no migration format.
type Store struct {
	backend Backend
	log     *slog.Logger
}

func New(backend Backend, log *slog.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// Load reads the full event list. An absent slot is initialized with the
// fixed seed dataset, which is written back immediately so the next load
// sees it. A corrupt slot returns ErrCorruptSlot alongside the seed so the
// caller can keep serving.
func (s *Store) Load() ([]event.Event, error) {
	data, ok, err := s.backend.Read()
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}

	if !ok {
		seed := SeedEvents()
		if err := s.Save(seed); err != nil {
			return nil, fmt.Errorf("write seed: %w", err)
		}
		s.log.Info("slot absent, seeded sample events", "count", len(seed))
		return seed, nil
	}

	var events []event.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return SeedEvents(), fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}
	return events, nil
}

// Save overwrites the entire slot with the serialized list.
func (s *Store) Save(events []event.Event) error {
	if events == nil {
		events = []event.Event{}
	}

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	if err := s.backend.Write(data); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

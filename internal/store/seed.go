package store

import (
	"time"

	"github.com/google/uuid"

	"bookingslots/internal/domain/event"
)

// SeedEvents returns the fixed sample dataset used when the slot is empty or
// unreadable. Content matches the original demo data.
func SeedEvents() []event.Event {
	now := time.Now().UTC()

	return []event.Event{
		{
			ID:              uuid.NewString(),
			Date:            "2025-01-25",
			Time:            "14:00",
			Topic:           "Webový vývoj s React.js",
			MaxParticipants: 15,
			Bookings: []event.Booking{
				{
					ID:           uuid.NewString(),
					Name:         "Jana Nováková",
					Email:        "jana@example.com",
					RegisteredAt: now,
				},
			},
		},
		{
			ID:              uuid.NewString(),
			Date:            "2025-01-28",
			Time:            "10:30",
			Topic:           "UX/UI Design Workshop",
			MaxParticipants: 8,
			Bookings:        []event.Booking{},
		},
		{
			ID:              uuid.NewString(),
			Date:            "2025-02-02",
			Time:            "16:00",
			Topic:           "TypeScript Masterclass",
			MaxParticipants: 12,
			Bookings: []event.Booking{
				{
					ID:           uuid.NewString(),
					Name:         "Petr Svoboda",
					Email:        "petr@example.com",
					RegisteredAt: now,
				},
				{
					ID:           uuid.NewString(),
					Name:         "Marie Dvořáková",
					Email:        "marie@example.com",
					RegisteredAt: now,
				},
			},
		},
	}
}

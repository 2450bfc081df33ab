package handlers

import "bookingslots/internal/notify"

// Notifier is the boundary where every handler outcome becomes a transient
// user-facing toast. Failures push severity error and leave the triggering
// UI state to the view layer to preserve.
type Notifier interface {
	Push(message string, severity notify.Severity) notify.Notification
}

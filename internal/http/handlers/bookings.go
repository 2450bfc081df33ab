package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"bookingslots/internal/domain/event"
	"bookingslots/internal/notify"
)

type BookingEngine interface {
	Book(eventID, name, email string) (event.Booking, error)
	Cancel(eventID, bookingID string) error
}

type BookingsHandler struct {
	engine BookingEngine
	notes  Notifier
	// outcomes counter, may be nil in tests
	results *prometheus.CounterVec
}

func NewBookingsHandler(engine BookingEngine, notes Notifier, results *prometheus.CounterVec) *BookingsHandler {
	return &BookingsHandler{engine: engine, notes: notes, results: results}
}

type createBookingRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (h *BookingsHandler) Book(ctx *gin.Context) {
	eventID := ctx.Param("id")

	var req createBookingRequest
	if !BindJSON(ctx, &req) {
		h.notes.Push("Please fill in all fields", notify.SeverityError)
		h.count("rejected")
		return
	}

	b, err := h.engine.Book(eventID, req.Name, req.Email)
	if err != nil {
		h.count("rejected")
		switch {
		case errors.Is(err, event.ErrValidation):
			h.notes.Push("Please fill in all fields", notify.SeverityError)
			RespondBadRequest(ctx, err.Error(), nil)
		case errors.Is(err, event.ErrEventFull):
			h.notes.Push("This slot is already fully booked", notify.SeverityError)
			RespondConflict(ctx, "event_full", "This slot is already at full capacity.")
		case errors.Is(err, event.ErrAlreadyBooked):
			h.notes.Push("This email is already registered for this slot", notify.SeverityError)
			RespondConflict(ctx, "already_booked", "This email is already registered for this slot.")
		case errors.Is(err, event.ErrNotFound):
			h.notes.Push("Slot not found", notify.SeverityError)
			RespondNotFound(ctx, "Slot not found")
		default:
			h.notes.Push("Could not create booking", notify.SeverityError)
			RespondInternal(ctx, "Could not create booking")
		}
		return
	}

	h.count("created")
	h.notes.Push("Booking created", notify.SeveritySuccess)
	ctx.JSON(http.StatusCreated, b)
}

func (h *BookingsHandler) Cancel(ctx *gin.Context) {
	eventID := ctx.Param("id")
	bookingID := ctx.Param("bookingId")

	if err := h.engine.Cancel(eventID, bookingID); err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			h.notes.Push("Slot not found", notify.SeverityError)
			RespondNotFound(ctx, "Slot not found")
		case errors.Is(err, event.ErrBookingNotFound):
			h.notes.Push("Booking not found", notify.SeverityError)
			RespondNotFound(ctx, "Booking not found")
		default:
			h.notes.Push("Could not cancel booking", notify.SeverityError)
			RespondInternal(ctx, "Could not cancel booking")
		}
		return
	}

	h.count("cancelled")
	h.notes.Push("Booking cancelled", notify.SeverityInfo)
	ctx.Status(http.StatusNoContent)
}

func (h *BookingsHandler) count(result string) {
	if h.results != nil {
		h.results.WithLabelValues(result).Inc()
	}
}

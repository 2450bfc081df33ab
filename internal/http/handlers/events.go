package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingslots/internal/domain/event"
	"bookingslots/internal/notify"
)

type EventsRepository interface {
	Create(req event.CreateEventRequest) (event.Event, error)
	Update(id string, req event.UpdateEventRequest) (event.Event, error)
	Delete(id string) error
	List() []event.Event
	GetByID(id string) (event.Event, error)
}

type EventsHandler struct {
	repo  EventsRepository
	notes Notifier
}

func NewEventsHandler(repo EventsRepository, notes Notifier) *EventsHandler {
	return &EventsHandler{repo: repo, notes: notes}
}

// eventView adds the derived occupancy fields the list UI renders.
type eventView struct {
	event.Event
	AvailableSpots int          `json:"availableSpots"`
	Status         event.Status `json:"status"`
}

func viewOf(e event.Event) eventView {
	return eventView{
		Event:          e,
		AvailableSpots: e.AvailableSpots(),
		Status:         e.Status(),
	}
}

func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	events := h.repo.List()

	items := make([]eventView, len(events))
	for i, e := range events {
		items[i] = viewOf(e)
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *EventsHandler) GetEventByID(ctx *gin.Context) {
	e, err := h.repo.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Slot not found")
			return
		}
		RespondInternal(ctx, "Could not fetch slot")
		return
	}

	ctx.JSON(http.StatusOK, viewOf(e))
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest
	if !BindJSON(ctx, &req) {
		h.notes.Push("Please fill in all fields", notify.SeverityError)
		return
	}

	e, err := h.repo.Create(req)
	if err != nil {
		if errors.Is(err, event.ErrValidation) {
			h.notes.Push("Please fill in all fields", notify.SeverityError)
			RespondBadRequest(ctx, err.Error(), nil)
			return
		}
		h.notes.Push("Could not create slot", notify.SeverityError)
		RespondInternal(ctx, "Could not create slot")
		return
	}

	h.notes.Push("New slot created", notify.SeveritySuccess)
	ctx.JSON(http.StatusCreated, viewOf(e))
}

func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	var req event.UpdateEventRequest
	if !BindJSON(ctx, &req) {
		h.notes.Push("Please fill in all fields", notify.SeverityError)
		return
	}

	e, err := h.repo.Update(ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			h.notes.Push("Slot not found", notify.SeverityError)
			RespondNotFound(ctx, "Slot not found")
		case errors.Is(err, event.ErrValidation):
			h.notes.Push("Please fill in all fields", notify.SeverityError)
			RespondBadRequest(ctx, err.Error(), nil)
		default:
			h.notes.Push("Could not update slot", notify.SeverityError)
			RespondInternal(ctx, "Could not update slot")
		}
		return
	}

	h.notes.Push("Slot updated", notify.SeveritySuccess)
	ctx.JSON(http.StatusOK, viewOf(e))
}

// DeleteEvent cascades: all bookings go with the slot. The confirmation
// dialog lives in the view layer.
func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	if err := h.repo.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, event.ErrNotFound) {
			h.notes.Push("Slot not found", notify.SeverityError)
			RespondNotFound(ctx, "Slot not found")
			return
		}
		h.notes.Push("Could not delete slot", notify.SeverityError)
		RespondInternal(ctx, "Could not delete slot")
		return
	}

	h.notes.Push("Slot deleted", notify.SeverityInfo)
	ctx.Status(http.StatusNoContent)
}

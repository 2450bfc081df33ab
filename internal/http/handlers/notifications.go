package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bookingslots/internal/notify"
)

type NotificationsSource interface {
	List() []notify.Notification
	Subscribe() (<-chan notify.Notification, func())
}

// NotificationsHandler exposes the pending toasts, either polled or pushed
// over a websocket.
type NotificationsHandler struct {
	queue    NotificationsSource
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewNotificationsHandler(queue NotificationsSource, log *slog.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		queue: queue,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origin policy is handled by the CORS middleware; the feed
			// carries nothing sensitive
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *NotificationsHandler) List(ctx *gin.Context) {
	items := h.queue.List()

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// Stream pushes every new notification to the connected view until either
// side hangs up.
func (h *NotificationsHandler) Stream(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// the upgrader has already written the error response
		h.log.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ch, cancel := h.queue.Subscribe()
	defer cancel()

	// the read side only exists to notice the client hanging up
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(n); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

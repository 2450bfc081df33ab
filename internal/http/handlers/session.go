package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingslots/internal/gate"
)

type SessionGate interface {
	Login(secret string) (string, error)
	Logout()
	Mode() gate.Mode
}

// SessionHandler fronts the demo admin gate. The gate itself pushes the
// success/failure notifications.
type SessionHandler struct {
	gate SessionGate
}

func NewSessionHandler(g SessionGate) *SessionHandler {
	return &SessionHandler{gate: g}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *SessionHandler) Login(ctx *gin.Context) {
	var req loginRequest
	if !BindJSON(ctx, &req) {
		return
	}

	token, err := h.gate.Login(req.Password)
	if err != nil {
		if errors.Is(err, gate.ErrWrongSecret) {
			RespondUnAuthorized(ctx, "wrong_password", "Wrong password.")
			return
		}
		RespondInternal(ctx, "Could not log in")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"mode":         gate.ModeAdmin,
		"sessionToken": token,
	})
}

func (h *SessionHandler) Logout(ctx *gin.Context) {
	h.gate.Logout()

	ctx.JSON(http.StatusOK, gin.H{
		"mode": gate.ModeVisitor,
	})
}

func (h *SessionHandler) Current(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"mode": h.gate.Mode(),
	})
}

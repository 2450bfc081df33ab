package gate

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"bookingslots/internal/auth"
	"bookingslots/internal/notify"
	"bookingslots/internal/security"
)

// Mode is the current view mode. This is a UI toggle behind one shared demo
// secret, not a security boundary.
type Mode string

const (
	ModeVisitor Mode = "visitor"
	ModeAdmin   Mode = "admin"
)

var ErrWrongSecret = errors.New("wrong admin secret")

// Notifier is the slice of the notification queue the gate needs.
type Notifier interface {
	Push(message string, severity notify.Severity) notify.Notification
}

// Gate toggles between visitor and admin mode. Login compares the submitted
// credential against the one configured secret; logout is unconditional.
// No lockout, no expiry of the mode itself.
type Gate struct {
	mu         sync.RWMutex
	mode       Mode
	secretHash string
	tokens     *auth.Manager
	notes      Notifier
	log        *slog.Logger
}

func New(secret string, tokens *auth.Manager, notes Notifier, log *slog.Logger) (*Gate, error) {
	hash, err := security.HashSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}

	return &Gate{
		mode:       ModeVisitor,
		secretHash: hash,
		tokens:     tokens,
		notes:      notes,
		log:        log,
	}, nil
}

// Login switches to admin mode when the secret matches and returns a signed
// session token for the HTTP surface. On mismatch the mode stays visitor.
// Either way the outcome lands in the notification queue.
func (g *Gate) Login(secret string) (string, error) {
	if err := security.CheckSecret(g.secretHash, secret); err != nil {
		g.notes.Push("Wrong password", notify.SeverityError)
		g.log.Info("admin login rejected")
		return "", ErrWrongSecret
	}

	g.mu.Lock()
	g.mode = ModeAdmin
	g.mu.Unlock()

	token, err := g.tokens.GenerateSessionToken(string(ModeAdmin))
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	g.notes.Push("Logged in as administrator", notify.SeveritySuccess)
	g.log.Info("admin login accepted")
	return token, nil
}

// Logout drops back to visitor mode unconditionally.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.mode = ModeVisitor
	g.mu.Unlock()

	g.notes.Push("Logged out", notify.SeverityInfo)
	g.log.Info("admin logout")
}

func (g *Gate) Mode() Mode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mode
}

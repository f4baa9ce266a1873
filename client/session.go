package client

import (
	"context"
	"sync"
	"time"

	"github.com/shopall-store/storefront-api/models"
)

// AuthEvent identifies a session lifecycle change.
type AuthEvent string

const (
	EventSignedIn  AuthEvent = "SIGNED_IN"
	EventSignedOut AuthEvent = "SIGNED_OUT"
)

const (
	// sessionGraceWindow: a sign-in observed this soon after construction is
	// a silent session restore, not an explicit sign-in, and gets no
	// notification.
	sessionGraceWindow = time.Second
	// notifyDedupWindow: repeats of the same event inside this window are
	// dropped, so several observers of one global event produce one toast.
	notifyDedupWindow = 5 * time.Second
)

// SessionStore wraps the session lifecycle. Notification dedup state lives
// on the store itself (LastNotifiedEvent plus timestamp), not in package
// globals, so it is testable and scoped to one session.
type SessionStore struct {
	mu      sync.Mutex
	client  *Client
	user    *models.Profile
	guestID string
	notify  func(message string)

	startedAt         time.Time
	lastNotifiedEvent AuthEvent
	lastNotifiedAt    time.Time

	now func() time.Time
}

// NewSessionStore wraps client. notify receives user-facing messages and may
// be nil.
func NewSessionStore(client *Client, notify func(message string)) *SessionStore {
	s := &SessionStore{
		client: client,
		notify: notify,
		now:    time.Now,
	}
	s.startedAt = s.now()
	return s
}

// RestoreSession installs a previously persisted token. Restoration counts
// as the initial-load sign-in and is always silent within the grace window.
func (s *SessionStore) RestoreSession(token string, user *models.Profile) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	if s.client != nil {
		s.client.SetToken(token)
	}
	s.recordEvent(EventSignedIn, "Welcome back!")
}

func (s *SessionStore) SignUp(ctx context.Context, email, password, fullName string) error {
	resp, err := s.client.SignUp(ctx, email, password, fullName)
	if err != nil {
		return err
	}
	s.install(resp)
	return nil
}

func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	s.mu.Lock()
	guestID := s.guestID
	s.mu.Unlock()

	resp, err := s.client.SignIn(ctx, email, password, guestID)
	if err != nil {
		return err
	}
	s.install(resp)
	return nil
}

func (s *SessionStore) install(resp AuthResponse) {
	s.mu.Lock()
	s.user = resp.User
	s.guestID = ""
	s.mu.Unlock()
	s.client.SetToken(resp.Token)
	s.recordEvent(EventSignedIn, "Welcome back!")
}

func (s *SessionStore) SignOut(ctx context.Context) error {
	err := s.client.SignOut(ctx)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.client.SetToken("")
	s.recordEvent(EventSignedOut, "Signed out successfully")

	return err
}

// SetGuestID remembers a guest session id so the guest cart is merged on the
// next sign-in.
func (s *SessionStore) SetGuestID(guestID string) {
	s.mu.Lock()
	s.guestID = guestID
	s.mu.Unlock()
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *SessionStore) User() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// LastNotifiedEvent exposes the dedup state for observers.
func (s *SessionStore) LastNotifiedEvent() (AuthEvent, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastNotifiedEvent, s.lastNotifiedAt
}

func (s *SessionStore) recordEvent(event AuthEvent, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if event == EventSignedIn && now.Sub(s.startedAt) < sessionGraceWindow {
		return
	}
	if s.lastNotifiedEvent == event && now.Sub(s.lastNotifiedAt) < notifyDedupWindow {
		return
	}

	s.lastNotifiedEvent = event
	s.lastNotifiedAt = now
	if s.notify != nil {
		s.notify(message)
	}
}

package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests walk session time forward deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(notify func(string)) (*SessionStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSessionStore(nil, notify)
	s.now = clock.now
	s.startedAt = clock.t
	return s, clock
}

func TestRestoreWithinGraceWindowIsSilent(t *testing.T) {
	var toasts []string
	s, clock := newTestSession(func(msg string) { toasts = append(toasts, msg) })

	clock.advance(200 * time.Millisecond)
	s.RestoreSession("token", nil)

	assert.Empty(t, toasts, "restoring a persisted session on startup must not toast")
	assert.False(t, s.IsAuthenticated(), "no user attached on bare token restore")
}

func TestSignInAfterGraceWindowNotifies(t *testing.T) {
	var toasts []string
	s, clock := newTestSession(func(msg string) { toasts = append(toasts, msg) })

	clock.advance(2 * time.Second)
	s.recordEvent(EventSignedIn, "Welcome back!")

	assert.Equal(t, []string{"Welcome back!"}, toasts)
}

func TestRepeatedEventWithinDedupWindowIsSilent(t *testing.T) {
	var toasts []string
	s, clock := newTestSession(func(msg string) { toasts = append(toasts, msg) })

	clock.advance(2 * time.Second)
	s.recordEvent(EventSignedIn, "Welcome back!")
	clock.advance(time.Second)
	s.recordEvent(EventSignedIn, "Welcome back!")

	assert.Len(t, toasts, 1, "a repeat of the same event inside the dedup window is dropped")

	clock.advance(6 * time.Second)
	s.recordEvent(EventSignedIn, "Welcome back!")
	assert.Len(t, toasts, 2)
}

func TestDifferentEventBypassesDedup(t *testing.T) {
	var toasts []string
	s, clock := newTestSession(func(msg string) { toasts = append(toasts, msg) })

	clock.advance(2 * time.Second)
	s.recordEvent(EventSignedIn, "Welcome back!")
	clock.advance(time.Second)
	s.recordEvent(EventSignedOut, "Signed out successfully")

	assert.Equal(t, []string{"Welcome back!", "Signed out successfully"}, toasts)
}

func TestLastNotifiedEventTracksState(t *testing.T) {
	s, clock := newTestSession(nil)

	clock.advance(2 * time.Second)
	s.recordEvent(EventSignedOut, "Signed out successfully")

	event, at := s.LastNotifiedEvent()
	assert.Equal(t, EventSignedOut, event)
	assert.Equal(t, clock.t, at)
}

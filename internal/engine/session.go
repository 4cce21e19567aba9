package engine

import (
	"sync"

	"github.com/google/uuid"
)

// Session holds the client's authenticated identity. It is shared by every
// application engine and by the live subscriber; clearing it is what makes a
// pending debounced write a no-op even if its timer still fires.
type Session struct {
	mu       sync.RWMutex
	token    string
	userID   int64
	deviceID string
}

// NewSession creates an unauthenticated session with a fresh device id.
// The device id identifies this client instance in remote writes and is
// echoed in change notifications so sessions can recognise their own writes.
func NewSession() *Session {
	return &Session{deviceID: uuid.NewString()}
}

// SetAuthenticated installs the signed token and user id after a successful
// login or registration.
func (s *Session) SetAuthenticated(token string, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.userID = userID
}

// Clear drops the authenticated identity. Remote access stops immediately;
// local behavior is unaffected.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userID = 0
}

// Authenticated reports whether a user identity is present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current signed session token, or empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserID returns the authenticated user id, or zero when signed out.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// DeviceID returns this client instance's stable device id.
func (s *Session) DeviceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deviceID
}

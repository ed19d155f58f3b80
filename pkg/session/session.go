package session

import (
	"time"

	"github.com/google/uuid"
)

// State is the authentication state of a session.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session represents a user session. Token and CSRFToken never leave the
// server in JSON.
type Session struct {
	ID             uuid.UUID `json:"id"`
	Token          string    `json:"-"`
	UserID         *int64    `json:"userId,omitempty"`
	CSRFToken      string    `json:"-"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// NewSession creates a session that expires idle after now.
func NewSession(token, csrfToken string, userID *int64, now time.Time, idle time.Duration) *Session {
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		UserID:         userID,
		CSRFToken:      csrfToken,
		LastActivityAt: now,
		CreatedAt:      now,
		ExpiresAt:      now.Add(idle),
	}
}

// State returns Authenticated when a user is attached.
func (s *Session) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Anonymous
}

// IsAuthenticated returns true if the session has a user ID.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != nil
}

// UserIDValue returns the attached user ID, or 0 and false when anonymous.
func (s *Session) UserIDValue() (int64, bool) {
	if !s.IsAuthenticated() {
		return 0, false
	}
	return *s.UserID, true
}

// IdleExpired reports whether more than idle has passed since the last
// activity. Exactly idle is not expired.
func (s *Session) IdleExpired(now time.Time, idle time.Duration) bool {
	return now.Sub(s.LastActivityAt) > idle
}

// Touch moves the idle window forward.
func (s *Session) Touch(now time.Time, idle time.Duration) {
	s.LastActivityAt = now
	s.ExpiresAt = now.Add(idle)
}

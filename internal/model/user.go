package model

import "time"

// User represents a registered account. Identity is immutable after
// registration and there is no deletion path.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Hash      *string   `json:"-"` // Never expose password hash
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Session is a server-side login session. The token is the opaque value
// carried by the client's cookie; ExpiresAt is fixed at issuance and is not
// refreshed by activity.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedOn time.Time `json:"created_on"`
}

// Expired reports whether the session has passed its fixed expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

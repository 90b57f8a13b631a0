package domain

import "time"

// Session is the authenticated identity issued by the identity service.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
	ExpiresAt   time.Time
}

// Access is the resolved authorization state for the current visitor.
// Every component outside the session gate treats it as read-only input.
type Access struct {
	Authenticated bool
	IsAdmin       bool
	UserID        string
}

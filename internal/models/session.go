package models

import "time"

// Session binds a refresh token to a user and the client fingerprint it
// was issued to.
type Session struct {
	ID           string
	UserID       string
	Fingerprint  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

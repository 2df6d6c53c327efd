package domain

import "time"

// AccessToken describes an issued bearer token.
type AccessToken struct {
	ID        string
	UserID    int64
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

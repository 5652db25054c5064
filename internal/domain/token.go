package domain

import (
	"time"
)

// Token is an opaque bearer session token. Expiration is set once at
// issue time and never extended; expired tokens are removed by the sweeper.
type Token struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

func (t *Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

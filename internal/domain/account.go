package domain

import "time"

// Account is a user identity issued by the identity provider.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

// Session is the result of a successful sign-in.
// IDToken is sent back by clients in the id-token header.
type Session struct {
	AccountID string
	IDToken   string
	ExpiresAt time.Time
}

package auth

import "time"

// Strategy issues and verifies access tokens carrying the user identity.
type Strategy interface {
	IssueToken(userID int64, email string) (string, error)
	ParseToken(token string) (int64, string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

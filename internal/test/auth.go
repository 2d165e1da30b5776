package test

import (
	"errors"

	pkgAuth "github.com/expensio/expensio/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64, string) (string, error)
	ParseFn func(string) (int64, string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64, email string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, email)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, "user@example.com", nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub resolves every token to the configured identity.
type TokenParserStub struct {
	ID    int64
	Email string
	Err   error
}

// ParseToken returns the configured identity or error.
func (s TokenParserStub) ParseToken(string) (int64, string, error) {
	if s.Err != nil {
		return 0, "", s.Err
	}
	return s.ID, s.Email, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
var _ pkgAuth.PasswordHasher = HasherStub{}

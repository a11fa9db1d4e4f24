package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier answers whether a username/password pair identifies
// a caller allowed to obtain a token. Injected so a real credential
// store can replace the static one without touching request handling.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) bool
}

// StaticVerifier checks against a single configured credential. The
// password is bcrypt-hashed at construction.
type StaticVerifier struct {
	username string
	hash     []byte
}

func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticVerifier{username: username, hash: hash}, nil
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) bool {
	if username != v.username {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
}

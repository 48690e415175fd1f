// Package identity creates student accounts at the identity provider.
//
// Every registration works through its own Session. A session can only delete the account it
// created itself and must be signed out before the registration returns.
package identity

import (
	"context"
	"errors"
)

var (
	ErrAccountExists = errors.New("account already exists")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrWeakSecret    = errors.New("secret does not meet the provider policy")

	errNoAccount     = errors.New("session has not created an account")
	errAccountExists = errors.New("session already created an account")
)

// MinSecretLength is the shortest password the provider accepts.
const MinSecretLength = 6

type Session interface {
	// CreateAccount returns the key of the new account.
	CreateAccount(ctx context.Context, email, secret string) (string, error)
	// DeleteAccount deletes the account created through this session.
	DeleteAccount(ctx context.Context) error
	SignOut(ctx context.Context) error
}

type Provider interface {
	OpenSession(ctx context.Context) (Session, error)
}

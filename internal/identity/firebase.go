package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"
)

// AuthClient is the part of the Firebase Authentication client a session needs.
type AuthClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

type FirebaseProvider struct {
	client AuthClient
}

func NewFirebaseProvider(client AuthClient) *FirebaseProvider {
	return &FirebaseProvider{
		client: client,
	}
}

func (p *FirebaseProvider) OpenSession(_ context.Context) (Session, error) {
	return &firebaseSession{client: p.client}, nil
}

type firebaseSession struct {
	client AuthClient
	uid    string
}

func (s *firebaseSession) CreateAccount(ctx context.Context, email, secret string) (string, error) {
	if s.uid != "" {
		return "", errAccountExists
	}

	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	if len(secret) < MinSecretLength {
		return "", ErrWeakSecret
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(secret)

	record, err := s.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", ErrAccountExists
		}

		return "", fmt.Errorf("s.client.CreateUser -> %w", err)
	}

	s.uid = record.UID
	zap.L().Debug("identity account created", zap.String("uid", record.UID))

	return record.UID, nil
}

func (s *firebaseSession) DeleteAccount(ctx context.Context) error {
	if s.uid == "" {
		return errNoAccount
	}

	if err := s.client.DeleteUser(ctx, s.uid); err != nil {
		return fmt.Errorf("s.client.DeleteUser -> %w", err)
	}
	s.uid = ""

	return nil
}

// SignOut revokes the refresh tokens of the account the session created, if it still exists.
func (s *firebaseSession) SignOut(ctx context.Context) error {
	if s.uid == "" {
		return nil
	}

	uid := s.uid
	s.uid = ""
	if err := s.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("s.client.RevokeRefreshTokens -> %w", err)
	}

	return nil
}

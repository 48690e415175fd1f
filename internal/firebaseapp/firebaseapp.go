package firebaseapp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/sparkslearn/console/internal/config"
)

type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

func (c *Clients) Close() error {
	if c.Firestore == nil {
		return nil
	}

	return c.Firestore.Close()
}

// New connects to Firebase. Without a credentials file, application default credentials are used.
// The Firestore client is only opened when withFirestore is set.
func New(ctx context.Context, conf *config.FirebaseConfig, withFirestore bool) (*Clients, error) {
	var opts []option.ClientOption
	if conf.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.CredentialsFile))
	}

	var fbConf *firebase.Config
	if conf.ProjectID != "" {
		fbConf = &firebase.Config{ProjectID: conf.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConf, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp -> %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Auth -> %w", err)
	}

	clients := &Clients{Auth: authClient}
	if withFirestore {
		if clients.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("app.Firestore -> %w", err)
		}
	}

	return clients, nil
}

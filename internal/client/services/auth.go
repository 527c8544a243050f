// Package services contains application services for the MedReport client.
// This file defines the authentication service: sign-in, sign-up and
// sign-out on top of the backend client and the session store.
package services

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/medreport/internal/client/client"
	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/client/session"
)

// SessionStore is the part of session.Store the services depend on.
type SessionStore interface {
	Get(ctx context.Context) session.Session
	Set(ctx context.Context, token string, user *models.User, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignIn: authenticate against the backend and persist the session.
//   - SignUp: create an account; never starts a session.
//   - SignOut: drop the local session; safe to call when already signed out.
//   - Current: read the current session.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) session.Session
}

type authService struct {
	client client.Client
	store  SessionStore
	ttl    time.Duration
}

// NewAuthService binds the service to a backend client and a session store.
// A zero ttl means session.DefaultTTL.
func NewAuthService(c client.Client, store SessionStore, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &authService{client: c, store: store, ttl: ttl}
}

// SignIn posts the credentials and, on success, stores token and profile.
// Backend errors are returned as is so callers can match the typed errors.
func (a *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := a.client.SignIn(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &client.ServerError{Status: http.StatusOK, Message: "An error occurred", Err: ErrMissingToken}
	}

	if err := a.store.Set(ctx, resp.Token, resp.User, a.ttl); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SignUp registers the account. Any token in the response is ignored; the
// user signs in afterwards.
func (a *authService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	resp, err := a.client.SignUp(ctx, models.Registration{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (a *authService) SignOut(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) session.Session {
	return a.store.Get(ctx)
}

package client

import (
	"context"

	"github.com/dmitrijs2005/medreport/internal/client/models"
)

// Client is the backend API as the services see it.
type Client interface {
	SignIn(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	SignUp(ctx context.Context, reg models.Registration) (*models.AuthResponse, error)
	UploadReport(ctx context.Context, file models.PendingFile) (*models.UploadResult, error)
}

// Session is what the pipeline needs from the session store.
type Session interface {
	Token(ctx context.Context) string
	Clear(ctx context.Context) error
}

// Redirector moves the UI to route. The pipeline calls it with "/" after a
// 401 response.
type Redirector interface {
	Redirect(ctx context.Context, route string)
}

// RedirectFunc adapts a plain function to Redirector.
type RedirectFunc func(ctx context.Context, route string)

func (f RedirectFunc) Redirect(ctx context.Context, route string) { f(ctx, route) }

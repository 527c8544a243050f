package cookies

import (
	"context"
	"time"

	"github.com/dmitrijs2005/medreport/internal/dbx"
)

// SameSite mirrors the cookie attribute of the same name.
type SameSite string

const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
)

// Cookie is one persisted jar entry.
type Cookie struct {
	Name      string
	Value     string
	ExpiresAt time.Time
	Secure    bool
	SameSite  SameSite
}

// Expired reports whether the cookie is past its expiry at now.
func (c Cookie) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

type Repository interface {
	// Get returns (nil, nil) for a missing or expired cookie.
	Get(ctx context.Context, name string) (*Cookie, error)
	Set(ctx context.Context, c Cookie) error
	Delete(ctx context.Context, name string) error
	PurgeExpired(ctx context.Context) (int64, error)

	// WithDB rebinds the repository, typically to a transaction.
	WithDB(db dbx.DBTX) Repository
	WithClock(now func() time.Time) Repository
}

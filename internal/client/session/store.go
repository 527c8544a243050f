// Package session is the single owner of the client's authentication state.
//
// The state lives in the cookie jar as two entries: "token" (opaque bearer
// secret) and "user" (JSON profile blob). Token presence alone means
// "authenticated"; the profile is advisory. Components never read the jar
// directly: they go through Store and may Subscribe to be told when the
// session changes instead of re-reading it.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/medreport/internal/dbx"
	"github.com/dmitrijs2005/medreport/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned by Set for a token whose exp claim is not in
// the future.
var ErrTokenExpired = errors.New("session token already expired")

const (
	TokenCookie = "token"
	UserCookie  = "user"

	// DefaultTTL is the session lifetime when none is configured.
	DefaultTTL = 7 * 24 * time.Hour
)

// Session is a snapshot of the authentication state.
type Session struct {
	Token string
	User  *models.User
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store reads and writes the session. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	repo   cookies.Repository
	logger logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	subs   map[int]func(Session)
	nextID int
}

// NewStore builds a Store over a database already migrated by
// client.InitDatabase. Transactions are opened on db and handed to repo
// through WithDB.
func NewStore(db *sql.DB, repo cookies.Repository, logger logging.Logger) *Store {
	return &Store{
		db:     db,
		repo:   repo,
		logger: logger,
		now:    time.Now,
		subs:   make(map[int]func(Session)),
	}
}

// WithClock replaces the time source. Must be called before the store is shared.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	s.repo = s.repo.WithClock(now)
	return s
}

// Get returns the current session. It never fails: storage errors are
// logged and read as "logged out", and a malformed profile blob reads as
// an absent profile.
func (s *Store) Get(ctx context.Context) Session {
	token, err := s.repo.Get(ctx, TokenCookie)
	if err != nil {
		s.logger.Warn(ctx, "session read failed", "error", err)
		return Session{}
	}
	if token == nil || token.Value == "" {
		return Session{}
	}

	sess := Session{Token: token.Value}

	raw, err := s.repo.Get(ctx, UserCookie)
	if err != nil {
		s.logger.Warn(ctx, "profile read failed", "error", err)
		return sess
	}
	if raw == nil {
		return sess
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw.Value), &u); err != nil {
		s.logger.Warn(ctx, "malformed profile cookie ignored", "error", err)
		return sess
	}
	sess.User = &u
	return sess
}

// Token returns the bearer token or "" when logged out.
func (s *Store) Token(ctx context.Context) string {
	return s.Get(ctx).Token
}

// Set persists token and user with the given lifetime (DefaultTTL when
// ttl <= 0). A JWT token whose exp claim comes sooner shortens the
// lifetime to match. Both cookies are written in one transaction; a nil
// user removes any stale profile.
func (s *Store) Set(ctx context.Context, token string, user *models.User, ttl time.Duration) error {
	if token == "" {
		return fmt.Errorf("set session: empty token")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := s.now()
	expiresAt := now.Add(ttl)
	if exp, ok := tokenExpiry(token); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}
	if !expiresAt.After(now) {
		return fmt.Errorf("set session: %w", ErrTokenExpired)
	}

	var profile []byte
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		profile = b
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithDB(tx)
		if err := repo.Set(ctx, newCookie(TokenCookie, token, expiresAt)); err != nil {
			return err
		}
		if profile == nil {
			return repo.Delete(ctx, UserCookie)
		}
		return repo.Set(ctx, newCookie(UserCookie, string(profile), expiresAt))
	})
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	s.publish(Session{Token: token, User: user})
	return nil
}

// Clear removes token and profile. Clearing an empty session is not an error.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithDB(tx)
		if err := repo.Delete(ctx, TokenCookie); err != nil {
			return err
		}
		return repo.Delete(ctx, UserCookie)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.publish(Session{})
	return nil
}

// Purge drops expired jar entries and reports how many went.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	n, err := s.repo.PurgeExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge cookies: %w", err)
	}
	return n, nil
}

// Subscribe registers fn to be called with the new session after every
// successful Set or Clear. The returned func unregisters it.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(sess Session) {
	s.mu.Lock()
	fns := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}

func newCookie(name, value string, expiresAt time.Time) cookies.Cookie {
	return cookies.Cookie{
		Name:      name,
		Value:     value,
		ExpiresAt: expiresAt,
		Secure:    true,
		SameSite:  cookies.SameSiteStrict,
	}
}

// tokenExpiry reads the exp claim of a JWT without verifying it. Tokens
// that are not JWTs, or carry no exp, report ok=false.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

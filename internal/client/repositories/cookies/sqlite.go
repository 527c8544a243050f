package cookies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medreport/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// WithDB returns a copy of the repository bound to db, typically a
// transaction handle from dbx.WithTx.
func (r *SQLiteRepository) WithDB(db dbx.DBTX) Repository {
	return &SQLiteRepository{db: db, now: r.now}
}

// WithClock returns a copy of the repository using now as its time source.
func (r *SQLiteRepository) WithClock(now func() time.Time) Repository {
	return &SQLiteRepository{db: r.db, now: now}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*Cookie, error) {
	var (
		c         Cookie
		expiresAt int64
		secure    int
		sameSite  string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT name, value, expires_at, secure, same_site FROM cookies WHERE name = ?`, name,
	).Scan(&c.Name, &c.Value, &expiresAt, &secure, &sameSite)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cookie[%s]: %w", name, err)
	}

	c.ExpiresAt = time.Unix(expiresAt, 0)
	c.Secure = secure != 0
	c.SameSite = SameSite(sameSite)

	if c.Expired(r.now()) {
		return nil, nil
	}
	return &c, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, c Cookie) error {
	if c.SameSite == "" {
		c.SameSite = SameSiteStrict
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (name, value, expires_at, secure, same_site, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			secure = excluded.secure,
			same_site = excluded.same_site,
			updated_at = excluded.updated_at
	`, c.Name, c.Value, c.ExpiresAt.Unix(), boolToInt(c.Secure), string(c.SameSite), r.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set cookie[%s]: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete cookie[%s]: %w", name, err)
	}
	return nil
}

// PurgeExpired deletes expired rows and reports how many were removed.
func (r *SQLiteRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE expires_at <= ?`, r.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cookies: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to purge cookies: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/rkormilcyn/portfolio/internal/apperror"
	"github.com/rkormilcyn/portfolio/internal/model"
	"github.com/rkormilcyn/portfolio/internal/repository"
)

// Compile-time check that *DB implements repository.UserRepository.
var _ repository.UserRepository = (*DB)(nil)

// Upsert inserts or updates a user keyed by (provider, provider_id).
//
// A single INSERT ... ON CONFLICT DO UPDATE does both paths atomically:
// first login inserts the row, repeat logins overwrite name/avatar/email
// with whatever the provider sent this time — empty included, last write
// wins. A SELECT-then-INSERT would race when the same identity logs in
// twice concurrently; pushing the conflict resolution into SQLite means the
// loser of that race simply lands on the update path.
//
// The candidate id and created_at we pass are only used on the insert path
// (excluded rows keep the existing values), so after the statement we read
// the row back to give the caller the canonical record.
func (db *DB) Upsert(ctx context.Context, user *model.User) error {
	if user.Provider == "" || user.ProviderID == "" {
		return fmt.Errorf("sqlite: upsert requires provider and provider id")
	}

	now := time.Now()
	candidateID := xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, provider, provider_id, name, avatar, email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(provider, provider_id) DO UPDATE SET
		 	name       = excluded.name,
		 	avatar     = excluded.avatar,
		 	email      = excluded.email,
		 	updated_at = excluded.updated_at`,
		candidateID,
		user.Provider,
		user.ProviderID,
		user.Name,
		user.Avatar,
		user.Email,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting user (%s/%s): %w", user.Provider, user.ProviderID, err)
	}

	// Read back id and timestamps — on the update path the row keeps its
	// original id and created_at, and the caller must see those.
	stored, err := db.GetByIdentity(ctx, user.Provider, user.ProviderID)
	if err != nil {
		return fmt.Errorf("sqlite: reading back upserted user (%s/%s): %w", user.Provider, user.ProviderID, err)
	}

	*user = *stored
	return nil
}

// GetByID retrieves a user by internal id.
// Returns apperror.ErrNotFound if no such user exists.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx,
		`SELECT id, provider, provider_id, name, avatar, email, created_at, updated_at
		 FROM users WHERE id = ?`, id)
}

// GetByIdentity retrieves a user by the exact (provider, provider id) pair.
// The lookup is exact-match only — the key is immutable and never derived
// from mutable display fields.
func (db *DB) GetByIdentity(ctx context.Context, provider, providerID string) (*model.User, error) {
	return db.getUser(ctx,
		`SELECT id, provider, provider_id, name, avatar, email, created_at, updated_at
		 FROM users WHERE provider = ? AND provider_id = ?`, provider, providerID)
}

func (db *DB) getUser(ctx context.Context, query string, args ...any) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Provider,
		&u.ProviderID,
		&u.Name,
		&u.Avatar,
		&u.Email,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprint(args[0]))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	return &u, nil
}

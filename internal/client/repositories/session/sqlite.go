package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/soukbid/soukbid-cli/internal/storex"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

type SQLiteRepository struct {
	db storex.Querier
}

func NewSQLiteRepository(db storex.Querier) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// Tokens returns the stored token pair. Missing keys come back as empty
// strings, not errors, so "no session yet" needs no special handling.
func (r *SQLiteRepository) Tokens(ctx context.Context) (string, string, error) {
	access, err := r.get(ctx, keyAccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, err := r.get(ctx, keyRefreshToken)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, access, refresh string) error {
	if err := r.set(ctx, keyAccessToken, access); err != nil {
		return err
	}
	return r.set(ctx, keyRefreshToken, refresh)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

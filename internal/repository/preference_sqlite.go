package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

type sqlitePreference struct {
	conn *sql.DB
}

func NewSQLitePreferenceRepository(conn *sql.DB) PreferenceRepository {
	return &sqlitePreference{
		conn: conn,
	}
}

func (that *sqlitePreference) Get(ctx context.Context, sessionID, key string) (string, error) {
	query := `SELECT value FROM preferences WHERE session_id = ? AND key = ?`

	var value string

	err := that.conn.QueryRowContext(ctx, query, sessionID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("can't get preference %s: %w", key, err)
	}

	return value, nil
}

func (that *sqlitePreference) Set(ctx context.Context, sessionID, key, value string) error {
	query := `INSERT INTO preferences (session_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := that.conn.ExecContext(ctx, query, sessionID, key, value, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("can't save preference %s: %w", key, err)
	}

	return nil
}

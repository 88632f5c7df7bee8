package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.SessionRecord, error) {
	token, err := getValue(ctx, r.db, keyToken)
	if err != nil {
		return nil, err
	}
	rawUser, err := getValue(ctx, r.db, keyUser)
	if err != nil {
		return nil, err
	}
	if token == nil && rawUser == nil {
		return nil, nil
	}

	rec := &models.SessionRecord{Token: string(token)}
	if rawUser != nil {
		var u models.User
		if err := json.Unmarshal(rawUser, &u); err != nil {
			return nil, fmt.Errorf("failed to decode stored user: %w", err)
		}
		rec.User = &u
	}
	return rec, nil
}

// Save replaces the stored record atomically.
func (r *SQLiteRepository) Save(ctx context.Context, rec models.SessionRecord) error {
	rawUser, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	return inTx(ctx, r.db, func(ctx context.Context, tx querier) error {
		if err := setValue(ctx, tx, keyToken, []byte(rec.Token)); err != nil {
			return err
		}
		return setValue(ctx, tx, keyUser, rawUser)
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func getValue(ctx context.Context, q querier, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func setValue(ctx context.Context, q querier, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/projectboard/internal/repository"
)

var _ repository.SlotStore = (*SlotRepository)(nil)

// SlotRepository implements repository.SlotStore for SQLite
type SlotRepository struct {
	db *DB
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Get retrieves the payload stored under key
func (r *SlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrInvalidInput
	}

	query := `
		SELECT payload
		FROM state
		WHERE bucket = ?
	`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	return payload, nil
}

// Put replaces the payload stored under key
func (r *SlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrInvalidInput
	}
	if value == nil {
		value = []byte{}
	}

	query := `
		INSERT INTO state (bucket, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(bucket) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		if isBusy(err) {
			return fmt.Errorf("failed to put slot (database busy): %w", err)
		}
		return fmt.Errorf("failed to put slot: %w", err)
	}

	return nil
}

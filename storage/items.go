package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ItemRepo persists saved items in Postgres.
type ItemRepo struct {
	db *sqlx.DB
}

// NewItemRepo wires an item repository over the given connection pool.
func NewItemRepo(db *sqlx.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Create files an item under one of the user's sections. The insert only
// succeeds when the user actually owns the target section, guarding against
// stale keyboard presses after a section set changed.
func (r *ItemRepo) Create(ctx context.Context, userID int64, sectionName, itemName, description string) (*SavedItem, error) {
	const q = `
		INSERT INTO saved_items (id, user_id, section_name, item_name, description)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (
			SELECT 1 FROM sections WHERE user_id = $2 AND name = $3
		)`

	id := uuid.NewString()
	res, err := r.db.ExecContext(ctx, q, id, userID, sectionName, itemName, description)
	if err != nil {
		return nil, fmt.Errorf("insert saved item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("insert saved item: rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrSectionNotFound
	}

	var item SavedItem
	const sel = `
		SELECT id, user_id, section_name, item_name, description, created_at
		FROM saved_items
		WHERE id = $1`
	if err := r.db.GetContext(ctx, &item, sel, id); err != nil {
		return nil, fmt.Errorf("reload saved item: %w", err)
	}
	return &item, nil
}

// ListBySection returns the user's items filed under a section, newest first.
func (r *ItemRepo) ListBySection(ctx context.Context, userID int64, sectionName string) ([]SavedItem, error) {
	const q = `
		SELECT id, user_id, section_name, item_name, description, created_at
		FROM saved_items
		WHERE user_id = $1 AND section_name = $2
		ORDER BY created_at DESC`

	var out []SavedItem
	if err := r.db.SelectContext(ctx, &out, q, userID, sectionName); err != nil {
		return nil, fmt.Errorf("list saved items: %w", err)
	}
	return out, nil
}

// Count returns the total number of saved items across all users.
func (r *ItemRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM saved_items`); err != nil {
		return 0, fmt.Errorf("count saved items: %w", err)
	}
	return n, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// SectionRepo persists sections in Postgres.
type SectionRepo struct {
	db *sqlx.DB
}

// NewSectionRepo wires a section repository over the given connection pool.
func NewSectionRepo(db *sqlx.DB) *SectionRepo {
	return &SectionRepo{db: db}
}

// Create inserts a section for the user. Returns ErrDuplicateSection when
// the user already owns a section with that name.
func (r *SectionRepo) Create(ctx context.Context, userID int64, name string) (*Section, error) {
	const q = `
		INSERT INTO sections (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at`

	var s Section
	if err := r.db.GetContext(ctx, &s, q, userID, name); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateSection
		}
		return nil, fmt.Errorf("insert section: %w", err)
	}
	return &s, nil
}

// List returns the user's sections in creation order.
func (r *SectionRepo) List(ctx context.Context, userID int64) ([]Section, error) {
	const q = `
		SELECT id, user_id, name, created_at
		FROM sections
		WHERE user_id = $1
		ORDER BY id`

	var out []Section
	if err := r.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return out, nil
}

// Count returns the total number of sections across all users.
func (r *SectionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sections`); err != nil {
		return 0, fmt.Errorf("count sections: %w", err)
	}
	return n, nil
}

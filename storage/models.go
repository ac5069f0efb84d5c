package storage

import (
	"errors"
	"time"
)

// Section is a user-owned category saved items are filed under.
// Names are unique per user, enforced by the database.
type Section struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// SavedItem is a single archived message reference.
type SavedItem struct {
	ID          string    `db:"id"`
	UserID      int64     `db:"user_id"`
	SectionName string    `db:"section_name"`
	ItemName    string    `db:"item_name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

var (
	// ErrDuplicateSection reports a section name already taken by the user.
	ErrDuplicateSection = errors.New("section already exists")
	// ErrSectionNotFound reports a save into a section the user does not own.
	ErrSectionNotFound = errors.New("section not found")
)

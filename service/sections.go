package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/saverbot/core/logger"
	"github.com/m3rciful/saverbot/storage"
	"log/slog"
)

// ErrEmptySectionName rejects section names that are blank after trimming.
var ErrEmptySectionName = errors.New("section name is empty")

// SectionStore is the storage surface the section service needs.
type SectionStore interface {
	Create(ctx context.Context, userID int64, name string) (*storage.Section, error)
	List(ctx context.Context, userID int64) ([]storage.Section, error)
	Count(ctx context.Context) (int64, error)
}

// Sections manages user section lifecycles on top of the store.
type Sections struct {
	store SectionStore
}

// NewSections builds the section service.
func NewSections(store SectionStore) *Sections {
	return &Sections{store: store}
}

// Create registers a named section for the user. The name is trimmed before
// validation; duplicates surface as storage.ErrDuplicateSection.
func (s *Sections) Create(ctx context.Context, userID int64, name string) (*storage.Section, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySectionName
	}

	sec, err := s.store.Create(ctx, userID, name)
	attrs := []slog.Attr{
		slog.String("event", "section.create"),
		slog.String("status", logger.Status(err)),
		slog.Int64("user_id", userID),
		slog.String("section", logger.Sanitize(name)),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSection) {
			attrs = append(attrs, slog.String("outcome", "duplicate"))
			logger.SVCSections.LogAttrs(ctx, slog.LevelInfo, "section.create", attrs...)
			return nil, err
		}
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		logger.SVCSections.LogAttrs(ctx, slog.LevelError, "section.create", attrs...)
		return nil, fmt.Errorf("create section: %w", err)
	}

	logger.SVCSections.LogAttrs(ctx, slog.LevelInfo, "section.create", attrs...)
	return sec, nil
}

// Names returns the user's section names in creation order.
func (s *Sections) Names(ctx context.Context, userID int64) ([]string, error) {
	start := time.Now()
	secs, err := s.store.List(ctx, userID)
	if err != nil {
		logger.SVCSections.LogAttrs(ctx, slog.LevelError, "section.list",
			slog.String("event", "section.list"),
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return nil, fmt.Errorf("list sections: %w", err)
	}

	names := make([]string, 0, len(secs))
	for _, sec := range secs {
		names = append(names, sec.Name)
	}

	if logger.ShouldSampleDebug() {
		logger.SVCSections.LogAttrs(ctx, slog.LevelDebug, "section.list",
			slog.String("event", "section.list"),
			slog.String("status", "ok"),
			slog.Int64("user_id", userID),
			slog.Int("count", len(names)),
			slog.Duration("duration", logger.Took(start)),
		)
	}
	return names, nil
}

// Total reports the section count across all users, for admin stats.
func (s *Sections) Total(ctx context.Context) (int64, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count sections: %w", err)
	}
	return n, nil
}

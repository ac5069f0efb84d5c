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

// ErrEmptyItemName rejects item names that are blank after trimming.
var ErrEmptyItemName = errors.New("item name is empty")

// ItemStore is the storage surface the item service needs.
type ItemStore interface {
	Create(ctx context.Context, userID int64, sectionName, itemName, description string) (*storage.SavedItem, error)
	ListBySection(ctx context.Context, userID int64, sectionName string) ([]storage.SavedItem, error)
	Count(ctx context.Context) (int64, error)
}

// Items files saved records under user sections.
type Items struct {
	store ItemStore
}

// NewItems builds the item service.
func NewItems(store ItemStore) *Items {
	return &Items{store: store}
}

// Save files an item into the user's section. It fails with
// storage.ErrSectionNotFound when the section no longer belongs to the user.
func (s *Items) Save(ctx context.Context, userID int64, sectionName, itemName, description string) (*storage.SavedItem, error) {
	start := time.Now()
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, ErrEmptyItemName
	}

	item, err := s.store.Create(ctx, userID, sectionName, itemName, description)
	attrs := []slog.Attr{
		slog.String("event", "item.save"),
		slog.String("status", logger.Status(err)),
		slog.Int64("user_id", userID),
		slog.String("section", logger.Sanitize(sectionName)),
		slog.String("item", logger.SanitizeLimit(itemName, 128)),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		if errors.Is(err, storage.ErrSectionNotFound) {
			attrs = append(attrs, slog.String("outcome", "section_missing"))
			logger.SVCItems.LogAttrs(ctx, slog.LevelWarn, "item.save", attrs...)
			return nil, err
		}
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		logger.SVCItems.LogAttrs(ctx, slog.LevelError, "item.save", attrs...)
		return nil, fmt.Errorf("save item: %w", err)
	}

	attrs = append(attrs, slog.String("item_id", item.ID))
	logger.SVCItems.LogAttrs(ctx, slog.LevelInfo, "item.save", attrs...)
	return item, nil
}

// InSection returns the user's saved items filed under a section.
func (s *Items) InSection(ctx context.Context, userID int64, sectionName string) ([]storage.SavedItem, error) {
	items, err := s.store.ListBySection(ctx, userID, sectionName)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Total reports the saved item count across all users, for admin stats.
func (s *Items) Total(ctx context.Context) (int64, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

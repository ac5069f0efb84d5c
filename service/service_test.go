package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/saverbot/core/logger"
	"github.com/m3rciful/saverbot/storage"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	m.Run()
}

type fakeSectionStore struct {
	sections map[int64][]storage.Section
	nextID   int64
	failWith error
}

func newFakeSectionStore() *fakeSectionStore {
	return &fakeSectionStore{sections: map[int64][]storage.Section{}}
}

func (f *fakeSectionStore) Create(_ context.Context, userID int64, name string) (*storage.Section, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, s := range f.sections[userID] {
		if s.Name == name {
			return nil, storage.ErrDuplicateSection
		}
	}
	f.nextID++
	sec := storage.Section{ID: f.nextID, UserID: userID, Name: name, CreatedAt: time.Now()}
	f.sections[userID] = append(f.sections[userID], sec)
	return &sec, nil
}

func (f *fakeSectionStore) List(_ context.Context, userID int64) ([]storage.Section, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.sections[userID], nil
}

func (f *fakeSectionStore) Count(_ context.Context) (int64, error) {
	var n int64
	for _, list := range f.sections {
		n += int64(len(list))
	}
	return n, nil
}

type fakeItemStore struct {
	sections *fakeSectionStore
	items    []storage.SavedItem
}

func (f *fakeItemStore) Create(_ context.Context, userID int64, sectionName, itemName, description string) (*storage.SavedItem, error) {
	owned := false
	for _, s := range f.sections.sections[userID] {
		if s.Name == sectionName {
			owned = true
			break
		}
	}
	if !owned {
		return nil, storage.ErrSectionNotFound
	}
	item := storage.SavedItem{
		ID:          "item-" + itemName,
		UserID:      userID,
		SectionName: sectionName,
		ItemName:    itemName,
		Description: description,
		CreatedAt:   time.Now(),
	}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeItemStore) ListBySection(_ context.Context, userID int64, sectionName string) ([]storage.SavedItem, error) {
	var out []storage.SavedItem
	for _, it := range f.items {
		if it.UserID == userID && it.SectionName == sectionName {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func TestSectionsCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewSections(newFakeSectionStore())

	sec, err := svc.Create(ctx, 7, "Recipes")
	require.NoError(t, err)
	assert.Equal(t, "Recipes", sec.Name)
	assert.EqualValues(t, 7, sec.UserID)

	_, err = svc.Create(ctx, 7, "Articles")
	require.NoError(t, err)

	names, err := svc.Names(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Recipes", "Articles"}, names)

	names, err = svc.Names(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSectionsCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewSections(newFakeSectionStore())

	_, err := svc.Create(ctx, 7, "Recipes")
	require.NoError(t, err)

	_, err = svc.Create(ctx, 7, "Recipes")
	assert.ErrorIs(t, err, storage.ErrDuplicateSection)

	// Same name under a different account is independent.
	_, err = svc.Create(ctx, 42, "Recipes")
	assert.NoError(t, err)
}

func TestSectionsCreateTrimsName(t *testing.T) {
	ctx := context.Background()
	svc := NewSections(newFakeSectionStore())

	sec, err := svc.Create(ctx, 7, "  Recipes  ")
	require.NoError(t, err)
	assert.Equal(t, "Recipes", sec.Name)

	_, err = svc.Create(ctx, 7, "   ")
	assert.ErrorIs(t, err, ErrEmptySectionName)
}

func TestItemsSave(t *testing.T) {
	ctx := context.Background()
	secStore := newFakeSectionStore()
	_, err := secStore.Create(ctx, 7, "Recipes")
	require.NoError(t, err)

	svc := NewItems(&fakeItemStore{sections: secStore})

	item, err := svc.Save(ctx, 7, "Recipes", "Pasta Carbonara", "Forwarded from Chef: the recipe text")
	require.NoError(t, err)
	assert.Equal(t, "Recipes", item.SectionName)
	assert.Equal(t, "Pasta Carbonara", item.ItemName)

	saved, err := svc.InSection(ctx, 7, "Recipes")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Pasta Carbonara", saved[0].ItemName)
}

func TestItemsSaveMissingSection(t *testing.T) {
	ctx := context.Background()
	secStore := newFakeSectionStore()
	_, err := secStore.Create(ctx, 7, "Recipes")
	require.NoError(t, err)

	svc := NewItems(&fakeItemStore{sections: secStore})

	// The section belongs to another user.
	_, err = svc.Save(ctx, 42, "Recipes", "Pasta", "desc")
	assert.ErrorIs(t, err, storage.ErrSectionNotFound)

	_, err = svc.Save(ctx, 7, "Missing", "Pasta", "desc")
	assert.ErrorIs(t, err, storage.ErrSectionNotFound)
}

func TestItemsSaveEmptyName(t *testing.T) {
	ctx := context.Background()
	svc := NewItems(&fakeItemStore{sections: newFakeSectionStore()})

	_, err := svc.Save(ctx, 7, "Recipes", "   ", "desc")
	assert.ErrorIs(t, err, ErrEmptyItemName)
}

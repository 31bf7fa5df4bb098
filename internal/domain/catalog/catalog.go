// Package catalog holds the menu: categories and orderable items. The menu is
// the union of a compiled-in builtin set and user-added custom entries; only
// the custom entries are persisted.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog lookups and builtin protection.
var (
	ErrItemNotFound     = errors.New("catalog item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBuiltin          = errors.New("builtin catalog entries cannot be modified")
)

// ValidationError indicates malformed input to a catalog mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError indicates that a derived or supplied id already exists.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("id %q already exists", e.ID)
}

// Item is one orderable menu entry. Orders copy name and price at checkout,
// so later catalog edits never rewrite history.
type Item struct {
	ID          string
	Name        string
	NameLocal   string
	Price       decimal.Decimal
	CategoryID  string
	Description string
}

// Category groups items on the menu.
type Category struct {
	ID          string
	DisplayName string
	Icon        string
}

// ItemDraft is the input for adding or updating an item.
type ItemDraft struct {
	Name        string
	NameLocal   string
	Price       decimal.Decimal
	CategoryID  string
	Description string
}

// CategoryDraft is the input for adding or updating a category.
type CategoryDraft struct {
	DisplayName string
	Icon        string
}

// Repository persists the custom (user-added) part of the catalog. Builtins
// never reach it. Every save writes the full custom snapshot.
type Repository interface {
	LoadItems(ctx context.Context) ([]Item, error)
	SaveItems(ctx context.Context, items []Item) error
	LoadCategories(ctx context.Context) ([]Category, error)
	SaveCategories(ctx context.Context, categories []Category) error
}

// Store exposes the catalog read and mutation operations. It merges builtins
// with persisted custom entries on every read; mutations target the custom
// set only and fail with ErrBuiltin when addressed at a builtin id.
type Store struct {
	repo Repository
}

// NewStore returns a catalog Store over the given repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// ListCategories returns all categories, builtins first, custom additions
// appended in insertion order.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	custom, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load custom categories")
	}
	out := make([]Category, 0, len(builtinCategories)+len(custom))
	out = append(out, builtinCategories...)
	out = append(out, custom...)
	return out, nil
}

// ListItems returns items in the given category, builtins first. An empty
// categoryID returns the whole menu.
func (s *Store) ListItems(ctx context.Context, categoryID string) ([]Item, error) {
	custom, err := s.repo.LoadItems(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load custom items")
	}
	out := make([]Item, 0, len(builtinItems)+len(custom))
	for _, it := range builtinItems {
		if categoryID == "" || it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	for _, it := range custom {
		if categoryID == "" || it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

// AddCategory derives the category id from the display name (lowercased,
// whitespace collapsed to hyphens) and appends it. An id collision with any
// existing category fails closed with ConflictError rather than silently
// merging two categories.
func (s *Store) AddCategory(ctx context.Context, draft CategoryDraft) (*Category, error) {
	if strings.TrimSpace(draft.DisplayName) == "" {
		return nil, &ValidationError{Field: "displayName", Reason: "display name is required"}
	}

	id := DeriveCategoryID(draft.DisplayName)
	if _, ok := builtinCategoryIDs[id]; ok {
		return nil, &ConflictError{ID: id}
	}
	custom, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load custom categories")
	}
	for _, c := range custom {
		if c.ID == id {
			return nil, &ConflictError{ID: id}
		}
	}

	cat := Category{ID: id, DisplayName: draft.DisplayName, Icon: draft.Icon}
	custom = append(custom, cat)
	if err := s.repo.SaveCategories(ctx, custom); err != nil {
		return nil, errors.Wrap(err, "save categories")
	}
	return &cat, nil
}

// UpdateCategory replaces the display name and icon of a custom category.
// The id stays stable so item references survive renames.
func (s *Store) UpdateCategory(ctx context.Context, id string, draft CategoryDraft) (*Category, error) {
	if strings.TrimSpace(draft.DisplayName) == "" {
		return nil, &ValidationError{Field: "displayName", Reason: "display name is required"}
	}
	if _, ok := builtinCategoryIDs[id]; ok {
		return nil, ErrBuiltin
	}

	custom, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load custom categories")
	}
	for i := range custom {
		if custom[i].ID != id {
			continue
		}
		custom[i].DisplayName = draft.DisplayName
		custom[i].Icon = draft.Icon
		if err := s.repo.SaveCategories(ctx, custom); err != nil {
			return nil, errors.Wrap(err, "save categories")
		}
		cat := custom[i]
		return &cat, nil
	}
	return nil, ErrCategoryNotFound
}

// DeleteCategory removes a custom category and cascades to every custom item
// referencing it, so no orphaned items remain.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := builtinCategoryIDs[id]; ok {
		return ErrBuiltin
	}

	custom, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return errors.Wrap(err, "load custom categories")
	}
	idx := -1
	for i := range custom {
		if custom[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCategoryNotFound
	}

	items, err := s.repo.LoadItems(ctx)
	if err != nil {
		return errors.Wrap(err, "load custom items")
	}
	kept := items[:0]
	for _, it := range items {
		if it.CategoryID != id {
			kept = append(kept, it)
		}
	}
	if err := s.repo.SaveItems(ctx, kept); err != nil {
		return errors.Wrap(err, "save items")
	}

	custom = append(custom[:idx], custom[idx+1:]...)
	if err := s.repo.SaveCategories(ctx, custom); err != nil {
		return errors.Wrap(err, "save categories")
	}
	return nil
}

// AddItem validates the draft and appends a new custom item with a generated
// id.
func (s *Store) AddItem(ctx context.Context, draft ItemDraft) (*Item, error) {
	if err := s.validateItemDraft(ctx, draft); err != nil {
		return nil, err
	}

	custom, err := s.repo.LoadItems(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load custom items")
	}
	item := Item{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		NameLocal:   draft.NameLocal,
		Price:       draft.Price,
		CategoryID:  draft.CategoryID,
		Description: draft.Description,
	}
	custom = append(custom, item)
	if err := s.repo.SaveItems(ctx, custom); err != nil {
		return nil, errors.Wrap(err, "save items")
	}
	return &item, nil
}

// UpdateItem replaces the fields of a custom item in place.
func (s *Store) UpdateItem(ctx context.Context, id string, draft ItemDraft) (*Item, error) {
	if err := s.validateItemDraft(ctx, draft); err != nil {
		return nil, err
	}
	if _, ok := builtinItemIDs[id]; ok {
		return nil, ErrBuiltin
	}

	custom, err := s.repo.LoadItems(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load custom items")
	}
	for i := range custom {
		if custom[i].ID != id {
			continue
		}
		custom[i].Name = draft.Name
		custom[i].NameLocal = draft.NameLocal
		custom[i].Price = draft.Price
		custom[i].CategoryID = draft.CategoryID
		custom[i].Description = draft.Description
		if err := s.repo.SaveItems(ctx, custom); err != nil {
			return nil, errors.Wrap(err, "save items")
		}
		item := custom[i]
		return &item, nil
	}
	return nil, ErrItemNotFound
}

// DeleteItem removes a custom item.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if _, ok := builtinItemIDs[id]; ok {
		return ErrBuiltin
	}

	custom, err := s.repo.LoadItems(ctx)
	if err != nil {
		return errors.Wrap(err, "load custom items")
	}
	for i := range custom {
		if custom[i].ID != id {
			continue
		}
		custom = append(custom[:i], custom[i+1:]...)
		return errors.Wrap(s.repo.SaveItems(ctx, custom), "save items")
	}
	return ErrItemNotFound
}

// FindItem resolves an item by id across builtins and custom entries.
func (s *Store) FindItem(ctx context.Context, id string) (*Item, error) {
	for _, it := range builtinItems {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	custom, err := s.repo.LoadItems(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load custom items")
	}
	for _, it := range custom {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *Store) validateItemDraft(ctx context.Context, draft ItemDraft) error {
	if strings.TrimSpace(draft.NameLocal) == "" {
		return &ValidationError{Field: "nameLocal", Reason: "local name is required"}
	}
	if !draft.Price.IsPositive() {
		return &ValidationError{Field: "price", Reason: "price must be a positive number"}
	}
	cats, err := s.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		if c.ID == draft.CategoryID {
			return nil
		}
	}
	return &ValidationError{Field: "categoryId", Reason: "unknown category"}
}

// DeriveCategoryID maps a display name to its deterministic id: lowercased,
// runs of whitespace replaced by a single hyphen.
func DeriveCategoryID(displayName string) string {
	return strings.Join(strings.Fields(strings.ToLower(displayName)), "-")
}

package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo keeps the custom catalog in memory.
type fakeRepo struct {
	items      []Item
	categories []Category
}

func (r *fakeRepo) LoadItems(_ context.Context) ([]Item, error) { return r.items, nil }
func (r *fakeRepo) SaveItems(_ context.Context, items []Item) error {
	r.items = items
	return nil
}
func (r *fakeRepo) LoadCategories(_ context.Context) ([]Category, error) { return r.categories, nil }
func (r *fakeRepo) SaveCategories(_ context.Context, categories []Category) error {
	r.categories = categories
	return nil
}

func newTestStore() (*Store, *fakeRepo) {
	repo := &fakeRepo{}
	return NewStore(repo), repo
}

func TestListCategories_MergesBuiltinsFirst(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	cat, err := s.AddCategory(ctx, CategoryDraft{DisplayName: "Grills", Icon: "🍢"})
	require.NoError(t, err)

	all, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(builtinCategories)+1)
	assert.Equal(t, "appetizers", all[0].ID)
	assert.Equal(t, cat.ID, all[len(all)-1].ID)
}

func TestAddCategory_DerivesID(t *testing.T) {
	s, _ := newTestStore()

	cat, err := s.AddCategory(context.Background(), CategoryDraft{DisplayName: "Hot  Soups"})
	require.NoError(t, err)
	assert.Equal(t, "hot-soups", cat.ID)
}

func TestAddCategory_EmptyNameFails(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.AddCategory(context.Background(), CategoryDraft{DisplayName: "   "})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "displayName", vErr.Field)
}

func TestAddCategory_CollisionFailsClosed(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.AddCategory(ctx, CategoryDraft{DisplayName: "Grills"})
	require.NoError(t, err)

	_, err = s.AddCategory(ctx, CategoryDraft{DisplayName: "grills"})
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "grills", cErr.ID)

	// Colliding with a builtin id fails the same way.
	_, err = s.AddCategory(ctx, CategoryDraft{DisplayName: "Appetizers"})
	require.ErrorAs(t, err, &cErr)
}

func TestAddItem_Validation(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, ItemDraft{NameLocal: "", Price: decimal.NewFromInt(10), CategoryID: "drinks"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "nameLocal", vErr.Field)

	_, err = s.AddItem(ctx, ItemDraft{NameLocal: "عصير", Price: decimal.Zero, CategoryID: "drinks"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "price", vErr.Field)

	_, err = s.AddItem(ctx, ItemDraft{NameLocal: "عصير", Price: decimal.NewFromInt(10), CategoryID: "ghost"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "categoryId", vErr.Field)
}

func TestAddItem_AppearsInCategoryListing(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	item, err := s.AddItem(ctx, ItemDraft{
		Name:       "Mango Juice",
		NameLocal:  "عصير مانجو",
		Price:      decimal.NewFromInt(25),
		CategoryID: "drinks",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	items, err := s.ListItems(ctx, "drinks")
	require.NoError(t, err)
	assert.Equal(t, item.ID, items[len(items)-1].ID)
}

func TestUpdateItem(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	item, err := s.AddItem(ctx, ItemDraft{
		NameLocal: "عصير مانجو", Price: decimal.NewFromInt(25), CategoryID: "drinks",
	})
	require.NoError(t, err)

	updated, err := s.UpdateItem(ctx, item.ID, ItemDraft{
		NameLocal: "عصير مانجو كبير", Price: decimal.NewFromInt(30), CategoryID: "drinks",
	})
	require.NoError(t, err)
	assert.Equal(t, item.ID, updated.ID)
	assert.True(t, decimal.NewFromInt(30).Equal(updated.Price))

	_, err = s.UpdateItem(ctx, "ghost", ItemDraft{
		NameLocal: "x", Price: decimal.NewFromInt(1), CategoryID: "drinks",
	})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestBuiltinEntriesAreImmutable(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.UpdateItem(ctx, "bread", ItemDraft{
		NameLocal: "عيش", Price: decimal.NewFromInt(12), CategoryID: "appetizers",
	})
	require.ErrorIs(t, err, ErrBuiltin)

	require.ErrorIs(t, s.DeleteItem(ctx, "bread"), ErrBuiltin)
	require.ErrorIs(t, s.DeleteCategory(ctx, "drinks"), ErrBuiltin)
}

func TestDeleteCategory_CascadesToItems(t *testing.T) {
	s, repo := newTestStore()
	ctx := context.Background()

	cat, err := s.AddCategory(ctx, CategoryDraft{DisplayName: "Grills"})
	require.NoError(t, err)
	_, err = s.AddItem(ctx, ItemDraft{
		NameLocal: "كفتة", Price: decimal.NewFromInt(90), CategoryID: cat.ID,
	})
	require.NoError(t, err)
	kept, err := s.AddItem(ctx, ItemDraft{
		NameLocal: "عصير", Price: decimal.NewFromInt(20), CategoryID: "drinks",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, cat.ID))

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	for _, c := range cats {
		assert.NotEqual(t, cat.ID, c.ID)
	}
	for _, it := range repo.items {
		assert.NotEqual(t, cat.ID, it.CategoryID)
	}

	// Items in other categories survive the cascade.
	items, err := s.ListItems(ctx, "drinks")
	require.NoError(t, err)
	assert.Equal(t, kept.ID, items[len(items)-1].ID)
}

func TestDeleteCategory_MissingFails(t *testing.T) {
	s, _ := newTestStore()
	require.ErrorIs(t, s.DeleteCategory(context.Background(), "ghost"), ErrCategoryNotFound)
}

func TestFindItem(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	it, err := s.FindItem(ctx, "fattah-chicken")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(it.Price))

	_, err = s.FindItem(ctx, "ghost")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeriveCategoryID(t *testing.T) {
	assert.Equal(t, "hot-soups", DeriveCategoryID("Hot Soups"))
	assert.Equal(t, "grills", DeriveCategoryID("  Grills  "))
	assert.Equal(t, "a-b-c", DeriveCategoryID("A\tB  C"))
}

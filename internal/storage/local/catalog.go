package local

import (
	"context"

	"github.com/go-faster/jx"

	"github.com/ashraf-koshary/orderdesk/internal/domain/catalog"
	"github.com/ashraf-koshary/orderdesk/pkg/blobstore"
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository persists the custom part of the catalog under the
// catalog.items and catalog.categories blobs.
type CatalogRepository struct {
	store blobstore.Store
}

// NewCatalogRepository returns a CatalogRepository over the given store.
func NewCatalogRepository(store blobstore.Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

func (r *CatalogRepository) LoadItems(ctx context.Context) ([]catalog.Item, error) {
	blob, ok, err := r.store.Get(ctx, keyCatalogItems)
	if err != nil || !ok {
		return nil, err
	}
	raw, err := decodeEnvelope(keyCatalogItems, blob)
	if err != nil {
		return nil, err
	}

	var items []catalog.Item
	d := jx.DecodeBytes(raw)
	if err := d.Arr(func(d *jx.Decoder) error {
		it, err := decodeItem(d)
		if err != nil {
			return err
		}
		items = append(items, it)
		return nil
	}); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepository) SaveItems(ctx context.Context, items []catalog.Item) error {
	blob := encodeEnvelope(func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, it := range items {
				encodeItem(e, it)
			}
		})
	})
	return r.store.Put(ctx, keyCatalogItems, blob)
}

func (r *CatalogRepository) LoadCategories(ctx context.Context) ([]catalog.Category, error) {
	blob, ok, err := r.store.Get(ctx, keyCatalogCategories)
	if err != nil || !ok {
		return nil, err
	}
	raw, err := decodeEnvelope(keyCatalogCategories, blob)
	if err != nil {
		return nil, err
	}

	var categories []catalog.Category
	d := jx.DecodeBytes(raw)
	if err := d.Arr(func(d *jx.Decoder) error {
		c, err := decodeCategory(d)
		if err != nil {
			return err
		}
		categories = append(categories, c)
		return nil
	}); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CatalogRepository) SaveCategories(ctx context.Context, categories []catalog.Category) error {
	blob := encodeEnvelope(func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, c := range categories {
				encodeCategory(e, c)
			}
		})
	})
	return r.store.Put(ctx, keyCatalogCategories, blob)
}

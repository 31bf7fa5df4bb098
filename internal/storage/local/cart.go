package local

import (
	"context"

	"github.com/go-faster/jx"

	"github.com/ashraf-koshary/orderdesk/internal/domain/cart"
	"github.com/ashraf-koshary/orderdesk/pkg/blobstore"
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository persists one cart blob per user under cart.<userID>.
// Re-scoping on user switch falls out of the key scheme: each user reads and
// writes only their own blob.
type CartRepository struct {
	store blobstore.Store
}

// NewCartRepository returns a CartRepository over the given store.
func NewCartRepository(store blobstore.Store) *CartRepository {
	return &CartRepository{store: store}
}

func (r *CartRepository) Load(ctx context.Context, userID string) (*cart.Cart, error) {
	key := cartKeyPrefix + userID
	blob, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return cart.New(), nil
	}
	raw, err := decodeEnvelope(key, blob)
	if err != nil {
		return nil, err
	}

	var lines []cart.Line
	d := jx.DecodeBytes(raw)
	if err := d.Arr(func(d *jx.Decoder) error {
		l, err := decodeLine(d)
		if err != nil {
			return err
		}
		lines = append(lines, l)
		return nil
	}); err != nil {
		return nil, err
	}
	return cart.FromLines(lines), nil
}

func (r *CartRepository) Save(ctx context.Context, userID string, c *cart.Cart) error {
	blob := encodeEnvelope(func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, l := range c.Lines() {
				encodeLine(e, l)
			}
		})
	})
	return r.store.Put(ctx, cartKeyPrefix+userID, blob)
}

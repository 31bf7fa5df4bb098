package local

import (
	"context"

	"github.com/go-faster/jx"

	"github.com/ashraf-koshary/orderdesk/internal/domain/order"
	"github.com/ashraf-koshary/orderdesk/pkg/blobstore"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository persists the full order history under the orders blob.
type OrderRepository struct {
	store blobstore.Store
}

// NewOrderRepository returns an OrderRepository over the given store.
func NewOrderRepository(store blobstore.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Load(ctx context.Context) ([]order.Order, error) {
	blob, ok, err := r.store.Get(ctx, keyOrders)
	if err != nil || !ok {
		return nil, err
	}
	raw, err := decodeEnvelope(keyOrders, blob)
	if err != nil {
		return nil, err
	}

	var orders []order.Order
	d := jx.DecodeBytes(raw)
	if err := d.Arr(func(d *jx.Decoder) error {
		o, err := decodeOrder(d)
		if err != nil {
			return err
		}
		orders = append(orders, o)
		return nil
	}); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Save(ctx context.Context, orders []order.Order) error {
	blob := encodeEnvelope(func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, o := range orders {
				encodeOrder(e, o)
			}
		})
	})
	return r.store.Put(ctx, keyOrders, blob)
}

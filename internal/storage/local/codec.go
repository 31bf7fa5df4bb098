// Package local implements the domain repositories over a blobstore.Store,
// the Go-side equivalent of the browser's local storage contract: one
// JSON-encoded blob per entity set, rewritten in full on every mutation.
package local

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/ashraf-koshary/orderdesk/internal/domain/cart"
	"github.com/ashraf-koshary/orderdesk/internal/domain/catalog"
	"github.com/ashraf-koshary/orderdesk/internal/domain/order"
)

// Blob keys, shared with any future UI layer reading the same store.
const (
	keyCatalogItems      = "catalog.items"
	keyCatalogCategories = "catalog.categories"
	keyOrders            = "orders"
	cartKeyPrefix        = "cart."
)

// schemaVersion is stamped into every persisted blob so future field
// additions do not corrupt older saved data. Blobs with a higher version than
// we know are rejected rather than misread.
const schemaVersion = 1

// SchemaVersionError indicates a persisted blob written by a newer schema.
type SchemaVersionError struct {
	Key     string
	Version int
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("blob %q has schema version %d, newest supported is %d", e.Key, e.Version, schemaVersion)
}

// encodeEnvelope wraps the payload in {"v":N,"data":...}.
func encodeEnvelope(data func(e *jx.Encoder)) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("v", func(e *jx.Encoder) { e.Int(schemaVersion) })
		e.Field("data", data)
	})
	return e.Bytes()
}

// decodeEnvelope checks the schema version and returns the raw payload.
// A missing version field is treated as version 1 (pre-envelope blobs).
func decodeEnvelope(key string, blob []byte) (jx.Raw, error) {
	d := jx.DecodeBytes(blob)
	var (
		version int
		raw     jx.Raw
	)
	if err := d.Obj(func(d *jx.Decoder, k string) error {
		switch k {
		case "v":
			v, err := d.Int()
			version = v
			return err
		case "data":
			r, err := d.Raw()
			raw = r
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrapf(err, "decode blob %q", key)
	}
	if version > schemaVersion {
		return nil, &SchemaVersionError{Key: key, Version: version}
	}
	return raw, nil
}

func encodeLine(e *jx.Encoder, l cart.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("itemId", func(e *jx.Encoder) { e.Str(l.ItemID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(l.Name) })
		e.Field("nameLocal", func(e *jx.Encoder) { e.Str(l.NameLocal) })
		e.Field("price", func(e *jx.Encoder) { e.Str(l.Price.String()) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
	})
}

func decodeLine(d *jx.Decoder) (cart.Line, error) {
	var l cart.Line
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "itemId":
			v, err := d.Str()
			l.ItemID = v
			return err
		case "name":
			v, err := d.Str()
			l.Name = v
			return err
		case "nameLocal":
			v, err := d.Str()
			l.NameLocal = v
			return err
		case "price":
			return decodeDecimal(d, &l.Price)
		case "quantity":
			v, err := d.Int()
			l.Quantity = v
			return err
		default:
			return d.Skip()
		}
	})
	return l, err
}

func encodeItem(e *jx.Encoder, it catalog.Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(it.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
		e.Field("nameLocal", func(e *jx.Encoder) { e.Str(it.NameLocal) })
		e.Field("price", func(e *jx.Encoder) { e.Str(it.Price.String()) })
		e.Field("categoryId", func(e *jx.Encoder) { e.Str(it.CategoryID) })
		e.Field("description", func(e *jx.Encoder) { e.Str(it.Description) })
	})
}

func decodeItem(d *jx.Decoder) (catalog.Item, error) {
	var it catalog.Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			it.ID = v
			return err
		case "name":
			v, err := d.Str()
			it.Name = v
			return err
		case "nameLocal":
			v, err := d.Str()
			it.NameLocal = v
			return err
		case "price":
			return decodeDecimal(d, &it.Price)
		case "categoryId":
			v, err := d.Str()
			it.CategoryID = v
			return err
		case "description":
			v, err := d.Str()
			it.Description = v
			return err
		default:
			return d.Skip()
		}
	})
	return it, err
}

func encodeCategory(e *jx.Encoder, c catalog.Category) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(c.ID) })
		e.Field("displayName", func(e *jx.Encoder) { e.Str(c.DisplayName) })
		e.Field("icon", func(e *jx.Encoder) { e.Str(c.Icon) })
	})
}

func decodeCategory(d *jx.Decoder) (catalog.Category, error) {
	var c catalog.Category
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			c.ID = v
			return err
		case "displayName":
			v, err := d.Str()
			c.DisplayName = v
			return err
		case "icon":
			v, err := d.Str()
			c.Icon = v
			return err
		default:
			return d.Skip()
		}
	})
	return c, err
}

func encodeOrder(e *jx.Encoder, o order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("userId", func(e *jx.Encoder) { e.Str(o.UserID) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range o.Items {
					encodeLine(e, l)
				}
			})
		})
		e.Field("total", func(e *jx.Encoder) { e.Str(o.Total.String()) })
		e.Field("customerInfo", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("name", func(e *jx.Encoder) { e.Str(o.Customer.Name) })
				e.Field("email", func(e *jx.Encoder) { e.Str(o.Customer.Email) })
				e.Field("phone", func(e *jx.Encoder) { e.Str(o.Customer.Phone) })
				e.Field("address", func(e *jx.Encoder) { e.Str(o.Customer.Address) })
			})
		})
		e.Field("deliveryMethod", func(e *jx.Encoder) { e.Str(string(o.DeliveryMethod)) })
		e.Field("selectedBranchId", func(e *jx.Encoder) { e.Str(o.BranchID) })
		e.Field("notes", func(e *jx.Encoder) { e.Str(o.Notes) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(o.CreatedAt.Format(time.RFC3339Nano)) })
	})
}

func decodeOrder(d *jx.Decoder) (order.Order, error) {
	var o order.Order
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			o.ID = v
			return err
		case "userId":
			v, err := d.Str()
			o.UserID = v
			return err
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				l, err := decodeLine(d)
				if err != nil {
					return err
				}
				o.Items = append(o.Items, l)
				return nil
			})
		case "total":
			return decodeDecimal(d, &o.Total)
		case "customerInfo":
			return d.Obj(func(d *jx.Decoder, key string) error {
				switch key {
				case "name":
					v, err := d.Str()
					o.Customer.Name = v
					return err
				case "email":
					v, err := d.Str()
					o.Customer.Email = v
					return err
				case "phone":
					v, err := d.Str()
					o.Customer.Phone = v
					return err
				case "address":
					v, err := d.Str()
					o.Customer.Address = v
					return err
				default:
					return d.Skip()
				}
			})
		case "deliveryMethod":
			v, err := d.Str()
			o.DeliveryMethod = order.DeliveryMethod(v)
			return err
		case "selectedBranchId":
			v, err := d.Str()
			o.BranchID = v
			return err
		case "notes":
			v, err := d.Str()
			o.Notes = v
			return err
		case "status":
			v, err := d.Str()
			o.Status = order.Status(v)
			return err
		case "createdAt":
			v, err := d.Str()
			if err != nil {
				return err
			}
			t, err := time.Parse(time.RFC3339Nano, v)
			o.CreatedAt = t
			return err
		default:
			return d.Skip()
		}
	})
	return o, err
}

func decodeDecimal(d *jx.Decoder, out *decimal.Decimal) error {
	v, err := d.Str()
	if err != nil {
		return err
	}
	dec, err := decimal.NewFromString(v)
	if err != nil {
		return errors.Wrap(err, "parse decimal")
	}
	*out = dec
	return nil
}

// MarshalOrder encodes a single order as a standalone JSON object. It is the
// line format of order archives.
func MarshalOrder(o order.Order) []byte {
	var e jx.Encoder
	encodeOrder(&e, o)
	return e.Bytes()
}

// UnmarshalOrder decodes a single order produced by MarshalOrder.
func UnmarshalOrder(data []byte) (order.Order, error) {
	return decodeOrder(jx.DecodeBytes(data))
}

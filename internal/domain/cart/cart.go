// Package cart implements the pre-checkout selection for one user session:
// an ordered collection of line items with a derived total.
package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ashraf-koshary/orderdesk/internal/domain/catalog"
)

// InvalidQuantityError indicates a quantity outside the allowed range for the
// attempted operation.
type InvalidQuantityError struct {
	ItemID   string
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for item %s", e.Quantity, e.ItemID)
}

// Line is one catalog item plus a quantity. Name and price are copied from
// the catalog when the line is added, so the line survives later menu edits.
type Line struct {
	ItemID    string
	Name      string
	NameLocal string
	Price     decimal.Decimal
	Quantity  int
}

// Total returns price × quantity for this line.
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the lines in first-insertion order. A line with quantity ≤ 0
// never exists: reducing a quantity to zero removes the line.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// FromLines rebuilds a cart from persisted lines, dropping any line whose
// quantity is not positive.
func FromLines(lines []Line) *Cart {
	c := &Cart{lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		if l.Quantity > 0 {
			c.lines = append(c.lines, l)
		}
	}
	return c
}

// AddLine adds quantity of the given item. If a line for the item already
// exists its quantity accumulates; otherwise a new line is appended.
func (c *Cart) AddLine(item catalog.Item, quantity int) error {
	if quantity < 1 {
		return &InvalidQuantityError{ItemID: item.ID, Quantity: quantity}
	}
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		NameLocal: item.NameLocal,
		Price:     item.Price,
		Quantity:  quantity,
	})
	return nil
}

// SetQuantity replaces the quantity of an existing line. Zero removes the
// line entirely; a negative quantity is an error. Setting the quantity of a
// missing line is a no-op, matching RemoveLine semantics.
func (c *Cart) SetQuantity(itemID string, quantity int) error {
	if quantity < 0 {
		return &InvalidQuantityError{ItemID: itemID, Quantity: quantity}
	}
	if quantity == 0 {
		c.RemoveLine(itemID)
		return nil
	}
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

// RemoveLine deletes the line for itemID. Missing lines are a deliberate
// non-error.
func (c *Cart) RemoveLine(itemID string) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Total recomputes Σ(price × quantity) on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// LineCount returns Σ(quantity) across lines, used for the cart badge.
func (c *Cart) LineCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the lines in first-insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Repository persists one cart per user. Loading a user with no saved cart
// returns an empty cart, not an error.
type Repository interface {
	Load(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, userID string, c *Cart) error
}

// Package invoice renders a read-only projection of an order for display and
// printing. Build is a pure function of the order and the branch list; the
// two render targets (plain text for the terminal, standalone HTML for print)
// share the same Document model.
package invoice

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/ashraf-koshary/orderdesk/internal/domain/branch"
	"github.com/ashraf-koshary/orderdesk/internal/domain/order"
)

// Config carries the fixed invoice parameters. The delivery fee is a flat
// amount, not computed from distance.
type Config struct {
	DeliveryFee       decimal.Decimal
	Currency          string
	RestaurantName    string
	RestaurantTagline string
}

// Renderer builds invoice documents for orders.
type Renderer struct {
	cfg      Config
	branches []branch.Branch
}

// New returns a Renderer over the given branch list. Zero-value config fields
// fall back to the restaurant defaults.
func New(cfg Config, branches []branch.Branch) *Renderer {
	if cfg.DeliveryFee.IsZero() {
		cfg.DeliveryFee = decimal.NewFromInt(15)
	}
	if cfg.Currency == "" {
		cfg.Currency = "EGP"
	}
	if cfg.RestaurantName == "" {
		cfg.RestaurantName = "Koshary Ashraf"
	}
	if cfg.RestaurantTagline == "" {
		cfg.RestaurantTagline = "Since 1970"
	}
	return &Renderer{cfg: cfg, branches: branches}
}

// LineView is one itemized row of the invoice.
type LineView struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

// Document is the laid-out invoice, ready for either render target.
type Document struct {
	RestaurantName    string
	RestaurantTagline string

	OrderID string
	Date    string

	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	Pickup     bool
	BranchName string

	Lines []LineView

	Subtotal       string
	HasDeliveryFee bool
	DeliveryFee    string
	GrandTotal     string

	Notes string
}

// Build projects an order into a Document. It never mutates the order, and
// rendering the same order twice produces identical output.
func (r *Renderer) Build(o *order.Order) Document {
	doc := Document{
		RestaurantName:    r.cfg.RestaurantName,
		RestaurantTagline: r.cfg.RestaurantTagline,
		OrderID:           o.ID,
		Date:              o.CreatedAt.Format("02/01/2006"),
		CustomerName:      o.Customer.Name,
		CustomerPhone:     o.Customer.Phone,
		CustomerAddress:   o.Customer.Address,
		Notes:             o.Notes,
	}

	if o.DeliveryMethod == order.MethodPickup {
		doc.Pickup = true
		b, _ := branch.Lookup(r.branches, o.BranchID)
		doc.BranchName = b.NameLocal
	}

	subtotal := decimal.Zero
	doc.Lines = make([]LineView, 0, len(o.Items))
	for _, l := range o.Items {
		name := l.NameLocal
		if name == "" {
			name = l.Name
		}
		doc.Lines = append(doc.Lines, LineView{
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: r.money(l.Price),
			LineTotal: r.money(l.Total()),
		})
		subtotal = subtotal.Add(l.Total())
	}

	doc.Subtotal = r.money(subtotal)
	if o.DeliveryMethod == order.MethodDelivery {
		doc.HasDeliveryFee = true
		doc.DeliveryFee = r.money(r.cfg.DeliveryFee)
		doc.GrandTotal = r.money(subtotal.Add(r.cfg.DeliveryFee))
	} else {
		doc.GrandTotal = r.money(subtotal)
	}
	return doc
}

// RenderText writes the on-screen invoice.
func (r *Renderer) RenderText(w io.Writer, o *order.Order) error {
	doc := r.Build(o)
	if err := textTemplate.Execute(w, doc); err != nil {
		return errors.Wrap(err, "render text invoice")
	}
	return nil
}

// RenderHTML writes a standalone print-formatted document.
func (r *Renderer) RenderHTML(w io.Writer, o *order.Order) error {
	doc := r.Build(o)
	if err := htmlTemplate.Execute(w, doc); err != nil {
		return errors.Wrap(err, "render html invoice")
	}
	return nil
}

func (r *Renderer) money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + r.cfg.Currency
}

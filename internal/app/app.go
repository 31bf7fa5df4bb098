package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/ashraf-koshary/orderdesk/internal/domain/branch"
	"github.com/ashraf-koshary/orderdesk/internal/domain/cart"
	"github.com/ashraf-koshary/orderdesk/internal/domain/catalog"
	"github.com/ashraf-koshary/orderdesk/internal/domain/invoice"
	"github.com/ashraf-koshary/orderdesk/internal/domain/order"
	"github.com/ashraf-koshary/orderdesk/internal/storage/local"
	"github.com/ashraf-koshary/orderdesk/pkg/blobstore"
)

const usage = `orderdesk <command>

Commands:
  menu                             list categories and items
  cart show <user>                 show a user's cart
  cart add <user> <item> [qty]     add an item to the cart
  cart set <user> <item> <qty>     set a line quantity (0 removes)
  cart clear <user>                empty the cart
  checkout <user> [flags]          finalize the cart into an order
  orders list [status]             list orders, newest first
  orders status <id> <status>      set an order's status
  orders delete <id>               delete an order
  orders stats                     per-status counts and gross revenue
  invoice <id> [-html]             render an order's invoice
`

// components bundles the wired order core.
type components struct {
	catalog *catalog.Store
	carts   cart.Repository
	orders  *order.Service
	invoice *invoice.Renderer
}

func wire(cfg *Config) (*components, error) {
	store, err := blobstore.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	fee, err := cfg.deliveryFee()
	if err != nil {
		return nil, err
	}
	carts := local.NewCartRepository(store)
	return &components{
		catalog: catalog.NewStore(local.NewCatalogRepository(store)),
		carts:   carts,
		orders:  order.NewService(local.NewOrderRepository(store), carts),
		invoice: invoice.New(invoice.Config{
			DeliveryFee:       fee,
			Currency:          cfg.Currency,
			RestaurantName:    cfg.Restaurant.Name,
			RestaurantTagline: cfg.Restaurant.Tagline,
		}, branch.All()),
	}, nil
}

// Run wires the order core over the configured data directory and dispatches
// the requested subcommand.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	ctx = zctx.Base(ctx, lg)
	c, err := wire(cfg)
	if err != nil {
		return err
	}

	switch args[0] {
	case "menu":
		return c.runMenu(ctx, os.Stdout)
	case "cart":
		return c.runCart(ctx, os.Stdout, args[1:])
	case "checkout":
		return c.runCheckout(ctx, os.Stdout, args[1:])
	case "orders":
		return c.runOrders(ctx, os.Stdout, args[1:])
	case "invoice":
		return c.runInvoice(ctx, os.Stdout, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return errors.Errorf("unknown command %q", args[0])
	}
}

func (c *components) runCart(ctx context.Context, w io.Writer, args []string) error {
	if len(args) < 2 {
		return errors.New("cart: usage: cart <show|add|set|clear> <user> ...")
	}
	sub, userID := args[0], args[1]
	cc, err := c.carts.Load(ctx, userID)
	if err != nil {
		return err
	}

	switch sub {
	case "show":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, l := range cc.Lines() {
			fmt.Fprintf(tw, "%s\t%s\tx%d\t%s\n", l.ItemID, l.NameLocal, l.Quantity, l.Total().StringFixed(2))
		}
		fmt.Fprintf(tw, "total\t\t%d items\t%s\n", cc.LineCount(), cc.Total().StringFixed(2))
		return tw.Flush()

	case "add":
		if len(args) < 3 {
			return errors.New("usage: cart add <user> <item> [qty]")
		}
		qty := 1
		if len(args) > 3 {
			qty, err = strconv.Atoi(args[3])
			if err != nil {
				return errors.Wrap(err, "parse quantity")
			}
		}
		item, err := c.catalog.FindItem(ctx, args[2])
		if err != nil {
			return err
		}
		if err := cc.AddLine(*item, qty); err != nil {
			return err
		}

	case "set":
		if len(args) != 4 {
			return errors.New("usage: cart set <user> <item> <qty>")
		}
		qty, err := strconv.Atoi(args[3])
		if err != nil {
			return errors.Wrap(err, "parse quantity")
		}
		if err := cc.SetQuantity(args[2], qty); err != nil {
			return err
		}

	case "clear":
		cc.Clear()

	default:
		return errors.Errorf("cart: unknown subcommand %q", sub)
	}

	if err := c.carts.Save(ctx, userID, cc); err != nil {
		return err
	}
	zctx.From(ctx).Info("Cart updated",
		zap.String("user_id", userID),
		zap.Int("items", cc.LineCount()),
	)
	return nil
}

func (c *components) runCheckout(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: checkout <user> [flags]")
	}
	userID := args[0]

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	var req order.CheckoutRequest
	fs.StringVar(&req.Customer.Name, "name", "", "customer name")
	fs.StringVar(&req.Customer.Email, "email", "", "customer email")
	fs.StringVar(&req.Customer.Phone, "phone", "", "customer phone")
	fs.StringVar(&req.Customer.Address, "address", "", "delivery address")
	method := fs.String("method", "delivery", "delivery or pickup")
	fs.StringVar(&req.BranchID, "branch", "", "pickup branch id")
	fs.StringVar(&req.Notes, "notes", "", "order notes")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	req.UserID = userID
	req.DeliveryMethod = order.DeliveryMethod(*method)

	o, err := c.orders.Checkout(ctx, req)
	if err != nil {
		return err
	}
	zctx.From(ctx).Info("Order created",
		zap.String("order_id", o.ID),
		zap.String("user_id", userID),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return c.invoice.RenderText(w, o)
}

func (c *components) runMenu(ctx context.Context, w io.Writer) error {
	categories, err := c.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cat := range categories {
		fmt.Fprintf(tw, "%s %s (%s)\n", cat.Icon, cat.DisplayName, cat.ID)
		items, err := c.catalog.ListItems(ctx, cat.ID)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", it.ID, it.NameLocal, it.Price.StringFixed(2))
		}
	}
	return tw.Flush()
}

func (c *components) runOrders(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("orders: missing subcommand (list, status, delete, stats)")
	}
	switch args[0] {
	case "list":
		var (
			orders []order.Order
			err    error
		)
		if len(args) > 1 {
			status, perr := order.ParseStatus(args[1])
			if perr != nil {
				return perr
			}
			orders, err = c.orders.ListByStatus(ctx, status)
		} else {
			orders, err = c.orders.ListAll(ctx)
		}
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tCUSTOMER\tMETHOD\tSTATUS\tTOTAL")
		for _, o := range orders {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				o.ID, o.CreatedAt.Format("02/01/2006 15:04"), o.Customer.Name,
				o.DeliveryMethod, o.Status, o.Total.StringFixed(2))
		}
		return tw.Flush()

	case "status":
		if len(args) != 3 {
			return errors.New("usage: orders status <id> <status>")
		}
		status, err := order.ParseStatus(args[2])
		if err != nil {
			return err
		}
		o, err := c.orders.UpdateStatus(ctx, args[1], status)
		if err != nil {
			return err
		}
		zctx.From(ctx).Info("Order status updated",
			zap.String("order_id", o.ID),
			zap.String("status", string(o.Status)),
		)
		return nil

	case "delete":
		if len(args) != 2 {
			return errors.New("usage: orders delete <id>")
		}
		if err := c.orders.Delete(ctx, args[1]); err != nil {
			return err
		}
		zctx.From(ctx).Info("Order deleted", zap.String("order_id", args[1]))
		return nil

	case "stats":
		stats, err := c.orders.Stats(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "orders\t%d\n", stats.Total)
		for _, s := range order.Statuses {
			fmt.Fprintf(tw, "%s\t%d\n", s, stats.ByStatus[s])
		}
		fmt.Fprintf(tw, "revenue\t%s\n", stats.Revenue.StringFixed(2))
		return tw.Flush()

	default:
		return errors.Errorf("orders: unknown subcommand %q", args[0])
	}
}

func (c *components) runInvoice(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: invoice <id> [-html]")
	}
	o, err := c.orders.FindByID(ctx, args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 && args[1] == "-html" {
		return c.invoice.RenderHTML(w, o)
	}
	return c.invoice.RenderText(w, o)
}

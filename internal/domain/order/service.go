package order

import (
	"context"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ashraf-koshary/orderdesk/internal/domain/cart"
)

// TransitionPolicy decides whether a status change is allowed. The default
// policy permits every transition: administrative override is a deliberate
// feature, and the hook exists so a stricter policy can be installed later
// without changing callers.
type TransitionPolicy func(from, to Status) error

// Option configures a Service.
type Option func(*Service)

// WithTransitionPolicy installs a status transition policy.
func WithTransitionPolicy(p TransitionPolicy) Option {
	return func(s *Service) { s.transitions = p }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the order id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// Service encapsulates order creation, listing, status changes, and deletion.
type Service struct {
	orders      Repository
	carts       cart.Repository
	now         func() time.Time
	newID       func() string
	transitions TransitionPolicy
}

// NewService creates an order Service with the required domain dependencies.
func NewService(orders Repository, carts cart.Repository, opts ...Option) *Service {
	s := &Service{
		orders: orders,
		carts:  carts,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest holds the input for creating an order from explicit lines.
type CreateRequest struct {
	UserID         string
	Lines          []cart.Line
	Customer       CustomerInfo
	DeliveryMethod DeliveryMethod
	BranchID       string
	Notes          string
}

// Create validates the request, freezes the lines into a new pending order,
// and appends it to the persisted order set. Nothing is written when
// validation fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	items := make([]cart.Line, len(req.Lines))
	copy(items, req.Lines)

	total := decimal.Zero
	for _, l := range items {
		total = total.Add(l.Total())
	}

	o := Order{
		ID:             s.newID(),
		UserID:         req.UserID,
		Items:          items,
		Total:          total,
		Customer:       req.Customer,
		DeliveryMethod: req.DeliveryMethod,
		BranchID:       req.BranchID,
		Notes:          req.Notes,
		Status:         StatusPending,
		CreatedAt:      s.now(),
	}

	all, err := s.orders.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	all = append(all, o)
	if err := s.orders.Save(ctx, all); err != nil {
		return nil, errors.Wrap(err, "save orders")
	}
	return &o, nil
}

// CheckoutRequest holds the input for finalizing a user's cart.
type CheckoutRequest struct {
	UserID         string
	Customer       CustomerInfo
	DeliveryMethod DeliveryMethod
	BranchID       string
	Notes          string
}

// Checkout finalizes the user's cart: it snapshots the lines into a new
// order and clears the cart. A later mutation of the live cart never alters
// the created order.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	c, err := s.carts.Load(ctx, req.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	o, err := s.Create(ctx, CreateRequest{
		UserID:         req.UserID,
		Lines:          c.Lines(),
		Customer:       req.Customer,
		DeliveryMethod: req.DeliveryMethod,
		BranchID:       req.BranchID,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err := s.carts.Save(ctx, req.UserID, c); err != nil {
		return o, errors.Wrap(err, "clear cart")
	}
	return o, nil
}

// ListAll returns every order, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	all, err := s.orders.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// ListByUser filters ListAll down to one user's history.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListByStatus filters ListAll down to orders with the given status.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Order, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown status"}
	}
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, o := range all {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// FindByID returns a copy of the order with the given id.
func (s *Service) FindByID(ctx context.Context, id string) (*Order, error) {
	all, err := s.orders.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	for i := range all {
		if all[i].ID == id {
			o := all[i]
			return &o, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// UpdateStatus sets the status label on an order and returns the updated
// record. The change is immediately visible to subsequent reads.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown status"}
	}

	all, err := s.orders.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		if s.transitions != nil {
			if err := s.transitions(all[i].Status, status); err != nil {
				return nil, errors.Wrap(err, "transition rejected")
			}
		}
		all[i].Status = status
		if err := s.orders.Save(ctx, all); err != nil {
			return nil, errors.Wrap(err, "save orders")
		}
		o := all[i]
		return &o, nil
	}
	return nil, &NotFoundError{ID: id}
}

// Delete removes an order permanently. Deleting an absent id is an error,
// not a no-op: repeated deletion of the same id fails the second time.
func (s *Service) Delete(ctx context.Context, id string) error {
	all, err := s.orders.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load orders")
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		all = append(all[:i], all[i+1:]...)
		return errors.Wrap(s.orders.Save(ctx, all), "save orders")
	}
	return &NotFoundError{ID: id}
}

// Stats summarizes the order set for the admin dashboard.
type Stats struct {
	Total    int
	ByStatus map[Status]int
	Revenue  decimal.Decimal
}

// Stats counts orders per status and sums gross revenue over all orders.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	all, err := s.orders.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	st := &Stats{
		Total:    len(all),
		ByStatus: make(map[Status]int, len(Statuses)),
		Revenue:  decimal.Zero,
	}
	for _, o := range all {
		st.ByStatus[o.Status]++
		st.Revenue = st.Revenue.Add(o.Total)
	}
	return st, nil
}

func validateCreate(req CreateRequest) error {
	if req.Customer.Name == "" {
		return &ValidationError{Field: "name", Reason: "customer name is required"}
	}
	if req.Customer.Phone == "" {
		return &ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	if !req.DeliveryMethod.Valid() {
		return &ValidationError{Field: "deliveryMethod", Reason: "must be delivery or pickup"}
	}
	if req.DeliveryMethod == MethodDelivery && req.Customer.Address == "" {
		return &ValidationError{Field: "address", Reason: "address is required for delivery orders"}
	}
	for _, l := range req.Lines {
		if l.Quantity < 1 {
			return &ValidationError{Field: "quantity", Reason: "line quantity must be at least 1"}
		}
	}
	return nil
}

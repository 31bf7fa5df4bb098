// Package order implements the order lifecycle: checkout turns a cart into an
// immutable order record, administrators move its status label, and the order
// is destroyed only by explicit deletion.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/ashraf-koshary/orderdesk/internal/domain/cart"
)

// ErrEmptyCart is returned when checkout is attempted with zero lines.
var ErrEmptyCart = errors.New("cart is empty")

// NotFoundError indicates an operation addressed a nonexistent order id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.ID)
}

// ValidationError indicates malformed checkout input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Status is the administrative label on an order. Any status may be set from
// any other status; the ordering below is the conventional happy path, not an
// enforced sequence.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
)

// Statuses lists all statuses in happy-path order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusCompleted,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts a stored or user-supplied label into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
	}
	return st, nil
}

// DeliveryMethod selects how the customer receives the order.
type DeliveryMethod string

const (
	MethodDelivery DeliveryMethod = "delivery"
	MethodPickup   DeliveryMethod = "pickup"
)

// Valid reports whether m is a known delivery method.
func (m DeliveryMethod) Valid() bool {
	return m == MethodDelivery || m == MethodPickup
}

// CustomerInfo is the customer snapshot frozen into the order at checkout.
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Order is a historical record created once at checkout. Only Status mutates
// afterwards; Items, Total, and Customer are frozen so the invoice stays
// faithful even if catalog prices later change.
type Order struct {
	ID             string
	UserID         string
	Items          []cart.Line
	Total          decimal.Decimal
	Customer       CustomerInfo
	DeliveryMethod DeliveryMethod
	BranchID       string
	Notes          string
	Status         Status
	CreatedAt      time.Time
}

// Repository persists the full order set. The set is logically append-only:
// the service rewrites the snapshot on every mutation, matching the
// single-writer blob model of the local store.
type Repository interface {
	Load(ctx context.Context) ([]Order, error)
	Save(ctx context.Context, orders []Order) error
}

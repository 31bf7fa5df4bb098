package invoice

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashraf-koshary/orderdesk/internal/domain/branch"
	"github.com/ashraf-koshary/orderdesk/internal/domain/cart"
	"github.com/ashraf-koshary/orderdesk/internal/domain/order"
)

func testOrder(method order.DeliveryMethod) *order.Order {
	return &order.Order{
		ID:     "order-1",
		UserID: "u1",
		Items: []cart.Line{
			{ItemID: "bread", Name: "Bread", NameLocal: "عيش", Price: decimal.NewFromInt(10), Quantity: 2},
			{ItemID: "salad", Name: "Salad", NameLocal: "سلطة", Price: decimal.NewFromInt(10), Quantity: 1},
		},
		Total: decimal.NewFromInt(30),
		Customer: order.CustomerInfo{
			Name:    "Ahmed",
			Phone:   "01000000000",
			Address: "12 Emad St",
		},
		DeliveryMethod: method,
		BranchID:       "haram-omnia",
		Status:         order.StatusPending,
		CreatedAt:      time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
	}
}

func newTestRenderer() *Renderer {
	return New(Config{}, branch.All())
}

func TestBuild_DeliveryAddsFee(t *testing.T) {
	doc := newTestRenderer().Build(testOrder(order.MethodDelivery))

	assert.Equal(t, "30.00 EGP", doc.Subtotal)
	assert.True(t, doc.HasDeliveryFee)
	assert.Equal(t, "15.00 EGP", doc.DeliveryFee)
	assert.Equal(t, "45.00 EGP", doc.GrandTotal)
	assert.False(t, doc.Pickup)
}

func TestBuild_PickupHasNoFee(t *testing.T) {
	doc := newTestRenderer().Build(testOrder(order.MethodPickup))

	assert.False(t, doc.HasDeliveryFee)
	assert.Equal(t, "30.00 EGP", doc.GrandTotal)
	assert.True(t, doc.Pickup)
	assert.Equal(t, "الهرم – محطة أمنية", doc.BranchName)
}

func TestBuild_UnknownBranchFallsBackToFirst(t *testing.T) {
	o := testOrder(order.MethodPickup)
	o.BranchID = "closed-branch"

	doc := newTestRenderer().Build(o)
	assert.Equal(t, "الهرم – شارع عماد", doc.BranchName)
}

func TestBuild_LinesKeepInsertionOrder(t *testing.T) {
	doc := newTestRenderer().Build(testOrder(order.MethodPickup))

	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "عيش", doc.Lines[0].Name)
	assert.Equal(t, 2, doc.Lines[0].Quantity)
	assert.Equal(t, "20.00 EGP", doc.Lines[0].LineTotal)
	assert.Equal(t, "سلطة", doc.Lines[1].Name)
}

func TestBuild_DateFormat(t *testing.T) {
	doc := newTestRenderer().Build(testOrder(order.MethodPickup))
	assert.Equal(t, "01/06/2025", doc.Date)
}

func TestRenderText_Idempotent(t *testing.T) {
	r := newTestRenderer()
	o := testOrder(order.MethodDelivery)

	var first, second bytes.Buffer
	require.NoError(t, r.RenderText(&first, o))
	require.NoError(t, r.RenderText(&second, o))

	assert.Equal(t, first.String(), second.String())
}

func TestRenderText_DeliveryContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestRenderer().RenderText(&buf, testOrder(order.MethodDelivery)))
	out := buf.String()

	assert.Contains(t, out, "Koshary Ashraf")
	assert.Contains(t, out, "Invoice #order-1")
	assert.Contains(t, out, "Ahmed")
	assert.Contains(t, out, "Delivery fee: 15.00 EGP")
	assert.Contains(t, out, "Total: 45.00 EGP")
	assert.NotContains(t, out, "Pickup branch")
}

func TestRenderText_PickupContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestRenderer().RenderText(&buf, testOrder(order.MethodPickup)))
	out := buf.String()

	assert.Contains(t, out, "Pickup branch: الهرم – محطة أمنية")
	assert.NotContains(t, out, "Delivery fee")
	assert.Contains(t, out, "Total: 30.00 EGP")
}

func TestRenderText_NotesBlock(t *testing.T) {
	r := newTestRenderer()

	o := testOrder(order.MethodPickup)
	var without bytes.Buffer
	require.NoError(t, r.RenderText(&without, o))
	assert.NotContains(t, without.String(), "Notes:")

	o.Notes = "extra hot sauce"
	var with bytes.Buffer
	require.NoError(t, r.RenderText(&with, o))
	assert.Contains(t, with.String(), "Notes: extra hot sauce")
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestRenderer().RenderHTML(&buf, testOrder(order.MethodDelivery)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Invoice #order-1")
	assert.Contains(t, out, "عيش")
	assert.Contains(t, out, "45.00 EGP")
}

func TestConfigDefaults(t *testing.T) {
	r := New(Config{
		DeliveryFee: decimal.NewFromInt(20),
		Currency:    "SAR",
	}, branch.All())
	doc := r.Build(testOrder(order.MethodDelivery))

	assert.Equal(t, "20.00 SAR", doc.DeliveryFee)
	assert.Equal(t, "50.00 SAR", doc.GrandTotal)
	assert.Equal(t, "Koshary Ashraf", doc.RestaurantName)
}

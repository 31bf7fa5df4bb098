package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashraf-koshary/orderdesk/internal/domain/catalog"
)

func newTestItem(id string, price int64) catalog.Item {
	return catalog.Item{
		ID:         id,
		Name:       id,
		NameLocal:  id,
		Price:      decimal.NewFromInt(price),
		CategoryID: "appetizers",
	}
}

func TestAddLine_AccumulatesQuantity(t *testing.T) {
	c := New()
	bread := newTestItem("bread", 10)

	require.NoError(t, c.AddLine(bread, 1))
	require.NoError(t, c.AddLine(bread, 2))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(30).Equal(c.Total()))
}

func TestAddLine_PreservesInsertionOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(newTestItem("bread", 10), 1))
	require.NoError(t, c.AddLine(newTestItem("salad", 10), 1))
	require.NoError(t, c.AddLine(newTestItem("bread", 10), 1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "bread", lines[0].ItemID)
	assert.Equal(t, "salad", lines[1].ItemID)
}

func TestAddLine_RejectsNonPositiveQuantity(t *testing.T) {
	c := New()

	err := c.AddLine(newTestItem("bread", 10), 0)
	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, "bread", iqErr.ItemID)
	assert.True(t, c.Empty())
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(newTestItem("bread", 10), 2))

	require.NoError(t, c.SetQuantity("bread", 0))

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.LineCount())
}

func TestSetQuantity_NegativeFails(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(newTestItem("bread", 10), 2))

	err := c.SetQuantity("bread", -1)
	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestSetQuantity_MissingLineIsNoop(t *testing.T) {
	c := New()
	require.NoError(t, c.SetQuantity("ghost", 5))
	assert.True(t, c.Empty())
}

func TestRemoveLine_MissingIsNoop(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(newTestItem("bread", 10), 1))

	c.RemoveLine("ghost")

	assert.Len(t, c.Lines(), 1)
}

func TestClear(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(newTestItem("bread", 10), 2))
	require.NoError(t, c.AddLine(newTestItem("salad", 10), 1))

	c.Clear()

	assert.True(t, c.Empty())
	assert.True(t, decimal.Zero.Equal(c.Total()))
}

func TestTotalAndLineCount(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(newTestItem("bread", 10), 2))
	require.NoError(t, c.AddLine(newTestItem("salad", 10), 1))

	assert.True(t, decimal.NewFromInt(30).Equal(c.Total()))
	assert.Equal(t, 3, c.LineCount())
}

func TestFromLines_DropsZeroQuantityLines(t *testing.T) {
	c := FromLines([]Line{
		{ItemID: "bread", Price: decimal.NewFromInt(10), Quantity: 2},
		{ItemID: "stale", Price: decimal.NewFromInt(5), Quantity: 0},
	})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "bread", lines[0].ItemID)
}

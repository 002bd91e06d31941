package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obadah/phonestore/config"
	"github.com/obadah/phonestore/internal/kvstore"
	"github.com/obadah/phonestore/internal/models"
)

func testKV(t *testing.T) kvstore.Store {
	t.Helper()
	kv, err := kvstore.Open(t.TempDir())
	require.NoError(t, err)
	return kv
}

func product(id string, price int64) models.Product {
	return models.Product{
		ID:        id,
		Name:      "Phone " + id,
		Brand:     "apple",
		Price:     decimal.NewFromInt(price),
		Currency:  "SAR",
		Available: true,
	}
}

func TestAddAggregates(t *testing.T) {
	c := Load(testKV(t))

	a := product("a", 100)
	require.True(t, c.Add(a))
	require.True(t, c.Add(a))

	lines := c.Lines()
	require.Len(t, lines, 1, "adding the same product never creates a second line")
	assert.Equal(t, 2, lines[0].Qty)
	assert.Equal(t, 2, c.Count())
	assert.True(t, c.Total().Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "SAR", c.Currency())
}

func TestAddUnavailableIsNoOp(t *testing.T) {
	c := Load(testKV(t))

	p := product("a", 100)
	p.Available = false
	assert.False(t, c.Add(p))
	assert.Zero(t, c.Len())
}

func TestAddSnapshotsPrice(t *testing.T) {
	c := Load(testKV(t))

	p := product("a", 100)
	require.True(t, c.Add(p))

	// A later catalog refresh changes the price; the line keeps its snapshot.
	p.Price = decimal.NewFromInt(150)
	require.True(t, c.Add(p))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(200)))
}

func TestQtyAdjustments(t *testing.T) {
	c := Load(testKV(t))
	require.True(t, c.Add(product("a", 100)))

	assert.True(t, c.IncQty("a"))
	assert.Equal(t, 2, c.Count())

	t.Run("dec to zero removes the line", func(t *testing.T) {
		assert.True(t, c.DecQty("a"))
		assert.Equal(t, 1, c.Count())
		assert.True(t, c.DecQty("a"))
		assert.Zero(t, c.Len(), "line is gone, qty never observed below 1")
	})

	t.Run("absent ids are no-ops", func(t *testing.T) {
		assert.False(t, c.IncQty("ghost"))
		assert.False(t, c.DecQty("ghost"))
		c.Remove("ghost")
		assert.Zero(t, c.Len())
	})
}

func TestRemoveAndClear(t *testing.T) {
	c := Load(testKV(t))
	require.True(t, c.Add(product("a", 100)))
	require.True(t, c.Add(product("b", 50)))

	c.Remove("a")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestCurrencyDefaults(t *testing.T) {
	c := Load(testKV(t))
	assert.Equal(t, config.DefaultCurrency, c.Currency(), "empty cart falls back to the default symbol")

	p := product("a", 10)
	p.Currency = "USD"
	require.True(t, c.Add(p))
	assert.Equal(t, "USD", c.Currency())
}

func TestTotalsMixedCurrency(t *testing.T) {
	c := Load(testKV(t))
	a := product("a", 10)
	b := product("b", 20)
	b.Currency = "USD"
	require.True(t, c.Add(a))
	require.True(t, c.Add(b))

	totals := c.Totals()
	assert.Equal(t, 2, totals.Count)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "SAR", totals.Currency, "first line in id order wins")
	assert.True(t, totals.Mixed)
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := testKV(t)

	c := Load(kv)
	require.True(t, c.Add(product("a", 100)))
	require.True(t, c.Add(product("a", 100)))
	require.True(t, c.Add(product("b", 50)))

	restored := Load(kv)
	assert.Equal(t, c.Lines(), restored.Lines())
	assert.Equal(t, 3, restored.Count())
	assert.True(t, restored.Total().Equal(decimal.NewFromInt(250)))
}

func TestLoadMalformedData(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{broken"},
		{"wrong shape", `[1, 2, 3]`},
		{"empty string", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := testKV(t)
			require.NoError(t, kv.Set("cart", tt.raw))

			c := Load(kv)
			assert.Zero(t, c.Len(), "malformed persisted cart means no cart")
		})
	}

	t.Run("invalid entries are skipped", func(t *testing.T) {
		kv := testKV(t)
		persisted := map[string]models.CartLine{
			"a": {ID: "a", Name: "Phone a", Qty: 2},
			"b": {ID: "b", Name: "Phone b", Qty: 0},
			"":  {Name: "no id", Qty: 1},
		}
		b, err := json.Marshal(persisted)
		require.NoError(t, err)
		require.NoError(t, kv.Set("cart", string(b)))

		c := Load(kv)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, 2, c.Lines()[0].Qty)
	})
}

func TestPersistFailureDoesNotBlockMutation(t *testing.T) {
	c := Load(failingKV{})
	assert.True(t, c.Add(product("a", 100)), "mutation succeeds even when the write fails")
	assert.Equal(t, 1, c.Count())
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool) { return "", false }
func (failingKV) Set(string, string) error  { return assert.AnError }
func (failingKV) Delete(string) error       { return assert.AnError }

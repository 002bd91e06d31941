package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obadah/phonestore/internal/cart"
	"github.com/obadah/phonestore/internal/models"
)

func line(id, name string, price int64, qty int) models.CartLine {
	return models.CartLine{
		ID:       id,
		Name:     name,
		Brand:    "apple",
		Price:    decimal.NewFromInt(price),
		Currency: "SAR",
		Qty:      qty,
	}
}

func testTotals(lines []models.CartLine) cart.Totals {
	t := cart.Totals{Total: decimal.Zero, Currency: "SAR"}
	for _, l := range lines {
		t.Count += l.Qty
		t.Total = t.Total.Add(l.LineTotal())
	}
	return t
}

func TestBuildBlocked(t *testing.T) {
	lines := []models.CartLine{line("a", "iPhone", 100, 1)}

	t.Run("no contact", func(t *testing.T) {
		_, err := Build(lines, testTotals(lines), models.Settings{WhatsAppNumber: ""})
		assert.ErrorIs(t, err, ErrNoContact)
	})

	t.Run("whitespace contact", func(t *testing.T) {
		_, err := Build(lines, testTotals(lines), models.Settings{WhatsAppNumber: "   "})
		assert.ErrorIs(t, err, ErrNoContact)
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := Build(nil, cart.Totals{Total: decimal.Zero}, models.Settings{WhatsAppNumber: "+966500000000"})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})
}

func TestBuildOrder(t *testing.T) {
	lines := []models.CartLine{
		line("a", "iPhone 15", 3000, 2),
		line("b", "Galaxy S24", 2500, 1),
	}
	settings := models.Settings{WhatsAppNumber: "+966501234567"}

	order, err := Build(lines, testTotals(lines), settings)
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.NewFromInt(8500)))
	assert.Equal(t, "SAR", order.Currency)

	_, err = uuid.Parse(order.Reference)
	assert.NoError(t, err, "reference is a valid uuid")

	t.Run("message lists items and total", func(t *testing.T) {
		assert.Contains(t, order.Message, "1) iPhone 15 — 3,000 SAR × 2 = 6,000 SAR")
		assert.Contains(t, order.Message, "2) Galaxy S24 — 2,500 SAR × 1 = 2,500 SAR")
		assert.Contains(t, order.Message, "8,500 SAR")
	})

	t.Run("link targets wa.me and carries the message", func(t *testing.T) {
		u, err := url.Parse(order.Link)
		require.NoError(t, err)
		assert.Equal(t, "wa.me", u.Host)
		assert.Equal(t, "https", u.Scheme)
		assert.True(t, strings.HasPrefix(u.Path, "/+966501234567"))
		assert.Equal(t, order.Message, u.Query().Get("text"))
	})
}

func TestMessageDeterministic(t *testing.T) {
	lines := []models.CartLine{
		line("a", "iPhone 15", 3000, 1),
		line("b", "Pixel 9", 2000, 3),
	}
	totals := testTotals(lines)

	assert.Equal(t, Message(lines, totals), Message(lines, totals))
}

package cart

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/obadah/phonestore/config"
	"github.com/obadah/phonestore/internal/kvstore"
	"github.com/obadah/phonestore/internal/models"
)

const storageKey = "cart"

// Cart maps product ids to lines and keeps itself persisted. Every mutation
// writes the full cart back to the store; write failures are swallowed so a
// broken disk never blocks shopping. Prices are snapshots taken at add time
// and are never re-synced against a refreshed catalog.
type Cart struct {
	mu    sync.Mutex
	kv    kvstore.Store
	lines map[string]*models.CartLine
}

// Load restores the cart from kv. Missing or malformed data yields an empty
// cart — corruption is treated as "no cart", never as an error.
func Load(kv kvstore.Store) *Cart {
	c := &Cart{kv: kv, lines: make(map[string]*models.CartLine)}
	raw, ok := kv.Get(storageKey)
	if !ok {
		return c
	}
	var persisted map[string]models.CartLine
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return c
	}
	for id, line := range persisted {
		if id == "" || line.Qty < 1 {
			continue
		}
		line.ID = id
		l := line
		c.lines[id] = &l
	}
	return c
}

// Add puts one unit of p in the cart. Unavailable products are ignored. The
// first add snapshots name, brand, price and currency; later adds only bump
// the quantity.
func (c *Cart) Add(p models.Product) bool {
	if !p.Available || p.ID == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if line, ok := c.lines[p.ID]; ok {
		line.Qty++
	} else {
		c.lines[p.ID] = &models.CartLine{
			ID:       p.ID,
			Name:     p.Name,
			Brand:    p.Brand,
			Price:    p.Price,
			Currency: p.Currency,
			Qty:      1,
		}
	}
	c.persist()
	return true
}

// IncQty bumps the quantity of an existing line. Absent ids are a no-op.
func (c *Cart) IncQty(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.lines[id]
	if !ok {
		return false
	}
	line.Qty++
	c.persist()
	return true
}

// DecQty lowers the quantity of an existing line, removing the line
// entirely when it would reach zero. A quantity below 1 is never kept.
func (c *Cart) DecQty(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.lines[id]
	if !ok {
		return false
	}
	line.Qty--
	if line.Qty <= 0 {
		delete(c.lines, id)
	}
	c.persist()
	return true
}

// Remove drops a line unconditionally. Absent ids are a no-op.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	c.persist()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[string]*models.CartLine)
	c.persist()
}

// Lines returns the cart contents sorted by product id, so output and the
// checkout message are deterministic.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortedLines()
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, line := range c.lines {
		n += line.Qty
	}
	return n
}

// Total sums price × qty across all lines. Currencies are not compared; see
// Totals for the mixed-currency signal.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Currency returns the currency of the first line (in id order), or the
// default symbol for an empty cart.
func (c *Cart) Currency() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currency()
}

// Totals is the derived cart aggregate. Mixed is set when lines disagree on
// currency, in which case Total is a sum across currencies and should be
// presented with a warning.
type Totals struct {
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
	Mixed    bool            `json:"mixed_currency,omitempty"`
}

// Totals computes Count, Total and Currency in one pass over the lines.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := Totals{Total: decimal.Zero, Currency: c.currency()}
	for _, line := range c.lines {
		t.Count += line.Qty
		t.Total = t.Total.Add(line.LineTotal())
		if line.Currency != t.Currency {
			t.Mixed = true
		}
	}
	return t
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) sortedLines() []models.CartLine {
	out := make([]models.CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Cart) currency() string {
	lines := c.sortedLines()
	if len(lines) == 0 {
		return config.DefaultCurrency
	}
	return lines[0].Currency
}

func (c *Cart) persist() {
	b, err := json.Marshal(c.lines)
	if err != nil {
		return
	}
	// Best effort: a failed write must not break the mutation.
	_ = c.kv.Set(storageKey, string(b))
}

package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"github.com/obadah/phonestore/config"
	"github.com/obadah/phonestore/internal/models"
)

// Normalize converts a raw product row into a catalog Product. The second
// return value is false when the record must be dropped: empty id, empty
// name, or a brand outside the allow-list. Dropping is filtering, not an
// error — bad rows simply never enter the catalog.
func Normalize(raw models.RawProduct, cfg *config.Config) (models.Product, bool) {
	p := models.Product{
		ID:          raw.ID.String(),
		Brand:       strings.ToLower(raw.Brand.String()),
		Name:        raw.Name.String(),
		Price:       ParsePrice(raw.Price.String()),
		Currency:    raw.Currency.String(),
		Img:         raw.Img.String(),
		Description: StripTags(raw.Description.String()),
		Available:   raw.Available.String() != "0",
		Featured:    raw.Featured.String() == "1",
	}
	if p.Currency == "" {
		p.Currency = config.DefaultCurrency
	}
	if p.ID == "" || p.Name == "" || !cfg.BrandAllowed(p.Brand) {
		return models.Product{}, false
	}
	return p, true
}

// ParsePrice strips everything but digits and dots from s and parses the
// remainder. Anything unparseable (including an empty remainder) is 0, so
// prices are always non-negative.
func ParsePrice(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// StripTags removes HTML markup from a description cell, keeping only text
// content. Plain text passes through unchanged.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

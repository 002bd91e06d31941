package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Envelope is the payload returned by the storefront endpoint.
type Envelope struct {
	OK       bool         `json:"ok"`
	Error    string       `json:"error,omitempty"`
	Settings Settings     `json:"settings"`
	Products []RawProduct `json:"products"`
}

// Settings holds the store-level configuration published alongside the
// catalog. An empty WhatsApp number blocks checkout.
type Settings struct {
	WhatsAppNumber string `json:"whatsapp_number"`
}

// RawProduct is a product row as it arrives from the sheet-backed endpoint.
// Cells are loosely typed (numbers, booleans and strings all occur), so every
// field decodes through FlexString and normalization happens later.
type RawProduct struct {
	ID          FlexString `json:"id"`
	Brand       FlexString `json:"brand"`
	Name        FlexString `json:"name"`
	Price       FlexString `json:"price"`
	Currency    FlexString `json:"currency"`
	Img         FlexString `json:"img"`
	Description FlexString `json:"description"`
	Available   FlexString `json:"available"`
	Featured    FlexString `json:"featured"`
}

// Product is a normalized catalog entry. Records that survive normalization
// always have a non-empty ID and Name and an allow-listed Brand.
type Product struct {
	ID          string          `json:"id"`
	Brand       string          `json:"brand"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Img         string          `json:"img,omitempty"`
	Description string          `json:"description,omitempty"`
	Available   bool            `json:"available"`
	Featured    bool            `json:"featured"`
}

// CartLine is one cart entry: a snapshot of the product taken at first add,
// plus a quantity. Qty is always >= 1 while the line exists. The JSON shape
// matches the persisted cart mapping.
type CartLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Qty      int             `json:"qty"`
}

// LineTotal returns Price × Qty.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// FlexString decodes a JSON string, number, boolean or null into its string
// form, the way a spreadsheet export flattens cell values.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	// Numbers and booleans keep their literal form ("0", "1", "true", ...).
	*f = FlexString(b)
	return nil
}

// String returns the trimmed value.
func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// FormatMoney renders an amount with thousands grouping and a currency
// label, e.g. "1,999.99 ر.س".
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := amount.String()
	intPart, frac, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	if len(intPart) > 3 {
		var parts []string
		for len(intPart) > 3 {
			parts = append([]string{intPart[len(intPart)-3:]}, parts...)
			intPart = intPart[:len(intPart)-3]
		}
		parts = append([]string{intPart}, parts...)
		intPart = strings.Join(parts, ",")
	}
	out := intPart
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out + " " + currency
}

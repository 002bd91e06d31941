package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obadah/phonestore/internal/cart"
	"github.com/obadah/phonestore/internal/models"
)

// Blocked-checkout conditions. These are user-facing states, not faults:
// the cart is left untouched and the user can retry.
var (
	ErrEmptyCart = errors.New("checkout: cart is empty")
	ErrNoContact = errors.New("checkout: no WhatsApp number configured in store settings")
)

// Order is a fully prepared checkout handoff: a reference for the customer,
// the formatted message body, and the wa.me deep link carrying it. Opening
// the link is the caller's job; nothing is read back.
type Order struct {
	Reference string            `json:"reference"`
	Message   string            `json:"message"`
	Link      string            `json:"link"`
	Total     decimal.Decimal   `json:"total"`
	Currency  string            `json:"currency"`
	Lines     []models.CartLine `json:"lines"`
}

// Build assembles an Order from the cart contents and store settings. It
// fails with ErrEmptyCart or ErrNoContact when the handoff must be blocked.
func Build(lines []models.CartLine, totals cart.Totals, settings models.Settings) (*Order, error) {
	number := strings.TrimSpace(settings.WhatsAppNumber)
	if number == "" {
		return nil, ErrNoContact
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	msg := Message(lines, totals)
	q := url.Values{}
	q.Set("text", msg)

	return &Order{
		Reference: uuid.NewString(),
		Message:   msg,
		Link:      "https://wa.me/" + url.PathEscape(number) + "?" + q.Encode(),
		Total:     totals.Total,
		Currency:  totals.Currency,
		Lines:     lines,
	}, nil
}

// Message renders the order summary sent over WhatsApp: a greeting, one
// numbered line per cart entry ("name — unit × qty = line total"), and the
// grand total in the cart currency.
func Message(lines []models.CartLine, totals cart.Totals) string {
	var b strings.Builder
	b.WriteString("مرحباً، أريد إتمام طلب الهواتف التالية:\n\n")
	for i, line := range lines {
		fmt.Fprintf(&b, "%d) %s — %s × %d = %s\n",
			i+1,
			line.Name,
			models.FormatMoney(line.Price, line.Currency),
			line.Qty,
			models.FormatMoney(line.LineTotal(), line.Currency),
		)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "الإجمالي: %s\n", models.FormatMoney(totals.Total, totals.Currency))
	b.WriteString("شكراً")
	return b.String()
}

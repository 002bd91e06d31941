package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/obadah/phonestore/internal/cart"
	"github.com/obadah/phonestore/internal/models"
	"github.com/obadah/phonestore/internal/store"
)

// ANSI styling, applied only for the dark theme so light terminals stay
// plain.
type palette struct {
	bold, dim, reset string
}

func themePalette(theme string) palette {
	if theme == themeDark {
		return palette{bold: "\033[1m", dim: "\033[2m", reset: "\033[0m"}
	}
	return palette{}
}

// printProductsTable prints a catalog view in a human-friendly card layout.
func printProductsTable(view store.View, theme string) {
	pal := themePalette(theme)

	fmt.Fprintf(os.Stdout, "%d product(s) match\n", view.Matching)
	for i, p := range view.Products {
		fmt.Fprintln(os.Stdout)

		name := p.Name
		switch {
		case p.Featured:
			name += " " + pal.dim + "[Featured]" + pal.reset
		case !p.Available:
			name += " " + pal.dim + "[Out of stock]" + pal.reset
		}
		fmt.Fprintf(os.Stdout, " %d. %s%s%s\n", i+1, pal.bold, name, pal.reset)

		fmt.Fprintf(os.Stdout, "    %s  |  %s  |  id: %s\n",
			strings.ToUpper(p.Brand),
			models.FormatMoney(p.Price, p.Currency),
			p.ID,
		)
		if p.Description != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", truncate(p.Description, 100))
		}
		if p.Img != "" {
			fmt.Fprintf(os.Stdout, "    %s%s%s\n", pal.dim, p.Img, pal.reset)
		}
	}
}

// printCartTable prints the cart lines and aggregate totals.
func printCartTable(lines []models.CartLine, totals cart.Totals, theme string) {
	pal := themePalette(theme)

	if len(lines) == 0 {
		fmt.Fprintln(os.Stdout, "Cart is empty.")
		return
	}
	for i, line := range lines {
		fmt.Fprintf(os.Stdout, " %d. %s%s%s\n", i+1, pal.bold, line.Name, pal.reset)
		fmt.Fprintf(os.Stdout, "    %s  |  %s × %d = %s  |  id: %s\n",
			strings.ToUpper(line.Brand),
			models.FormatMoney(line.Price, line.Currency),
			line.Qty,
			models.FormatMoney(line.LineTotal(), line.Currency),
			line.ID,
		)
	}
	fmt.Fprintf(os.Stdout, "\n%d item(s), total %s\n", totals.Count, models.FormatMoney(totals.Total, totals.Currency))
	if totals.Mixed {
		fmt.Fprintln(os.Stderr, "Warning: cart mixes currencies; the total sums them as one.")
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

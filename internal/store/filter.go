package store

import (
	"strings"

	"github.com/obadah/phonestore/internal/models"
)

// AllBrands is the sentinel brand filter that matches every product.
const AllBrands = "all"

// Query selects the visible subset of a catalog: a brand filter, a search
// term, and a 1-based page over PageSize-sized batches.
type Query struct {
	Brand    string
	Search   string
	Page     int
	PageSize int
}

// View is the result of applying a Query: the visible prefix of the
// matching products, the total match count, and whether another page exists.
type View struct {
	Products []models.Product `json:"products"`
	Matching int              `json:"matching"`
	Page     int              `json:"page"`
	HasMore  bool             `json:"has_more"`
}

// Visible applies q to products. It is a pure function: catalog order is
// preserved, the visible set is a prefix of the matches, and the same inputs
// always produce the same view.
func Visible(products []models.Product, q Query) View {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 16
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	brand := q.Brand
	if brand == "" {
		brand = AllBrands
	}

	var matching []models.Product
	for _, p := range products {
		if brand != AllBrands && p.Brand != brand {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		matching = append(matching, p)
	}

	visible := min(len(matching), q.Page*q.PageSize)
	return View{
		Products: matching[:visible],
		Matching: len(matching),
		Page:     q.Page,
		HasMore:  len(matching) > visible,
	}
}

package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obadah/phonestore/internal/models"
)

func phone(id, brand, name, desc string) models.Product {
	return models.Product{ID: id, Brand: brand, Name: name, Description: desc, Available: true}
}

func testCatalog() []models.Product {
	return []models.Product{
		phone("a1", "apple", "iPhone 15 Pro", "titanium flagship"),
		phone("a2", "apple", "iPhone SE", "compact and cheap"),
		phone("s1", "samsung", "Galaxy S24", "android flagship"),
		phone("g1", "google", "Pixel 9 Pro", "great camera"),
		phone("m1", "motorola", "Edge 50", "mid-range"),
	}
}

func TestVisibleBrandFilter(t *testing.T) {
	products := testCatalog()

	t.Run("all matches everything", func(t *testing.T) {
		v := Visible(products, Query{Brand: AllBrands, PageSize: 16})
		assert.Equal(t, 5, v.Matching)
	})

	t.Run("empty brand behaves like all", func(t *testing.T) {
		v := Visible(products, Query{PageSize: 16})
		assert.Equal(t, 5, v.Matching)
	})

	t.Run("exact brand match", func(t *testing.T) {
		v := Visible(products, Query{Brand: "apple", PageSize: 16})
		require.Equal(t, 2, v.Matching)
		assert.Equal(t, "a1", v.Products[0].ID)
		assert.Equal(t, "a2", v.Products[1].ID)
	})
}

func TestVisibleSearch(t *testing.T) {
	products := testCatalog()

	t.Run("matches name case-insensitively", func(t *testing.T) {
		v := Visible(products, Query{Search: "IPHONE", PageSize: 16})
		assert.Equal(t, 2, v.Matching)
	})

	t.Run("matches description", func(t *testing.T) {
		v := Visible(products, Query{Search: "flagship", PageSize: 16})
		assert.Equal(t, 2, v.Matching)
	})

	t.Run("combines with brand filter", func(t *testing.T) {
		v := Visible(products, Query{Brand: "samsung", Search: "flagship", PageSize: 16})
		require.Equal(t, 1, v.Matching)
		assert.Equal(t, "s1", v.Products[0].ID)
	})

	t.Run("whitespace-only term matches everything", func(t *testing.T) {
		v := Visible(products, Query{Search: "   ", PageSize: 16})
		assert.Equal(t, 5, v.Matching)
	})
}

func TestVisiblePagination(t *testing.T) {
	// 20 apple products all matching "pro", PAGE_SIZE 16.
	var products []models.Product
	for i := 0; i < 20; i++ {
		products = append(products, phone(fmt.Sprintf("p%02d", i), "apple", fmt.Sprintf("iPhone Pro %d", i), ""))
	}

	q := Query{Brand: "apple", Search: "pro", Page: 1, PageSize: 16}
	v := Visible(products, q)
	assert.Equal(t, 20, v.Matching)
	assert.Len(t, v.Products, 16)
	assert.True(t, v.HasMore)

	q.Page = 2
	v = Visible(products, q)
	assert.Len(t, v.Products, 20)
	assert.False(t, v.HasMore, "load more disappears once everything is visible")

	t.Run("visible count is monotonic and bounded", func(t *testing.T) {
		prev := 0
		for page := 1; page <= 5; page++ {
			v := Visible(products, Query{Page: page, PageSize: 16})
			assert.GreaterOrEqual(t, len(v.Products), prev)
			assert.LessOrEqual(t, len(v.Products), v.Matching)
			prev = len(v.Products)
		}
	})

	t.Run("visible set is a stable prefix", func(t *testing.T) {
		v := Visible(products, Query{Page: 1, PageSize: 16})
		for i, p := range v.Products {
			assert.Equal(t, products[i].ID, p.ID)
		}
	})
}

func TestVisibleIsPure(t *testing.T) {
	products := testCatalog()
	q := Query{Brand: "apple", Search: "iphone", Page: 1, PageSize: 2}

	first := Visible(products, q)
	// Interleave unrelated queries; the original query must be unaffected.
	Visible(products, Query{Brand: "google", Page: 7, PageSize: 1})
	second := Visible(products, q)

	assert.Equal(t, first, second)
}

func TestVisibleDefaults(t *testing.T) {
	products := testCatalog()

	v := Visible(products, Query{Page: -3, PageSize: 0})
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 5, v.Matching)

	t.Run("empty catalog", func(t *testing.T) {
		v := Visible(nil, Query{Brand: "apple", Search: "x"})
		assert.Zero(t, v.Matching)
		assert.Empty(t, v.Products)
		assert.False(t, v.HasMore)
	})
}

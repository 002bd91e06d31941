package store

import (
	"sync"

	"github.com/obadah/phonestore/internal/catalog"
	"github.com/obadah/phonestore/internal/models"
)

// Store owns the application state: the current catalog plus the active
// brand filter, search term, and page. All access goes through accessors so
// nothing else holds mutable state. Mutations notify subscribers after the
// lock is released; rendering hangs off those notifications instead of being
// wired into the mutations themselves.
type Store struct {
	mu       sync.RWMutex
	pageSize int
	catalog  *catalog.Catalog
	brand    string
	search   string
	page     int
	subs     []func()
}

// New creates an empty Store: no catalog, brand "all", page 1.
func New(pageSize int) *Store {
	return &Store{
		pageSize: pageSize,
		brand:    AllBrands,
		page:     1,
	}
}

// Subscribe registers fn to run after every state change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// ReplaceCatalog swaps in a newly loaded catalog wholesale. A catalog whose
// generation is not newer than the current one is rejected, so a slow stale
// load can never overwrite a fresher result. Filters and page are preserved.
func (s *Store) ReplaceCatalog(c *catalog.Catalog) bool {
	s.mu.Lock()
	if s.catalog != nil && c.Generation <= s.catalog.Generation {
		s.mu.Unlock()
		return false
	}
	s.catalog = c
	s.mu.Unlock()
	s.notify()
	return true
}

// ClearCatalog drops the catalog, the load-failure fallback.
func (s *Store) ClearCatalog() {
	s.mu.Lock()
	s.catalog = nil
	s.mu.Unlock()
	s.notify()
}

// SetBrand sets the brand filter ("all" or one allow-listed brand) and
// resets the page.
func (s *Store) SetBrand(brand string) {
	s.mu.Lock()
	s.brand = brand
	s.page = 1
	s.mu.Unlock()
	s.notify()
}

// SetSearch sets the search term and resets the page.
func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	s.page = 1
	s.mu.Unlock()
	s.notify()
}

// SetPage jumps to a specific page (floored at 1).
func (s *Store) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	s.notify()
}

// NextPage advances one page.
func (s *Store) NextPage() {
	s.mu.Lock()
	s.page++
	s.mu.Unlock()
	s.notify()
}

// Settings returns the settings from the current catalog, or the zero value
// when no catalog is loaded.
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return models.Settings{}
	}
	return s.catalog.Settings
}

// Product looks up a catalog entry by id.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return models.Product{}, false
	}
	for _, p := range s.catalog.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// HasCatalog reports whether a catalog has been loaded.
func (s *Store) HasCatalog() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog != nil
}

// View computes the currently visible subset from the catalog and the
// active filters.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var products []models.Product
	if s.catalog != nil {
		products = s.catalog.Products
	}
	return Visible(products, Query{
		Brand:    s.brand,
		Search:   s.search,
		Page:     s.page,
		PageSize: s.pageSize,
	})
}

package catalog

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/obadah/phonestore/config"
	"github.com/obadah/phonestore/internal/httputil"
	"github.com/obadah/phonestore/internal/models"
)

// Catalog is the normalized product list plus store settings from one
// successful load. Generation increases with every fetch so a late stale
// response can be told apart from a newer one.
type Catalog struct {
	Generation uint64           `json:"-"`
	Settings   models.Settings  `json:"settings"`
	Products   []models.Product `json:"products"`
}

// LoadError wraps any failure to produce a catalog: transport errors,
// a non-success envelope, or a malformed body. Callers degrade to an empty
// catalog and surface Cause to the user.
type LoadError struct {
	Cause string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load catalog: %s: %v", e.Cause, e.Err)
	}
	return "load catalog: " + e.Cause
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader fetches the storefront endpoint and normalizes its products.
type Loader struct {
	client  *http.Client
	cfg     *config.Config
	limiter *rate.Limiter
	group   singleflight.Group
	gen     atomic.Uint64
}

// NewLoader creates a Loader for the endpoint in cfg. client may be nil, in
// which case a default client is used.
func NewLoader(client *http.Client, cfg *config.Config) *Loader {
	if client == nil {
		client = httputil.NewHTTPClient()
	}
	return &Loader{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	}
}

// Load fetches, validates, and normalizes the remote catalog. Concurrent
// calls are coalesced into one request; every caller gets the same result.
// On any failure the returned error is a *LoadError and the caller must fall
// back to an empty catalog.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	v, err, _ := l.group.Do("catalog", func() (any, error) {
		return l.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

func (l *Loader) fetch(ctx context.Context) (*Catalog, error) {
	reportProgress(ctx, "Loading products...")

	if err := l.limiter.Wait(ctx); err != nil {
		return nil, &LoadError{Cause: "rate limiter", Err: err}
	}

	var env models.Envelope
	if err := httputil.GetJSON(ctx, l.client, l.cfg.APIURL, l.cfg.MaxRetries, &env); err != nil {
		return nil, &LoadError{Cause: "could not reach the data source", Err: err}
	}
	if !env.OK {
		cause := env.Error
		if cause == "" {
			cause = "data source reported an invalid payload"
		}
		return nil, &LoadError{Cause: cause}
	}

	products := make([]models.Product, 0, len(env.Products))
	for _, raw := range env.Products {
		if p, ok := Normalize(raw, l.cfg); ok {
			products = append(products, p)
		}
	}

	cat := &Catalog{
		Generation: l.gen.Add(1),
		Settings:   env.Settings,
		Products:   products,
	}
	reportProgress(ctx, fmt.Sprintf("Loaded %d products", len(products)))
	return cat, nil
}

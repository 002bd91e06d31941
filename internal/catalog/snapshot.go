package catalog

import (
	"encoding/json"

	"github.com/obadah/phonestore/internal/kvstore"
)

const snapshotKey = "catalog"

// SaveSnapshot persists the last-loaded catalog so browsing keeps working
// without the network. Write failures are reported but callers treat them as
// best-effort.
func SaveSnapshot(kv kvstore.Store, c *Catalog) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return kv.Set(snapshotKey, string(b))
}

// LoadSnapshot restores the last persisted catalog. Missing or malformed
// data yields (nil, false) — never an error. The restored catalog carries
// generation 0 so any fresh fetch replaces it.
func LoadSnapshot(kv kvstore.Store) (*Catalog, bool) {
	raw, ok := kv.Get(snapshotKey)
	if !ok {
		return nil, false
	}
	var c Catalog
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, false
	}
	c.Generation = 0
	return &c, true
}

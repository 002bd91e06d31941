package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obadah/phonestore/config"
	"github.com/obadah/phonestore/internal/catalog"
	"github.com/obadah/phonestore/internal/kvstore"
	"github.com/obadah/phonestore/internal/ui"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "phonestore",
	Short: "Phone Store - storefront CLI & MCP server",
	Long:  "A CLI and MCP server for a sheet-backed phone storefront: browse the catalog, manage a cart, and check out over WhatsApp.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("api-url", "", "Storefront data endpoint URL")
	rootCmd.PersistentFlags().String("state-dir", "", "Directory for cart/theme/catalog state")
	rootCmd.PersistentFlags().Int("page-size", 0, "Products per page")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("state-dir"); v != "" {
		cfg.StateDir = v
	}
	if v, _ := rootCmd.PersistentFlags().GetInt("page-size"); v > 0 {
		cfg.PageSize = v
	}
}

// openKV opens the local state store backing cart, theme, and the catalog
// snapshot.
func openKV() (kvstore.Store, error) {
	kv, err := kvstore.Open(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open state dir: %w", err)
	}
	return kv, nil
}

// fetchCatalog loads the remote catalog with a spinner and saves the
// snapshot on success.
func fetchCatalog(ctx context.Context, kv kvstore.Store) (*catalog.Catalog, error) {
	loader := catalog.NewLoader(nil, cfg)

	spin := ui.NewSpinner()
	spin.Start("Loading products...")
	ctx = catalog.WithProgress(ctx, spin.Update)
	cat, err := loader.Load(ctx)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	_ = catalog.SaveSnapshot(kv, cat)
	return cat, nil
}

// currentCatalog returns the saved snapshot, fetching once when none exists.
// Cart and checkout work against the last-loaded catalog so they stay fast
// and usable offline.
func currentCatalog(ctx context.Context, kv kvstore.Store, refresh bool) (*catalog.Catalog, error) {
	if !refresh {
		if cat, ok := catalog.LoadSnapshot(kv); ok {
			return cat, nil
		}
	}
	return fetchCatalog(ctx, kv)
}

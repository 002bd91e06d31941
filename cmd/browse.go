package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obadah/phonestore/internal/catalog"
	"github.com/obadah/phonestore/internal/store"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the product catalog",
	Long:  "Fetch the catalog and show the current page, optionally filtered by brand and search term.",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().String("brand", store.AllBrands, "Brand filter: all, apple, samsung, google, motorola")
	browseCmd.Flags().String("search", "", "Case-insensitive search over name and description")
	browseCmd.Flags().Int("page", 1, "Page number")
	browseCmd.Flags().String("format", "table", "Output format: table, json")
	browseCmd.Flags().Bool("offline", false, "Use the last saved catalog instead of fetching")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	brand, _ := cmd.Flags().GetString("brand")
	search, _ := cmd.Flags().GetString("search")
	page, _ := cmd.Flags().GetInt("page")
	format, _ := cmd.Flags().GetString("format")
	offline, _ := cmd.Flags().GetBool("offline")

	kv, err := openKV()
	if err != nil {
		return err
	}

	st := store.New(cfg.PageSize)
	if offline {
		if cat, ok := catalog.LoadSnapshot(kv); ok {
			st.ReplaceCatalog(cat)
		} else {
			fmt.Fprintln(os.Stderr, "No saved catalog yet; run browse without --offline first.")
		}
	} else {
		cat, err := fetchCatalog(cmd.Context(), kv)
		if err != nil {
			// Degrade to an empty catalog; the filters still run and the
			// user sees a usable, re-triable state.
			var le *catalog.LoadError
			if errors.As(err, &le) {
				fmt.Fprintf(os.Stderr, "Could not load products (%s). Showing an empty catalog.\n", le.Cause)
			} else {
				fmt.Fprintf(os.Stderr, "Could not load products: %v\n", err)
			}
		} else {
			st.ReplaceCatalog(cat)
		}
	}

	st.SetBrand(brand)
	st.SetSearch(search)
	st.SetPage(page)
	view := st.View()

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		printProductsTable(view, loadTheme(kv))
		if view.HasMore {
			fmt.Fprintf(os.Stdout, "\nMore products available — rerun with --page %d\n", view.Page+1)
		}
	}
	return nil
}

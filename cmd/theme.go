package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obadah/phonestore/internal/kvstore"
)

const (
	themeKey   = "theme"
	themeDark  = "dark"
	themeLight = "light"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or set the display theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{themeDark, themeLight, "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

// loadTheme reads the persisted theme preference, defaulting to dark on any
// missing or unrecognized value.
func loadTheme(kv kvstore.Store) string {
	v, ok := kv.Get(themeKey)
	if !ok || (v != themeDark && v != themeLight) {
		return themeDark
	}
	return v
}

func runTheme(cmd *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}

	current := loadTheme(kv)
	if len(args) == 0 {
		fmt.Fprintln(os.Stdout, current)
		return nil
	}

	next := args[0]
	if next == "toggle" {
		next = themeLight
		if current == themeLight {
			next = themeDark
		}
	}
	if err := kv.Set(themeKey, next); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	fmt.Fprintln(os.Stdout, next)
	return nil
}

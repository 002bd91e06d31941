package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obadah/phonestore/internal/cart"
	"github.com/obadah/phonestore/internal/catalog"
	"github.com/obadah/phonestore/internal/checkout"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Build the WhatsApp checkout link for the current cart",
	RunE:  runCheckout,
}

func init() {
	checkoutCmd.Flags().Bool("refresh", false, "Fetch fresh store settings before building the link")
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")

	kv, err := openKV()
	if err != nil {
		return err
	}
	cat, err := currentCatalog(cmd.Context(), kv, refresh)
	if err != nil {
		var le *catalog.LoadError
		if errors.As(err, &le) {
			return fmt.Errorf("cannot read store settings: %s", le.Cause)
		}
		return err
	}

	c := cart.Load(kv)
	order, err := checkout.Build(c.Lines(), c.Totals(), cat.Settings)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		fmt.Fprintln(os.Stdout, "Checkout blocked: the cart is empty.")
		return nil
	case errors.Is(err, checkout.ErrNoContact):
		fmt.Fprintln(os.Stdout, "Checkout blocked: the store has no WhatsApp number configured.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(os.Stdout, order.Message)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "Reference: %s\n", order.Reference)
	fmt.Fprintf(os.Stdout, "Open to send the order:\n%s\n", order.Link)
	return nil
}

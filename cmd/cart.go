package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obadah/phonestore/internal/cart"
	"github.com/obadah/phonestore/internal/catalog"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add one unit of a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartIncCmd = &cobra.Command{
	Use:   "inc <product-id>",
	Short: "Increase the quantity of a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartInc,
}

var cartDecCmd = &cobra.Command{
	Use:   "dec <product-id>",
	Short: "Decrease the quantity of a cart line (removes it at zero)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartDec,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents and totals",
	RunE:  runCartShow,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().Bool("refresh", false, "Fetch a fresh catalog before resolving the product")
	cartCmd.AddCommand(cartAddCmd, cartIncCmd, cartDecCmd, cartRemoveCmd, cartShowCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")

	kv, err := openKV()
	if err != nil {
		return err
	}
	cat, err := currentCatalog(cmd.Context(), kv, refresh)
	if err != nil {
		var le *catalog.LoadError
		if errors.As(err, &le) {
			return fmt.Errorf("cannot resolve product: %s", le.Cause)
		}
		return err
	}

	id := args[0]
	var found bool
	c := cart.Load(kv)
	for _, p := range cat.Products {
		if p.ID != id {
			continue
		}
		found = true
		if !c.Add(p) {
			fmt.Fprintf(os.Stdout, "%s is not available right now.\n", p.Name)
			return nil
		}
		fmt.Fprintf(os.Stdout, "Added %s to the cart.\n", p.Name)
		break
	}
	if !found {
		return fmt.Errorf("product %q not found in the catalog", id)
	}

	printCartTable(c.Lines(), c.Totals(), loadTheme(kv))
	return nil
}

func runCartInc(cmd *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	c := cart.Load(kv)
	if !c.IncQty(args[0]) {
		return fmt.Errorf("no cart line for %q", args[0])
	}
	printCartTable(c.Lines(), c.Totals(), loadTheme(kv))
	return nil
}

func runCartDec(cmd *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	c := cart.Load(kv)
	if !c.DecQty(args[0]) {
		return fmt.Errorf("no cart line for %q", args[0])
	}
	printCartTable(c.Lines(), c.Totals(), loadTheme(kv))
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	c := cart.Load(kv)
	c.Remove(args[0])
	printCartTable(c.Lines(), c.Totals(), loadTheme(kv))
	return nil
}

func runCartShow(cmd *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	c := cart.Load(kv)
	printCartTable(c.Lines(), c.Totals(), loadTheme(kv))
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	c := cart.Load(kv)
	c.Clear()
	fmt.Fprintln(os.Stdout, "Cart cleared.")
	return nil
}

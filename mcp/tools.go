package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/obadah/phonestore/internal/catalog"
	"github.com/obadah/phonestore/internal/checkout"
	"github.com/obadah/phonestore/internal/store"
)

func (s *Server) registerTools(srv *server.MCPServer) {
	// list_products
	listTool := mcp.NewTool("list_products",
		mcp.WithDescription("List catalog products with brand filter, search and pagination"),
		mcp.WithString("brand",
			mcp.Description("Brand filter: all, apple, samsung, google, motorola (default: all)"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive search over name and description"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (default: 1)"),
		),
		mcp.WithBoolean("refresh",
			mcp.Description("Fetch a fresh catalog before listing (default: false)"),
		),
	)
	srv.AddTool(listTool, s.handleListProducts)

	// product_detail
	detailTool := mcp.NewTool("product_detail",
		mcp.WithDescription("Get full product details by id"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Product id"),
		),
	)
	srv.AddTool(detailTool, s.handleProductDetail)

	// cart_add
	addTool := mcp.NewTool("cart_add",
		mcp.WithDescription("Add one unit of a product to the cart"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Product id"),
		),
	)
	srv.AddTool(addTool, s.handleCartAdd)

	// cart_update
	updateTool := mcp.NewTool("cart_update",
		mcp.WithDescription("Adjust a cart line: increment, decrement, or remove"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Product id"),
		),
		mcp.WithString("op",
			mcp.Required(),
			mcp.Description("One of: inc, dec, remove"),
		),
	)
	srv.AddTool(updateTool, s.handleCartUpdate)

	// cart_show
	showTool := mcp.NewTool("cart_show",
		mcp.WithDescription("Show cart lines and totals"),
	)
	srv.AddTool(showTool, s.handleCartShow)

	// checkout_link
	checkoutTool := mcp.NewTool("checkout_link",
		mcp.WithDescription("Build the WhatsApp checkout link for the current cart"),
	)
	srv.AddTool(checkoutTool, s.handleCheckoutLink)
}

// ensureCatalog makes sure the store holds a catalog, fetching when none is
// loaded or when refresh is set. A failed load clears the store so callers
// see an empty catalog rather than stale data.
func (s *Server) ensureCatalog(ctx context.Context, refresh bool) error {
	if s.store.HasCatalog() && !refresh {
		return nil
	}
	cat, err := s.loader.Load(ctx)
	if err != nil {
		s.store.ClearCatalog()
		return err
	}
	if s.store.ReplaceCatalog(cat) {
		_ = catalog.SaveSnapshot(s.kv, cat)
	}
	return nil
}

func (s *Server) handleListProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	refresh := request.GetBool("refresh", false)
	if err := s.ensureCatalog(ctx, refresh); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("catalog error: %v", err)), nil
	}

	s.store.SetBrand(request.GetString("brand", store.AllBrands))
	s.store.SetSearch(request.GetString("search", ""))
	s.store.SetPage(request.GetInt("page", 1))

	data, _ := json.MarshalIndent(s.store.View(), "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleProductDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	if err := s.ensureCatalog(ctx, false); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("catalog error: %v", err)), nil
	}

	p, ok := s.store.Product(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("product %q not found", id)), nil
	}
	data, _ := json.MarshalIndent(p, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleCartAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	if err := s.ensureCatalog(ctx, false); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("catalog error: %v", err)), nil
	}

	p, ok := s.store.Product(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("product %q not found", id)), nil
	}
	if !s.cart.Add(p) {
		return mcp.NewToolResultError(fmt.Sprintf("product %q is not available", id)), nil
	}
	return s.cartResult()
}

func (s *Server) handleCartUpdate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	switch op := request.GetString("op", ""); op {
	case "inc":
		if !s.cart.IncQty(id) {
			return mcp.NewToolResultError(fmt.Sprintf("no cart line for %q", id)), nil
		}
	case "dec":
		if !s.cart.DecQty(id) {
			return mcp.NewToolResultError(fmt.Sprintf("no cart line for %q", id)), nil
		}
	case "remove":
		s.cart.Remove(id)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown op %q (want inc, dec, or remove)", op)), nil
	}
	return s.cartResult()
}

func (s *Server) handleCartShow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.cartResult()
}

func (s *Server) handleCheckoutLink(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.ensureCatalog(ctx, false); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("catalog error: %v", err)), nil
	}

	order, err := checkout.Build(s.cart.Lines(), s.cart.Totals(), s.store.Settings())
	switch {
	case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrNoContact):
		return mcp.NewToolResultError(fmt.Sprintf("checkout blocked: %v", err)), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("checkout error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(order, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) cartResult() (*mcp.CallToolResult, error) {
	out := struct {
		Lines  any `json:"lines"`
		Totals any `json:"totals"`
	}{
		Lines:  s.cart.Lines(),
		Totals: s.cart.Totals(),
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

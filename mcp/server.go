package mcp

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/obadah/phonestore/config"
	"github.com/obadah/phonestore/internal/cart"
	"github.com/obadah/phonestore/internal/catalog"
	"github.com/obadah/phonestore/internal/kvstore"
	"github.com/obadah/phonestore/internal/store"
)

// Server exposes the storefront over MCP: catalog browsing, cart mutations,
// and the checkout handoff, backed by the same state the CLI uses.
type Server struct {
	cfg    *config.Config
	kv     kvstore.Store
	loader *catalog.Loader
	store  *store.Store
	cart   *cart.Cart
}

// NewServer wires the storefront state for MCP serving. The last catalog
// snapshot (if any) is preloaded so tools work before the first fetch.
func NewServer(cfg *config.Config, kv kvstore.Store) *Server {
	s := &Server{
		cfg:    cfg,
		kv:     kv,
		loader: catalog.NewLoader(nil, cfg),
		store:  store.New(cfg.PageSize),
		cart:   cart.Load(kv),
	}
	s.store.Subscribe(func() {
		view := s.store.View()
		log.Printf("storefront state changed: %d matching, page %d", view.Matching, view.Page)
	})
	if cat, ok := catalog.LoadSnapshot(kv); ok {
		s.store.ReplaceCatalog(cat)
	}
	return s
}

func (s *Server) mcpServer() *server.MCPServer {
	srv := server.NewMCPServer(
		"phonestore",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools(srv)
	return srv
}

// Serve starts the MCP stdio server with all tools registered.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer())
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	mcpserver "github.com/obadah/phonestore/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting Phone Store MCP server on stdio...")

	if err := mcpserver.NewServer(cfg, kv).Serve(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return nil
}

// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the relicdb MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, src contract.FeedSource) *server.MCPServer {
	s := server.NewMCPServer(
		"relicdb Weight Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		src:     src,
	}

	// --- 1. Tool: list_characters ---
	s.AddTool(mcp.NewTool("list_characters",
		mcp.WithDescription("List the character ids stored in the relic weight database."),
		mcp.WithString("db", mcp.Description("Path to the weight database (defaults to the configured database).")),
	), h.handleListCharacters)

	// --- 2. Tool: get_weights ---
	s.AddTool(mcp.NewTool("get_weights",
		mcp.WithDescription("Return stored relic weight records, keyed by character id."),
		mcp.WithString("character_ids", mcp.Description("Comma-separated character ids. Returns every record when empty.")),
		mcp.WithString("db", mcp.Description("Path to the weight database.")),
	), h.handleGetWeights)

	// --- 3. Tool: derive_weights ---
	s.AddTool(mcp.NewTool("derive_weights",
		mcp.WithDescription("Derive the weight record a character would receive on the next update, without writing the database."),
		mcp.WithString("character_id", mcp.Description("The character id (AvatarID)."), mcp.Required()),
		mcp.WithString("damage_type", mcp.Description("The character damage type."), mcp.Required(),
			mcp.Enum("Physical", "Fire", "Ice", "Thunder", "Wind", "Quantum", "Imaginary")),
		mcp.WithString("match_policy", mcp.Description("Which recommendation entry wins when ids repeat."), mcp.Enum("first", "last")),
		mcp.WithBoolean("main_affix", mcp.Description("Overwrite the rolled main-stat weights from the main-affix feed.")),
		mcp.WithBoolean("refine", mcp.Description("Fill the minor-stat weights and max score from the sub-affix feed.")),
	), h.handleDeriveWeights)

	return s
}

// StartMCPServer starts the relicdb MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager, src contract.FeedSource) error {
	s := NewMCPServer(baseCfg, mgr, src)
	return server.ServeStdio(s)
}

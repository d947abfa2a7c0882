// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/groupstats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the groupstats MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Groupstats Contributor Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	// --- 1. Tool: get_contributor_stats ---
	s.AddTool(mcp.NewTool("get_contributor_stats",
		mcp.WithDescription("Aggregate git history into per-contributor commit, insertion and deletion statistics."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
		mcp.WithBoolean("exclusive", mcp.Description("Only credit contributors listed in the alias store.")),
		mcp.WithBoolean("ignore_config", mcp.Description("Credit raw committer names without alias folding.")),
		mcp.WithBoolean("autogenerate", mcp.Description("Credit the bracketed name list in each commit header, e.g. '[Alice, Bob] feat: ...'.")),
		mcp.WithString("filter", mcp.Description("Comma-separated keywords; the commit header must contain one (case-sensitive).")),
		mcp.WithString("search", mcp.Description("Comma-separated terms searched in header and body (case-sensitive).")),
		mcp.WithString("ci_search", mcp.Description("Comma-separated terms searched in header and body (case-insensitive).")),
		mcp.WithString("exclude", mcp.Description("Comma-separated identities that are never credited.")),
		mcp.WithString("time", mcp.Description("Only count commits within this window (e.g. '2 weeks', '30d').")),
	), h.handleGetContributorStats)

	// --- 2. Tool: list_aliases ---
	s.AddTool(mcp.NewTool("list_aliases",
		mcp.WithDescription("List the alias store: the remembered repository path and every canonical contributor with its members."),
	), h.handleListAliases)

	return s
}

// StartMCPServer starts the groupstats MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/groupstats/core"
	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	mgr     contract.CacheManager
}

func (h *toolHandler) handleGetContributorStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Now = time.Now()

	input := &contract.ConfigRawInput{
		Exclusive:    request.GetBool("exclusive", false),
		IgnoreConfig: request.GetBool("ignore_config", false),
		Autogenerate: request.GetBool("autogenerate", false),
		Filter:       splitList(request.GetString("filter", "")),
		Search:       splitList(request.GetString("search", "")),
		CISearch:     splitList(request.GetString("ci_search", "")),
		Exclude:      splitList(request.GetString("exclude", "")),
		Time:         request.GetString("time", ""),
	}
	if err := contract.ProcessFilterInputs(cfg, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	if p := request.GetString("repo_path", ""); p != "" {
		root, err := h.client.GetRepoRoot(ctx, p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("could not find repository at %q: %v", p, err)), nil
		}
		cfg.RepoPath = root
	}

	result, err := core.GetStatsResult(core.WithSuppressHeader(ctx), cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("statistics failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListAliases(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listing, err := core.GetAliasListing(h.baseCfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not read alias store: %v", err)), nil
	}
	if listing.Aliases == nil {
		listing.Aliases = []schema.AliasRecord{}
	}

	jsonData, _ := json.MarshalIndent(listing, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// splitList turns a comma-separated argument into terms.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

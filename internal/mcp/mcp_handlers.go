package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/relicdb/core"
	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/feed"
	"github.com/huangsam/relicdb/internal/weightdb"
	"github.com/huangsam/relicdb/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	src     contract.FeedSource
}

// loadDB reads the database named by the request, or the configured one.
func (h *toolHandler) loadDB(request mcp.CallToolRequest) (*schema.Database, error) {
	path := h.baseCfg.DBPath
	if p := request.GetString("db", ""); p != "" {
		path = p
	}
	return weightdb.Load(path)
}

// source returns the feed source, routed through the feed cache when one is configured.
func (h *toolHandler) source() contract.FeedSource {
	if h.mgr == nil {
		return h.src
	}
	return feed.NewCachedSource(h.src, h.mgr.GetFeedStore(), h.baseCfg.Offline)
}

func (h *toolHandler) handleListCharacters(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	db, err := h.loadDB(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load database: %v", err)), nil
	}

	result := struct {
		Count      int      `json:"count"`
		Characters []string `json:"characters"`
	}{Count: db.Len(), Characters: db.Keys()}
	jsonData, _ := json.MarshalIndent(result, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetWeights(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	db, err := h.loadDB(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load database: %v", err)), nil
	}

	if ids := contract.SplitIDs(request.GetString("character_ids", "")); len(ids) > 0 {
		if db, err = db.Subset(ids); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	var buf bytes.Buffer
	if err := db.Encode(&buf, "  "); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode weights: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (h *toolHandler) handleDeriveWeights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	id := strings.TrimSpace(request.GetString("character_id", ""))
	damageType := schema.DamageType(request.GetString("damage_type", ""))
	if id == "" {
		return mcp.NewToolResultError("character_id is required"), nil
	}
	if !schema.IsElementalRatio(damageType.AddedRatio()) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid damage_type %q", damageType)), nil
	}
	if p := request.GetString("match_policy", ""); p != "" {
		policy := schema.MatchPolicy(strings.ToLower(p))
		if _, ok := schema.ValidMatchPolicies[policy]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid match_policy %q", p)), nil
		}
		cfg.MatchPolicy = policy
	}
	cfg.MainAffix = request.GetBool("main_affix", cfg.MainAffix)
	cfg.Refine = request.GetBool("refine", cfg.Refine)

	c := schema.Character{ID: schema.FlexID(id), DamageType: damageType}
	preview, err := core.PreviewCharacter(ctx, cfg, h.source(), c)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("derivation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(preview, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

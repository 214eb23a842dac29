package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/feed"
	"github.com/huangsam/relicdb/internal/weightdb"
	"github.com/huangsam/relicdb/schema"
)

// ExecuteUpdate fetches the feeds, adds a record for every new roster
// character and writes the database. If any required feed is incomplete the
// roster is treated as empty and the database is rewritten unchanged, so new
// characters wait for a run with every feed available.
func ExecuteUpdate(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, src contract.FeedSource, out contract.OutputWriter) error {
	start := time.Now()

	// --- 0. Begin Run Tracking (if configured) ---
	runs := mgr.GetRunStore()
	if runs != nil {
		runID, err := runs.BeginRun(start, runConfigParams(cfg))
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRunID(ctx, runID)
		}
	}

	// --- 1. Fetch Phase (with caching) ---
	source := feed.NewCachedSource(src, mgr.GetFeedStore(), cfg.Offline)
	roster, feeds, err := loadFeeds(ctx, cfg, source)
	if err != nil {
		contract.LogWarn("Feeds incomplete, no characters added this run", err)
		roster = nil
	}

	// --- 2. Merge Phase ---
	db, err := weightdb.Load(cfg.DBPath)
	if err != nil {
		return err
	}
	merged, report := Merge(db, roster, feeds.recommendations, feeds.MergeOptions)
	for _, f := range report.Failed {
		contract.LogWarn(fmt.Sprintf("Skipped character %s", f.Character.ID), f.Err)
	}

	// --- 3. Persist Phase ---
	if !cfg.DryRun {
		if err := weightdb.Save(cfg.DBPath, merged); err != nil {
			return err
		}
	}

	// --- 4. End Run Tracking ---
	if runID := getRunID(ctx); runs != nil && runID > 0 {
		recordOutcomes(runs, runID, report)
		if err := runs.EndRun(runID, time.Now(), len(roster), len(report.Added), len(report.Failed)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return out.WriteUpdateSummary(report, len(roster), merged.Len(), cfg, time.Since(start))
}

// updateFeeds bundles the recommendation feed with the merge options.
type updateFeeds struct {
	MergeOptions
	recommendations []schema.RecommendationEntry
}

// loadFeeds fetches every feed the update needs. The error joins the
// failures of all required feeds; the optional stages are required only
// when enabled.
func loadFeeds(ctx context.Context, cfg *contract.Config, src contract.FeedSource) ([]schema.Character, updateFeeds, error) {
	feeds := updateFeeds{MergeOptions: MergeOptions{Policy: cfg.MatchPolicy}}

	roster, rosterErr := feed.Load[schema.Character](ctx, src, cfg.RosterURLs)
	recommendations, recommendErr := feed.Load[schema.RecommendationEntry](ctx, src, cfg.RecommendURLs)
	feeds.recommendations = recommendations
	errs := []error{rosterErr, recommendErr}

	if cfg.MainAffix {
		rows, err := feed.Load[schema.MainAffixValues](ctx, src, cfg.MainAffixURLs)
		feeds.MainAffix = append([]schema.MainAffixValues{}, rows...)
		errs = append(errs, err)
	}
	if cfg.Refine {
		rows, err := feed.Load[schema.SubAffixValues](ctx, src, cfg.SubAffixURLs)
		feeds.SubAffix = append([]schema.SubAffixValues{}, rows...)
		errs = append(errs, err)
	}

	contract.Logger.Debug().
		Int("roster", len(roster)).
		Int("recommendations", len(recommendations)).
		Int("mainaffix", len(feeds.MainAffix)).
		Int("subaffix", len(feeds.SubAffix)).
		Msg("feeds loaded")
	return roster, feeds, errors.Join(errs...)
}

// runConfigParams captures the settings that shape an update run.
func runConfigParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"db":             cfg.DBPath,
		"roster_urls":    cfg.RosterURLs,
		"recommend_urls": cfg.RecommendURLs,
		"match_policy":   string(cfg.MatchPolicy),
		"main_affix":     cfg.MainAffix,
		"refine":         cfg.Refine,
		"offline":        cfg.Offline,
		"dry_run":        cfg.DryRun,
	}
}

// recordOutcomes stores one row per added or failed character.
func recordOutcomes(runs contract.RunStore, runID int64, report schema.MergeReport) {
	for _, c := range report.Added {
		id := c.ID.String()
		outcome := schema.CharacterOutcome{
			CharacterID:       id,
			DamageType:        string(c.DamageType),
			HasRecommendation: report.Matched[id],
			Status:            schema.OutcomeAdded,
		}
		if err := runs.RecordCharacter(runID, outcome); err != nil {
			contract.LogWarn("Failed to record character outcome", err)
		}
	}
	for _, f := range report.Failed {
		msg := f.Err.Error()
		outcome := schema.CharacterOutcome{
			CharacterID:  f.Character.ID.String(),
			DamageType:   string(f.Character.DamageType),
			Status:       schema.OutcomeFailed,
			ErrorMessage: &msg,
		}
		if err := runs.RecordCharacter(runID, outcome); err != nil {
			contract.LogWarn("Failed to record character outcome", err)
		}
	}
}

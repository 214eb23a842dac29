package core

import (
	"context"
	"fmt"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/feed"
	"github.com/huangsam/relicdb/schema"
)

// Preview is a record derived on demand, without touching the database.
type Preview struct {
	Character   schema.Character     `json:"character"`
	Recommended bool                 `json:"recommended"`
	MainAffixed bool                 `json:"main_affixed"`
	Refined     bool                 `json:"refined"`
	Record      *schema.WeightRecord `json:"record"`
}

// PreviewCharacter derives the record a character would receive on the next
// update. The recommendation feed is fetched through src; the main-affix and
// sub-affix feeds are only fetched when their stage is enabled. An incomplete
// feed fails the preview, as it would hold the character back on update.
func PreviewCharacter(ctx context.Context, cfg *contract.Config, src contract.FeedSource, c schema.Character) (*Preview, error) {
	id := c.ID.String()
	if id == "" {
		return nil, fmt.Errorf("character id is required")
	}

	recommendations, err := feed.Load[schema.RecommendationEntry](ctx, src, cfg.RecommendURLs)
	if err != nil {
		return nil, err
	}
	entry, matched := Resolve(id, recommendations, cfg.MatchPolicy)
	rec, err := DeriveWeights(c, NewSkeleton(), entry)
	if err != nil {
		return nil, err
	}

	preview := &Preview{Character: c, Recommended: matched, Record: rec}
	if cfg.MainAffix {
		rows, err := feed.Load[schema.MainAffixValues](ctx, src, cfg.MainAffixURLs)
		if err != nil {
			return nil, err
		}
		if values, ok := findMainAffix(id, rows); ok {
			ApplyMainAffix(c, rec, values)
			preview.MainAffixed = true
		}
	}
	if cfg.Refine {
		rows, err := feed.Load[schema.SubAffixValues](ctx, src, cfg.SubAffixURLs)
		if err != nil {
			return nil, err
		}
		if values, ok := findSubAffix(id, rows); ok {
			Refine(rec, values)
			preview.Refined = true
		}
	}
	return preview, nil
}

package core

import (
	"errors"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
)

// MergeOptions controls how new records are built during a merge.
type MergeOptions struct {
	Policy schema.MatchPolicy
	// MainAffix enables the main-affix pass when non-nil.
	MainAffix []schema.MainAffixValues
	// SubAffix enables the refine pass when non-nil.
	SubAffix []schema.SubAffixValues
}

// Merge returns a copy of db extended with a record for every roster character
// that is not yet present. Existing records are never touched. A character whose
// derivation fails gets no record and is listed in the report instead.
func Merge(db *schema.Database, roster []schema.Character, feed []schema.RecommendationEntry, opts MergeOptions) (*schema.Database, schema.MergeReport) {
	out := db.Clone()
	report := schema.MergeReport{Matched: make(map[string]bool)}
	log := contract.Logger

	for _, c := range roster {
		id := c.ID.String()
		if id == "" {
			report.Failed = append(report.Failed, schema.MergeFailure{Character: c, Err: errors.New("roster entry has no id")})
			continue
		}
		if out.Has(id) {
			report.Skipped = append(report.Skipped, c)
			continue
		}

		entry, matched := Resolve(id, feed, opts.Policy)
		rec, err := DeriveWeights(c, NewSkeleton(), entry)
		if err != nil {
			log.Debug().Str("character", id).Err(err).Msg("derivation failed")
			report.Failed = append(report.Failed, schema.MergeFailure{Character: c, Err: err})
			continue
		}

		if opts.MainAffix != nil {
			if values, ok := findMainAffix(id, opts.MainAffix); ok {
				ApplyMainAffix(c, rec, values)
			}
		}
		if opts.SubAffix != nil {
			if values, ok := findSubAffix(id, opts.SubAffix); ok {
				Refine(rec, values)
			}
		}

		if err := out.Insert(id, rec); err != nil {
			report.Failed = append(report.Failed, schema.MergeFailure{Character: c, Err: err})
			continue
		}
		log.Debug().Str("character", id).Str("damage_type", string(c.DamageType)).Bool("recommended", matched).Msg("record added")
		report.Added = append(report.Added, c)
		report.Matched[id] = matched
	}
	return out, report
}

// findSubAffix returns the first sub-affix row for id.
func findSubAffix(id string, rows []schema.SubAffixValues) (schema.SubAffixValues, bool) {
	for _, r := range rows {
		if r.CharacterID.String() == id {
			return r, true
		}
	}
	return schema.SubAffixValues{}, false
}

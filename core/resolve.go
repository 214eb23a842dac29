package core

import "github.com/huangsam/relicdb/schema"

// Resolve finds the recommendation entry for a character id by linear scan,
// comparing ids as strings. With LastMatch the final duplicate wins; with
// FirstMatch the scan stops at the first hit. A missing entry is not an error.
func Resolve(id string, feed []schema.RecommendationEntry, policy schema.MatchPolicy) (*schema.RecommendationEntry, bool) {
	var found *schema.RecommendationEntry
	for i := range feed {
		if feed[i].CharacterID.String() != id {
			continue
		}
		found = &feed[i]
		if policy == schema.FirstMatch {
			break
		}
	}
	return found, found != nil
}

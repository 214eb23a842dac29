package core

import (
	"context"
	"time"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
	"github.com/stretchr/testify/mock"
)

// stubSource serves fixed feed bodies by URL.
type stubSource map[string]string

func (s stubSource) Fetch(_ context.Context, url string) ([]byte, error) {
	body, ok := s[url]
	if !ok {
		return nil, schema.ErrFeedUnavailable
	}
	return []byte(body), nil
}

// mockWriter records output calls instead of rendering.
type mockWriter struct {
	mock.Mock
}

var _ contract.OutputWriter = &mockWriter{}

func (m *mockWriter) WriteWeights(db *schema.Database, cfg *contract.Config) error {
	return m.Called(db, cfg).Error(0)
}

func (m *mockWriter) WriteExport(db *schema.Database, cfg *contract.Config) error {
	return m.Called(db, cfg).Error(0)
}

func (m *mockWriter) WriteUpdateSummary(report schema.MergeReport, rosterSize, records int, cfg *contract.Config, duration time.Duration) error {
	return m.Called(report, rosterSize, records, cfg, duration).Error(0)
}

const (
	rosterURL    = "https://feeds.test/AvatarConfig.json"
	recommendURL = "https://feeds.test/AvatarRelicRecommend.json"
	subAffixURL  = "https://feeds.test/RelicSubAffixAvatarValue.json"
	mainAffixURL = "https://feeds.test/RelicMainAffixAvatarValue.json"
)

// sampleFeeds mirrors the upstream layouts, including a keyed-object feed.
func sampleFeeds() stubSource {
	return stubSource{
		rosterURL: `[
			{"AvatarID": 1102, "DamageType": "Quantum"},
			{"AvatarID": 1001, "DamageType": "Ice"},
			{"AvatarID": "8001", "DamageType": "Physical"}
		]`,
		recommendURL: `{
			"1102": {"AvatarID": 1102, "PropertyList": [
				{"RelicType": "BODY", "PropertyType": "CriticalDamageBase"},
				{"RelicType": "FOOT", "PropertyType": "SpeedDelta"}
			]},
			"1001": {"AvatarID": 1001, "PropertyList": [
				{"RelicType": "NECK", "PropertyType": "IceAddedRatio"}
			]}
		}`,
		subAffixURL: `[
			{"AvatarID": 1102, "HP": 0.5, "Attack": 0.75, "Defence": 0, "Speed": 1,
			 "CriticalChance": 1, "CriticalDamage": 1, "StatusResistance": 0}
		]`,
		mainAffixURL: `[
			{"AvatarID": 1001, "HP": 0.5, "Attack": 0.75, "Defence": 0, "Speed": 1,
			 "CriticalChance": 1, "CriticalDamage": 1, "StatusProbability": 0,
			 "BreakDamage": 0, "DamageAddedRatio": 1, "SPRatio": 0, "HealRatio": 0}
		]`,
	}
}

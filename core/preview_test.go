package core

import (
	"context"
	"testing"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewConfig() *contract.Config {
	return &contract.Config{
		RecommendURLs: []string{recommendURL},
		SubAffixURLs:  []string{subAffixURL},
		MainAffixURLs: []string{mainAffixURL},
		MatchPolicy:   schema.LastMatch,
	}
}

func TestPreviewCharacter(t *testing.T) {
	c := schema.Character{ID: "1001", DamageType: schema.Ice}
	p, err := PreviewCharacter(context.Background(), previewConfig(), sampleFeeds(), c)
	require.NoError(t, err)

	assert.True(t, p.Recommended)
	assert.False(t, p.Refined)
	assert.Equal(t, 1.0, mainWeight(t, p.Record, schema.NeckSlot, schema.IceAddedRatio))
	assert.Equal(t, 0.8, mainWeight(t, p.Record, schema.NeckSlot, schema.AttackAddedRatio))
}

func TestPreviewCharacterWithoutRecommendation(t *testing.T) {
	c := schema.Character{ID: "8001", DamageType: schema.Physical}
	p, err := PreviewCharacter(context.Background(), previewConfig(), sampleFeeds(), c)
	require.NoError(t, err)

	assert.False(t, p.Recommended)
	assert.Empty(t, nonZeroCells(p.Record))
}

func TestPreviewCharacterRefine(t *testing.T) {
	cfg := previewConfig()
	cfg.Refine = true

	c := schema.Character{ID: "1102", DamageType: schema.Quantum}
	p, err := PreviewCharacter(context.Background(), cfg, sampleFeeds(), c)
	require.NoError(t, err)
	assert.True(t, p.Refined)
	assert.InDelta(t, 10.3, p.Record.Max, 1e-9)

	// No sub-affix row for 1001, so the record stays unrefined.
	c = schema.Character{ID: "1001", DamageType: schema.Ice}
	p, err = PreviewCharacter(context.Background(), cfg, sampleFeeds(), c)
	require.NoError(t, err)
	assert.False(t, p.Refined)
	assert.Zero(t, p.Record.Max)
}

func TestPreviewCharacterEmptyID(t *testing.T) {
	_, err := PreviewCharacter(context.Background(), previewConfig(), sampleFeeds(), schema.Character{})
	assert.Error(t, err)
}

func TestPreviewCharacterMainAffix(t *testing.T) {
	cfg := previewConfig()
	cfg.MainAffix = true

	c := schema.Character{ID: "1001", DamageType: schema.Ice}
	p, err := PreviewCharacter(context.Background(), cfg, sampleFeeds(), c)
	require.NoError(t, err)
	assert.True(t, p.MainAffixed)
	assert.Equal(t, 1.0, mainWeight(t, p.Record, schema.ObjectSlot, schema.AttackAddedRatio))
}

func TestPreviewCharacterFeedsUnavailable(t *testing.T) {
	c := schema.Character{ID: "1001", DamageType: schema.Ice}
	_, err := PreviewCharacter(context.Background(), previewConfig(), stubSource{}, c)
	assert.ErrorIs(t, err, schema.ErrFeedUnavailable)
}

func TestPreviewCharacterSubAffixFeedUnavailable(t *testing.T) {
	cfg := previewConfig()
	cfg.Refine = true
	feeds := sampleFeeds()
	delete(feeds, subAffixURL)

	c := schema.Character{ID: "1102", DamageType: schema.Quantum}
	_, err := PreviewCharacter(context.Background(), cfg, feeds, c)
	assert.ErrorIs(t, err, schema.ErrFeedUnavailable)
}

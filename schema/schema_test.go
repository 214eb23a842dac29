package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  FlexID
	}{
		{`1001`, "1001"},
		{`"1001"`, "1001"},
		{`8002`, "8002"},
		{`null`, ""},
		{`"abc"`, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var id FlexID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
			assert.Equal(t, string(tt.want), id.String())
		})
	}

	var id FlexID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestDecodeFeedArray(t *testing.T) {
	body := []byte(`[
		{"AvatarID": 1001, "DamageType": "Ice", "Rarity": 4},
		{"AvatarID": "1002", "DamageType": "Wind"}
	]`)
	chars, err := DecodeFeed[Character](body)
	require.NoError(t, err)
	assert.Equal(t, []Character{
		{ID: "1001", DamageType: Ice},
		{ID: "1002", DamageType: Wind},
	}, chars)
}

func TestDecodeFeedKeyed(t *testing.T) {
	body := []byte(`{
		"1102": {"AvatarID": 1102, "DamageType": "Quantum"},
		"8001": {"AvatarID": 8001, "DamageType": "Physical"},
		"1001": {"AvatarID": 1001, "DamageType": "Ice"}
	}`)
	chars, err := DecodeFeed[Character](body)
	require.NoError(t, err)
	require.Len(t, chars, 3)
	assert.Equal(t, FlexID("1001"), chars[0].ID)
	assert.Equal(t, FlexID("1102"), chars[1].ID)
	assert.Equal(t, FlexID("8001"), chars[2].ID)
}

func TestDecodeFeedRecommendations(t *testing.T) {
	body := []byte(`[{"AvatarID": 1102, "PropertyList": [
		{"RelicType": "BODY", "PropertyType": "CriticalDamageBase"},
		{"RelicType": "NECK", "PropertyType": "QuantumAddedRatio"}
	]}]`)
	entries, err := DecodeFeed[RecommendationEntry](body)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FlexID("1102"), entries[0].CharacterID)
	assert.Equal(t, []RecommendationProperty{
		{RelicType: BodyToken, PropertyType: CriticalDamageBase},
		{RelicType: NeckToken, PropertyType: QuantumAddedRatio},
	}, entries[0].Properties)
}

func TestDecodeFeedSubAffixOptionalFields(t *testing.T) {
	body := []byte(`[{"AvatarID": 1001, "HP": 0.75, "Speed": 1, "StatusResistance": 0, "Defence": 0.5}]`)
	rows, err := DecodeFeed[SubAffixValues](body)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.75, rows[0].HP)
	assert.Nil(t, rows[0].Attack)
	require.NotNil(t, rows[0].Defence)
	assert.Equal(t, 0.5, *rows[0].Defence)
}

func TestDecodeFeedEmptyAndInvalid(t *testing.T) {
	chars, err := DecodeFeed[Character](nil)
	assert.NoError(t, err)
	assert.Empty(t, chars)

	_, err = DecodeFeed[Character]([]byte(`[{"AvatarID": true}]`))
	assert.Error(t, err)

	_, err = DecodeFeed[Character]([]byte(`<html>`))
	assert.Error(t, err)
}

func TestSlotTokensCoverAllSlots(t *testing.T) {
	seen := map[SlotID]bool{}
	for _, id := range SlotTokens {
		seen[id] = true
	}
	for _, id := range AllSlots {
		assert.True(t, seen[id], "slot %s has no token", id)
		assert.NotEmpty(t, SlotSchema[id])
	}
}

func TestDamageTypeAddedRatio(t *testing.T) {
	for _, d := range []DamageType{Physical, Fire, Ice, Thunder, Wind, Quantum, Imaginary} {
		assert.True(t, IsElementalRatio(d.AddedRatio()), string(d))
	}
	assert.False(t, IsElementalRatio(AttackAddedRatio))
}

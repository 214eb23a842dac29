// Package schema has models, enums and sentinel errors for all parts of relicdb.
package schema

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// FlexID is an upstream identifier that may be encoded as a JSON number or string.
// It always compares and prints as its decimal string form.
type FlexID string

// UnmarshalJSON accepts numbers, strings and null.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// String returns the identifier as a string.
func (f FlexID) String() string {
	return string(f)
}

// Character is a roster entry. Only the fields needed for derivation are decoded.
type Character struct {
	ID         FlexID     `json:"AvatarID"`
	DamageType DamageType `json:"DamageType"`
}

// RecommendationProperty is one (slot, property) suggestion for a character.
type RecommendationProperty struct {
	RelicType    SlotToken    `json:"RelicType"`
	PropertyType PropertyType `json:"PropertyType"`
}

// RecommendationEntry lists the suggested main stats of a character in feed order.
type RecommendationEntry struct {
	CharacterID FlexID                   `json:"AvatarID"`
	Properties  []RecommendationProperty `json:"PropertyList"`
}

// SubAffixValues is a row of the sub-affix value feed. Pointer fields are optional upstream.
type SubAffixValues struct {
	CharacterID       FlexID   `json:"AvatarID"`
	HP                float64  `json:"HP"`
	Attack            *float64 `json:"Attack"`
	Defence           *float64 `json:"Defence"`
	Speed             float64  `json:"Speed"`
	CriticalChance    *float64 `json:"CriticalChance"`
	CriticalDamage    *float64 `json:"CriticalDamage"`
	StatusProbability *float64 `json:"StatusProbability"`
	StatusResistance  float64  `json:"StatusResistance"`
	BreakDamage       *float64 `json:"BreakDamage"`
}

// MainAffixValues is a row of the main-affix value feed. Pointer fields are optional upstream.
type MainAffixValues struct {
	CharacterID       FlexID   `json:"AvatarID"`
	HP                float64  `json:"HP"`
	Attack            *float64 `json:"Attack"`
	Defence           *float64 `json:"Defence"`
	Speed             float64  `json:"Speed"`
	CriticalChance    *float64 `json:"CriticalChance"`
	CriticalDamage    *float64 `json:"CriticalDamage"`
	StatusProbability *float64 `json:"StatusProbability"`
	BreakDamage       *float64 `json:"BreakDamage"`
	DamageAddedRatio  *float64 `json:"DamageAddedRatio"`
	SPRatio           *float64 `json:"SPRatio"`
	HealRatio         *float64 `json:"HealRatio"`
}

// DecodeFeed decodes a feed body into a slice of records. Both the array layout
// and the older object layout keyed by id are accepted.
func DecodeFeed[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if body[0] == '{' {
		var keyed map[string]T
		if err := json.Unmarshal(body, &keyed); err != nil {
			return nil, fmt.Errorf("decode keyed feed: %w", err)
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, compareIDs)
		out := make([]T, 0, len(keys))
		for _, k := range keys {
			out = append(out, keyed[k])
		}
		return out, nil
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return out, nil
}

// compareIDs orders shorter ids first, so plain numeric ids sort by value.
func compareIDs(a, b string) int {
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	return strings.Compare(a, b)
}

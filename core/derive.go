package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/relicdb/schema"
)

// DeriveWeights fills the main-stat weights of skeleton from a recommendation entry.
// A nil entry leaves the skeleton untouched.
//
// The primary phase walks the entry in order and writes exact literals, so later
// pairs may overwrite earlier ones. The fallback phase then gives every slot that
// declares a mentioned property, and still holds 0 for it, the fallback weight.
// On error the skeleton is left partially written and must be discarded.
func DeriveWeights(c schema.Character, skeleton *schema.WeightRecord, entry *schema.RecommendationEntry) (*schema.WeightRecord, error) {
	if entry == nil {
		return skeleton, nil
	}

	mentioned := make([]schema.PropertyType, 0, len(entry.Properties))
	for _, p := range entry.Properties {
		if !slices.Contains(mentioned, p.PropertyType) {
			mentioned = append(mentioned, p.PropertyType)
		}
	}

	for _, p := range entry.Properties {
		if err := applyPrimary(c, skeleton, p); err != nil {
			return nil, fmt.Errorf("character %s: %w", c.ID, err)
		}
	}

	applyFallback(skeleton, mentioned)
	return skeleton, nil
}

// applyPrimary writes a single recommended (slot, property) pair and its side effects.
func applyPrimary(c schema.Character, rec *schema.WeightRecord, p schema.RecommendationProperty) error {
	id, err := MapSlot(p.RelicType)
	if err != nil {
		return err
	}
	slot := rec.Main.Slot(id)

	if err := slot.Set(p.PropertyType, schema.PrimaryWeight); err != nil {
		return err
	}

	// An elemental ratio makes Attack the runner-up on the same piece.
	if schema.IsElementalRatio(p.PropertyType) {
		if err := slot.Set(schema.AttackAddedRatio, schema.FallbackWeight); err != nil {
			return err
		}
	}

	// Attack on the elemental piece also counts for the character's own element.
	if p.PropertyType == schema.AttackAddedRatio {
		own := c.DamageType.AddedRatio()
		if slot.Declares(own) {
			if err := slot.Set(own, schema.PrimaryWeight); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyFallback fills cells still at the unset weight for every mentioned property.
func applyFallback(rec *schema.WeightRecord, mentioned []schema.PropertyType) {
	for _, p := range mentioned {
		for _, slot := range rec.Main.Slots() {
			w, ok := slot.Get(p)
			if !ok || w != schema.UnsetWeight {
				continue
			}
			slot.Update(p, schema.FallbackWeight)
		}
	}
}

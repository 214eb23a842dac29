package core

import (
	"math"
	"slices"

	"github.com/huangsam/relicdb/schema"
)

// Main-affix tuning constants.
const (
	mainAffixFloor = 0.1 // damage and attack values at or below this skip the neck fix-up
	damageToAttack = 0.8 // share of the damage bonus credited to Attack on the neck
)

type affixValue struct {
	prop  schema.PropertyType
	value float64
}

// ApplyMainAffix overwrites the rolled main-stat weights of rec with the
// character's main-affix values. In every rolled slot the strongest value is
// promoted to 1 unless one already is, and on the neck Attack is raised to
// a share of the damage bonus when both are significant.
func ApplyMainAffix(c schema.Character, rec *schema.WeightRecord, v schema.MainAffixValues) {
	for id, values := range mainAffixValues(c, v) {
		slot := rec.Main.Slot(id)
		for _, a := range values {
			slot.Update(a.prop, a.value)
		}
	}

	for _, id := range refinedSlots {
		promoteStrongest(rec.Main.Slot(id))
	}

	dmg, atk := optional(v.DamageAddedRatio), optional(v.Attack)
	if dmg > mainAffixFloor && atk > mainAffixFloor {
		share := math.Min(schema.PrimaryWeight, math.Round(dmg*damageToAttack*10)/10)
		rec.Main.Slot(schema.NeckSlot).Update(schema.AttackAddedRatio, math.Max(share, atk))
	}
}

// mainAffixValues lays the feed row out per rolled slot.
func mainAffixValues(c schema.Character, v schema.MainAffixValues) map[schema.SlotID][]affixValue {
	common := []affixValue{
		{schema.HPAddedRatio, v.HP},
		{schema.AttackAddedRatio, optional(v.Attack)},
		{schema.DefenceAddedRatio, optional(v.Defence)},
	}

	neck := slices.Clone(common)
	if v.DamageAddedRatio != nil {
		neck = append(neck, affixValue{c.DamageType.AddedRatio(), *v.DamageAddedRatio})
	}

	return map[schema.SlotID][]affixValue{
		schema.BodySlot: slices.Concat(common, []affixValue{
			{schema.CriticalChanceBase, optional(v.CriticalChance)},
			{schema.CriticalDamageBase, optional(v.CriticalDamage)},
			{schema.HealRatioBase, optional(v.HealRatio)},
			{schema.StatusProbabilityBase, optional(v.StatusProbability)},
		}),
		schema.FootSlot: slices.Concat(common, []affixValue{{schema.SpeedDelta, v.Speed}}),
		schema.NeckSlot: neck,
		schema.ObjectSlot: slices.Concat(common, []affixValue{
			{schema.BreakDamageAddedRatioBase, optional(v.BreakDamage)},
			{schema.SPRatioBase, optional(v.SPRatio)},
		}),
	}
}

// promoteStrongest sets every maximal positive weight of slot to 1, unless
// some weight already is 1.
func promoteStrongest(slot *schema.SlotWeights) {
	keys := slot.Keys()
	best := 0.0
	for _, k := range keys {
		w, _ := slot.Get(k)
		if w == schema.PrimaryWeight {
			return
		}
		best = math.Max(best, w)
	}
	if best <= 0 {
		return
	}
	for _, k := range keys {
		if w, _ := slot.Get(k); w == best {
			slot.Update(k, schema.PrimaryWeight)
		}
	}
}

// findMainAffix returns the first main-affix row for id.
func findMainAffix(id string, rows []schema.MainAffixValues) (schema.MainAffixValues, bool) {
	i := slices.IndexFunc(rows, func(r schema.MainAffixValues) bool {
		return r.CharacterID.String() == id
	})
	if i < 0 {
		return schema.MainAffixValues{}, false
	}
	return rows[i], true
}

func optional(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

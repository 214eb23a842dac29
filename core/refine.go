package core

import (
	"cmp"
	"math"
	"slices"

	"github.com/huangsam/relicdb/schema"
)

// Sub-affix scoring constants.
const (
	flatDeltaFloor  = 0.1 // sub-affix values at or below this give flat stats no weight
	flatDeltaDivide = 3.0 // flat stats are worth a third of their ratio counterpart
	rollBonus       = 1.2 // multiplier for a fully rolled sub-affix line
	leadRolls       = 6   // upgrades landing on the best sub-affix of a piece
	fixedMainPieces = 2   // HEAD and HAND, whose main stat never competes with sub-affixes
	pieceCount      = 6.0
)

// refinedSlots are the pieces whose main stat can shadow a sub-affix.
var refinedSlots = []schema.SlotID{schema.BodySlot, schema.FootSlot, schema.NeckSlot, schema.ObjectSlot}

type rankedWeight struct {
	prop   schema.PropertyType
	weight float64
}

// Refine fills the minor-stat vector from sub-affix values and computes the
// record's max score. Main-stat weights are left as derived.
func Refine(rec *schema.WeightRecord, v schema.SubAffixValues) {
	set := func(p schema.PropertyType, w float64) {
		rec.Weight.Update(p, w)
	}

	set(schema.HPDelta, flatDelta(v.HP))
	set(schema.HPAddedRatio, v.HP)
	if v.Attack != nil {
		set(schema.AttackDelta, flatDelta(*v.Attack))
		set(schema.AttackAddedRatio, *v.Attack)
	}
	if v.Defence != nil {
		set(schema.DefenceDelta, flatDelta(*v.Defence))
		set(schema.DefenceAddedRatio, *v.Defence)
	}
	set(schema.SpeedDelta, v.Speed)
	set(schema.StatusResistanceBase, v.StatusResistance)
	for p, val := range map[schema.PropertyType]*float64{
		schema.CriticalChanceBase:        v.CriticalChance,
		schema.CriticalDamageBase:        v.CriticalDamage,
		schema.StatusProbabilityBase:     v.StatusProbability,
		schema.BreakDamageAddedRatioBase: v.BreakDamage,
	} {
		if val != nil {
			set(p, *val)
		}
	}

	rec.Max = MaxScore(rec)
}

// MaxScore estimates the best achievable score of a full relic set for rec.
func MaxScore(rec *schema.WeightRecord) float64 {
	ranked := rankMinorWeights(rec)

	var total float64
	for _, id := range refinedSlots {
		top := topMainStat(rec.Main.Slot(id))
		rest := slices.DeleteFunc(slices.Clone(ranked), func(r rankedWeight) bool {
			return r.prop == top
		})
		total += rollBonus * leadScore(rest)
	}
	total += fixedMainPieces * rollBonus * leadScore(ranked)

	return math.Round(total/pieceCount*1000) / 1000
}

// rankMinorWeights sorts minor weights descending, keeping declared order on ties.
func rankMinorWeights(rec *schema.WeightRecord) []rankedWeight {
	keys := rec.Weight.Keys()
	ranked := make([]rankedWeight, 0, len(keys))
	for _, k := range keys {
		w, _ := rec.Weight.Get(k)
		ranked = append(ranked, rankedWeight{prop: k, weight: w})
	}
	slices.SortStableFunc(ranked, func(a, b rankedWeight) int {
		return cmp.Compare(b.weight, a.weight)
	})
	return ranked
}

// topMainStat returns the highest weighted main stat of a slot, first declared on ties.
func topMainStat(slot *schema.SlotWeights) schema.PropertyType {
	var top schema.PropertyType
	best := math.Inf(-1)
	for _, k := range slot.Keys() {
		if w, _ := slot.Get(k); w > best {
			top, best = k, w
		}
	}
	return top
}

// leadScore scores the four best sub-affixes, the first receiving every upgrade.
func leadScore(ranked []rankedWeight) float64 {
	if len(ranked) < 4 {
		return 0
	}
	return ranked[0].weight*leadRolls + ranked[1].weight + ranked[2].weight + ranked[3].weight
}

func flatDelta(v float64) float64 {
	if v <= flatDeltaFloor {
		return 0
	}
	return math.Round(v/flatDeltaDivide*10) / 10
}

package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeightRecordIsZeroed(t *testing.T) {
	rec := NewWeightRecord()
	require.Len(t, rec.Main.Slots(), len(AllSlots))
	for _, slot := range rec.Main.Slots() {
		assert.Equal(t, SlotSchema[slot.Slot()], slot.Keys())
		for _, p := range slot.Keys() {
			w, ok := slot.Get(p)
			assert.True(t, ok)
			assert.Zero(t, w, "slot %s property %s", slot.Slot(), p)
		}
	}
	assert.Equal(t, MinorStats, rec.Weight.Keys())
	assert.Zero(t, rec.Max)
}

func TestNewWeightRecordIndependence(t *testing.T) {
	a := NewWeightRecord()
	b := NewWeightRecord()
	require.NoError(t, a.Main.Slot(HeadSlot).Set(HPDelta, PrimaryWeight))
	require.NoError(t, a.Weight.Set(SpeedDelta, 0.5))

	w, _ := b.Main.Slot(HeadSlot).Get(HPDelta)
	assert.Zero(t, w)
	w, _ = b.Weight.Get(SpeedDelta)
	assert.Zero(t, w)
}

func TestSlotWeightsSetRejectsUndeclared(t *testing.T) {
	rec := NewWeightRecord()
	tests := []struct {
		slot SlotID
		prop PropertyType
	}{
		{HeadSlot, AttackDelta},
		{BodySlot, FireAddedRatio},
		{FootSlot, CriticalChanceBase},
		{ObjectSlot, SpeedDelta},
		{NeckSlot, "MadeUpRatio"},
	}
	for _, tt := range tests {
		t.Run(string(tt.slot)+"/"+string(tt.prop), func(t *testing.T) {
			err := rec.Main.Slot(tt.slot).Set(tt.prop, PrimaryWeight)
			assert.ErrorIs(t, err, ErrInvalidPropertyForSlot)
			assert.False(t, rec.Main.Slot(tt.slot).Declares(tt.prop))
		})
	}
}

func TestMinorWeightsSetRejectsUnknown(t *testing.T) {
	rec := NewWeightRecord()
	assert.ErrorIs(t, rec.Weight.Set(HealRatioBase, 1), ErrInvalidPropertyForSlot)
	assert.NoError(t, rec.Weight.Set(StatusResistanceBase, 0.3))
}

func TestWeightsUpdate(t *testing.T) {
	rec := NewWeightRecord()
	neck := rec.Main.Slot(NeckSlot)

	assert.True(t, neck.Update(WindAddedRatio, 0.6))
	w, _ := neck.Get(WindAddedRatio)
	assert.Equal(t, 0.6, w)

	assert.False(t, neck.Update(SpeedDelta, 1))
	assert.False(t, rec.Weight.Update(SPRatioBase, 1))
	assert.True(t, rec.Weight.Update(BreakDamageAddedRatioBase, 0.25))
}

func TestMainWeightsSlotUnknown(t *testing.T) {
	rec := NewWeightRecord()
	assert.Nil(t, rec.Main.Slot("7"))
}

func TestWeightRecordMarshalOrder(t *testing.T) {
	rec := NewWeightRecord()
	require.NoError(t, rec.Main.Slot(HeadSlot).Set(HPDelta, PrimaryWeight))
	require.NoError(t, rec.Main.Slot(FootSlot).Set(AttackAddedRatio, FallbackWeight))

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	want := `{"main":{` +
		`"1":{"HPDelta":1},` +
		`"2":{"AttackDelta":0},` +
		`"3":{"HPAddedRatio":0,"AttackAddedRatio":0,"DefenceAddedRatio":0,"CriticalChanceBase":0,"CriticalDamageBase":0,"HealRatioBase":0,"StatusProbabilityBase":0},` +
		`"4":{"HPAddedRatio":0,"AttackAddedRatio":0.8,"DefenceAddedRatio":0,"SpeedDelta":0},` +
		`"5":{"HPAddedRatio":0,"AttackAddedRatio":0,"DefenceAddedRatio":0,"PhysicalAddedRatio":0,"FireAddedRatio":0,"IceAddedRatio":0,"ThunderAddedRatio":0,"WindAddedRatio":0,"QuantumAddedRatio":0,"ImaginaryAddedRatio":0},` +
		`"6":{"BreakDamageAddedRatioBase":0,"SPRatioBase":0,"HPAddedRatio":0,"AttackAddedRatio":0,"DefenceAddedRatio":0}},` +
		`"weight":{"HPDelta":0,"AttackDelta":0,"DefenceDelta":0,"HPAddedRatio":0,"AttackAddedRatio":0,"DefenceAddedRatio":0,"SpeedDelta":0,"CriticalChanceBase":0,"CriticalDamageBase":0,"StatusProbabilityBase":0,"StatusResistanceBase":0,"BreakDamageAddedRatioBase":0},` +
		`"max":0}`
	assert.JSONEq(t, want, string(data))
	assert.Equal(t, want, string(data))
}

func TestWeightRecordTable(t *testing.T) {
	rec := NewWeightRecord()
	require.NoError(t, rec.Main.Slot(NeckSlot).Set(IceAddedRatio, PrimaryWeight))
	rec.Max = 12.5

	table := rec.Table()
	assert.Len(t, table.Main, 6)
	assert.Equal(t, PrimaryWeight, table.Main["5"]["IceAddedRatio"])
	assert.Len(t, table.Main["6"], 5)
	assert.Len(t, table.Weight, len(MinorStats))
	assert.Equal(t, 12.5, table.Max)
}

func TestWeightTableRows(t *testing.T) {
	table := WeightTable{
		Main: map[string]map[string]float64{
			"2":  {"AttackDelta": 1},
			"1":  {"HPDelta": 1},
			"10": {"Legacy": 0.5},
		},
		Weight: map[string]float64{"Zeta": 0.1, "SpeedDelta": 1, "HPDelta": 0},
		Max:    9.6,
	}

	rows := table.Rows("1001")
	require.Len(t, rows, 7)

	assert.Equal(t, WeightRow{CharacterID: "1001", Section: MainSection, Slot: "1", Property: "HPDelta", Weight: 1}, rows[0])
	assert.Equal(t, "2", rows[1].Slot)
	assert.Equal(t, "10", rows[2].Slot, "slots outside the schema follow")
	assert.Equal(t, "HPDelta", rows[3].Property, "minor stats keep declaration order")
	assert.Equal(t, "SpeedDelta", rows[4].Property)
	assert.Equal(t, "Zeta", rows[5].Property)
	assert.Equal(t, WeightRow{CharacterID: "1001", Section: MaxSection, Weight: 9.6}, rows[6])
}

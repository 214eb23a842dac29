package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// orderedWeights is a fixed-key weight vector that marshals in declaration order.
// The key slice is shared and never mutated; values are owned per instance.
type orderedWeights struct {
	keys   []PropertyType
	values []float64
}

func newOrderedWeights(keys []PropertyType) orderedWeights {
	return orderedWeights{keys: keys, values: make([]float64, len(keys))}
}

func (o *orderedWeights) index(p PropertyType) int {
	return slices.Index(o.keys, p)
}

// Declares reports whether p is part of the fixed key set.
func (o *orderedWeights) Declares(p PropertyType) bool {
	return o.index(p) >= 0
}

// Get returns the weight for p and whether p is declared.
func (o *orderedWeights) Get(p PropertyType) (float64, bool) {
	i := o.index(p)
	if i < 0 {
		return 0, false
	}
	return o.values[i], true
}

// Update sets p when it is declared and reports whether it did.
func (o *orderedWeights) Update(p PropertyType, w float64) bool {
	i := o.index(p)
	if i < 0 {
		return false
	}
	o.values[i] = w
	return true
}

// Keys returns the declared property names in persisted order.
func (o *orderedWeights) Keys() []PropertyType {
	return slices.Clone(o.keys)
}

// MarshalJSON emits the vector as an object in declaration order.
func (o orderedWeights) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SlotWeights holds the main-stat weights of one slot under its closed schema.
type SlotWeights struct {
	orderedWeights
	slot SlotID
}

// Slot returns the slot id these weights belong to.
func (s *SlotWeights) Slot() SlotID {
	return s.slot
}

// Set writes a weight. Properties outside the slot schema are rejected.
func (s *SlotWeights) Set(p PropertyType, w float64) error {
	if !s.Update(p, w) {
		return fmt.Errorf("%w: slot %s does not declare %s", ErrInvalidPropertyForSlot, s.slot, p)
	}
	return nil
}

// MinorWeights is the minor-stat weight vector persisted under "weight".
type MinorWeights struct {
	orderedWeights
}

// Set writes a minor-stat weight. Unknown names are rejected.
func (m *MinorWeights) Set(p PropertyType, w float64) error {
	if !m.Update(p, w) {
		return fmt.Errorf("%w: minor stats do not declare %s", ErrInvalidPropertyForSlot, p)
	}
	return nil
}

// MainWeights holds the six slot vectors.
type MainWeights struct {
	slots []*SlotWeights
}

// Slot returns the weights of the given slot, or nil for an unknown id.
func (m *MainWeights) Slot(id SlotID) *SlotWeights {
	for _, s := range m.slots {
		if s.slot == id {
			return s
		}
	}
	return nil
}

// Slots returns every slot in persisted order.
func (m *MainWeights) Slots() []*SlotWeights {
	return m.slots
}

// MarshalJSON emits the slots as an object keyed "1".."6".
func (m MainWeights) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m.slots {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(s.slot))
		if err != nil {
			return nil, err
		}
		val, err := s.orderedWeights.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WeightRecord is the fixed-schema weight record built for a single character.
type WeightRecord struct {
	Main   MainWeights  `json:"main"`
	Weight MinorWeights `json:"weight"`
	Max    float64      `json:"max"`
}

// NewWeightRecord returns an all-zero record with freshly allocated vectors.
func NewWeightRecord() *WeightRecord {
	rec := &WeightRecord{
		Weight: MinorWeights{orderedWeights: newOrderedWeights(MinorStats)},
	}
	for _, id := range AllSlots {
		rec.Main.slots = append(rec.Main.slots, &SlotWeights{
			orderedWeights: newOrderedWeights(SlotSchema[id]),
			slot:           id,
		})
	}
	return rec
}

// Table converts the record into its plain map form.
func (r *WeightRecord) Table() WeightTable {
	t := WeightTable{
		Main:   make(map[string]map[string]float64, len(r.Main.slots)),
		Weight: make(map[string]float64, len(r.Weight.keys)),
		Max:    r.Max,
	}
	for _, s := range r.Main.slots {
		props := make(map[string]float64, len(s.keys))
		for i, k := range s.keys {
			props[string(k)] = s.values[i]
		}
		t.Main[string(s.slot)] = props
	}
	for i, k := range r.Weight.keys {
		t.Weight[string(k)] = r.Weight.values[i]
	}
	return t
}

// WeightTable is the plain map view of a persisted record. Records already on
// disk are read through this type so that legacy keys survive inspection.
type WeightTable struct {
	Main   map[string]map[string]float64 `json:"main" yaml:"main"`
	Weight map[string]float64            `json:"weight" yaml:"weight"`
	Max    float64                       `json:"max" yaml:"max"`
}

// Sections of a flattened weight table.
const (
	MainSection   = "main"
	WeightSection = "weight"
	MaxSection    = "max"
)

// WeightRow is one flattened entry of a weight table.
type WeightRow struct {
	CharacterID string  `json:"character_id" yaml:"character_id"`
	Section     string  `json:"section" yaml:"section"`
	Slot        string  `json:"slot,omitempty" yaml:"slot,omitempty"`
	Property    string  `json:"property,omitempty" yaml:"property,omitempty"`
	Weight      float64 `json:"weight" yaml:"weight"`
}

// Rows flattens the table for id. Slots and properties follow the fixed
// schema order; keys outside the schema follow in lexicographic order. The
// max row comes last.
func (t WeightTable) Rows(id string) []WeightRow {
	var rows []WeightRow

	slotOrder := make([]string, 0, len(t.Main))
	for _, s := range AllSlots {
		if _, ok := t.Main[string(s)]; ok {
			slotOrder = append(slotOrder, string(s))
		}
	}
	slotOrder = appendExtraKeys(slotOrder, t.Main)

	for _, slot := range slotOrder {
		props := t.Main[slot]
		for _, p := range orderedKeys(SlotSchema[SlotID(slot)], props) {
			rows = append(rows, WeightRow{CharacterID: id, Section: MainSection, Slot: slot, Property: p, Weight: props[p]})
		}
	}
	for _, p := range orderedKeys(MinorStats, t.Weight) {
		rows = append(rows, WeightRow{CharacterID: id, Section: WeightSection, Property: p, Weight: t.Weight[p]})
	}
	return append(rows, WeightRow{CharacterID: id, Section: MaxSection, Weight: t.Max})
}

// orderedKeys returns the keys of m, declared ones first in declaration order.
func orderedKeys(declared []PropertyType, m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for _, p := range declared {
		if _, ok := m[string(p)]; ok {
			keys = append(keys, string(p))
		}
	}
	return appendExtraKeys(keys, m)
}

// appendExtraKeys appends the sorted keys of m not already in keys.
func appendExtraKeys[V any](keys []string, m map[string]V) []string {
	var extra []string
	for k := range m {
		if !slices.Contains(keys, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Database maps character ids to weight records. Records are held as raw JSON so
// that existing entries are re-emitted unchanged.
type Database struct {
	records map[string]json.RawMessage
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{records: make(map[string]json.RawMessage)}
}

// DecodeDatabase reads a database document. Empty input yields an empty database.
func DecodeDatabase(r io.Reader) (*Database, error) {
	db := NewDatabase()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&db.records); err != nil {
		if err == io.EOF {
			return db, nil
		}
		return nil, fmt.Errorf("decode database: %w", err)
	}
	if db.records == nil {
		db.records = make(map[string]json.RawMessage)
	}
	return db, nil
}

// Len returns the number of records.
func (db *Database) Len() int {
	return len(db.records)
}

// Has reports whether a record exists for id.
func (db *Database) Has(id string) bool {
	_, ok := db.records[id]
	return ok
}

// Insert adds a record for a new id. Existing ids are never overwritten.
func (db *Database) Insert(id string, rec *WeightRecord) error {
	if db.Has(id) {
		return fmt.Errorf("record %s already present", id)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", id, err)
	}
	db.records[id] = raw
	return nil
}

// Keys returns all ids in lexicographic order.
func (db *Database) Keys() []string {
	return slices.Sorted(maps.Keys(db.records))
}

// Raw returns the stored JSON of a record.
func (db *Database) Raw(id string) (json.RawMessage, bool) {
	raw, ok := db.records[id]
	return raw, ok
}

// Table decodes the record for id into its map view.
func (db *Database) Table(id string) (WeightTable, error) {
	raw, ok := db.records[id]
	if !ok {
		return WeightTable{}, fmt.Errorf("%w: %s", ErrCharacterNotFound, id)
	}
	var t WeightTable
	if err := json.Unmarshal(raw, &t); err != nil {
		return WeightTable{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return t, nil
}

// Subset returns a database holding only ids. Unknown ids yield ErrCharacterNotFound.
func (db *Database) Subset(ids []string) (*Database, error) {
	out := NewDatabase()
	for _, id := range ids {
		raw, ok := db.records[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCharacterNotFound, id)
		}
		out.records[id] = raw
	}
	return out, nil
}

// Clone returns a shallow copy. Raw records are immutable so sharing them is safe.
func (db *Database) Clone() *Database {
	return &Database{records: maps.Clone(db.records)}
}

// Encode writes the database with lexicographic keys, the given indent and no
// HTML escaping.
func (db *Database) Encode(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(db.records)
}

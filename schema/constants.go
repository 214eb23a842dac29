package schema

// Custom string types for type safety.
type (
	// SlotToken is the raw equipment-type token used by the upstream feeds.
	SlotToken string

	// SlotID is the canonical slot identifier used as a key in WeightRecord.Main.
	SlotID string

	// DamageType is the elemental affinity of a character.
	DamageType string

	// PropertyType is a stat property name, e.g. CriticalDamageBase.
	PropertyType string

	// OutputMode represents the format of the output.
	OutputMode string

	// MatchPolicy decides which recommendation entry wins when ids repeat.
	MatchPolicy string

	// DatabaseBackend represents the database backend for caching and run history.
	DatabaseBackend string
)

// All slot tokens found in the recommendation feed.
const (
	HeadToken   SlotToken = "HEAD"
	HandToken   SlotToken = "HAND"
	BodyToken   SlotToken = "BODY"
	FootToken   SlotToken = "FOOT"
	NeckToken   SlotToken = "NECK"
	ObjectToken SlotToken = "OBJECT"
)

// All canonical slot ids, in persisted order.
const (
	HeadSlot   SlotID = "1"
	HandSlot   SlotID = "2"
	BodySlot   SlotID = "3"
	FootSlot   SlotID = "4"
	NeckSlot   SlotID = "5"
	ObjectSlot SlotID = "6"
)

// All damage types.
const (
	Physical  DamageType = "Physical"
	Fire      DamageType = "Fire"
	Ice       DamageType = "Ice"
	Thunder   DamageType = "Thunder"
	Wind      DamageType = "Wind"
	Quantum   DamageType = "Quantum"
	Imaginary DamageType = "Imaginary"
)

// Property names that appear in slot schemas or the minor-stat vector.
const (
	HPDelta                   PropertyType = "HPDelta"
	AttackDelta               PropertyType = "AttackDelta"
	DefenceDelta              PropertyType = "DefenceDelta"
	HPAddedRatio              PropertyType = "HPAddedRatio"
	AttackAddedRatio          PropertyType = "AttackAddedRatio"
	DefenceAddedRatio         PropertyType = "DefenceAddedRatio"
	SpeedDelta                PropertyType = "SpeedDelta"
	CriticalChanceBase        PropertyType = "CriticalChanceBase"
	CriticalDamageBase        PropertyType = "CriticalDamageBase"
	HealRatioBase             PropertyType = "HealRatioBase"
	StatusProbabilityBase     PropertyType = "StatusProbabilityBase"
	StatusResistanceBase      PropertyType = "StatusResistanceBase"
	BreakDamageAddedRatioBase PropertyType = "BreakDamageAddedRatioBase"
	SPRatioBase               PropertyType = "SPRatioBase"
	PhysicalAddedRatio        PropertyType = "PhysicalAddedRatio"
	FireAddedRatio            PropertyType = "FireAddedRatio"
	IceAddedRatio             PropertyType = "IceAddedRatio"
	ThunderAddedRatio         PropertyType = "ThunderAddedRatio"
	WindAddedRatio            PropertyType = "WindAddedRatio"
	QuantumAddedRatio         PropertyType = "QuantumAddedRatio"
	ImaginaryAddedRatio       PropertyType = "ImaginaryAddedRatio"
)

// Derived weight literals. No other values are produced by the derivation.
const (
	UnsetWeight    = 0.0
	FallbackWeight = 0.8
	PrimaryWeight  = 1.0
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
)

// All match policies supported.
const (
	LastMatch  MatchPolicy = "last" // default
	FirstMatch MatchPolicy = "first"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllSlots lists every slot id in persisted order.
var AllSlots = []SlotID{HeadSlot, HandSlot, BodySlot, FootSlot, NeckSlot, ObjectSlot}

// SlotTokens maps each feed token to its canonical slot id.
var SlotTokens = map[SlotToken]SlotID{
	HeadToken:   HeadSlot,
	HandToken:   HandSlot,
	BodyToken:   BodySlot,
	FootToken:   FootSlot,
	NeckToken:   NeckSlot,
	ObjectToken: ObjectSlot,
}

// SlotSchema is the closed set of main-stat properties each slot may carry,
// in the order they are persisted.
var SlotSchema = map[SlotID][]PropertyType{
	HeadSlot: {HPDelta},
	HandSlot: {AttackDelta},
	BodySlot: {
		HPAddedRatio, AttackAddedRatio, DefenceAddedRatio,
		CriticalChanceBase, CriticalDamageBase, HealRatioBase, StatusProbabilityBase,
	},
	FootSlot: {HPAddedRatio, AttackAddedRatio, DefenceAddedRatio, SpeedDelta},
	NeckSlot: {
		HPAddedRatio, AttackAddedRatio, DefenceAddedRatio,
		PhysicalAddedRatio, FireAddedRatio, IceAddedRatio, ThunderAddedRatio,
		WindAddedRatio, QuantumAddedRatio, ImaginaryAddedRatio,
	},
	ObjectSlot: {BreakDamageAddedRatioBase, SPRatioBase, HPAddedRatio, AttackAddedRatio, DefenceAddedRatio},
}

// MinorStats is the fixed minor-stat vector persisted under "weight".
var MinorStats = []PropertyType{
	HPDelta, AttackDelta, DefenceDelta,
	HPAddedRatio, AttackAddedRatio, DefenceAddedRatio,
	SpeedDelta, CriticalChanceBase, CriticalDamageBase,
	StatusProbabilityBase, StatusResistanceBase, BreakDamageAddedRatioBase,
}

// ElementalRatios is the set of elemental damage-ratio properties.
var ElementalRatios = map[PropertyType]struct{}{
	PhysicalAddedRatio:  {},
	FireAddedRatio:      {},
	IceAddedRatio:       {},
	ThunderAddedRatio:   {},
	WindAddedRatio:      {},
	QuantumAddedRatio:   {},
	ImaginaryAddedRatio: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	YAMLOut:    {},
	ParquetOut: {},
	XLSXOut:    {},
}

// ValidMatchPolicies lists all valid match policies.
var ValidMatchPolicies = map[MatchPolicy]struct{}{
	LastMatch:  {},
	FirstMatch: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// IsElementalRatio reports whether p is one of the seven elemental damage ratios.
func IsElementalRatio(p PropertyType) bool {
	_, ok := ElementalRatios[p]
	return ok
}

// AddedRatio returns the elemental damage-ratio property for the damage type.
func (d DamageType) AddedRatio() PropertyType {
	return PropertyType(string(d) + "AddedRatio")
}

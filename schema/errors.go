package schema

import "errors"

// Sentinel errors shared across the engine, feeds and persistence.
var (
	// ErrFeedUnavailable marks a feed that could not be fetched or decoded.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrUnknownSlotToken marks an equipment token outside the six known values.
	ErrUnknownSlotToken = errors.New("unknown slot token")

	// ErrInvalidPropertyForSlot marks a write to a property the slot does not declare.
	ErrInvalidPropertyForSlot = errors.New("invalid property for slot")

	// ErrCharacterNotFound marks a lookup for an id absent from the database.
	ErrCharacterNotFound = errors.New("character not found")
)

package core

import (
	"fmt"

	"github.com/huangsam/relicdb/schema"
)

// MapSlot converts an equipment token from the recommendation feed to its slot id.
func MapSlot(token schema.SlotToken) (schema.SlotID, error) {
	id, ok := schema.SlotTokens[token]
	if !ok {
		return "", fmt.Errorf("%w: %q", schema.ErrUnknownSlotToken, token)
	}
	return id, nil
}

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID creates a prefixed, human-readable identifier.
// Format: {prefix}-{8charHexUUID}
//
// Example:
//   - Input: prefix="player"
//   - Output: "player-a3f8e2b1"
//
// The UUID suffix keeps IDs globally unique while the prefix makes
// logs and exports readable without a lookup table.
func GenerateID(prefix string) string {
	return prefix + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

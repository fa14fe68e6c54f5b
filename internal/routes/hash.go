package routes

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashKeyLen keeps artifact filenames short while leaving collisions across
// a single site's logical paths out of practical reach.
const hashKeyLen = 12

// HashKey content-addresses a logical path. Identical logical paths always
// map to the same key, letting the downstream bundler dedupe artifacts.
func HashKey(logicalPath string) string {
	sum := sha256.Sum256([]byte(logicalPath))
	return hex.EncodeToString(sum[:])[:hashKeyLen]
}

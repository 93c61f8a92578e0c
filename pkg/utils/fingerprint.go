package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const fingerprintLength = 12

// Fingerprint returns a short, stable SHA-256 digest of a contact value so
// log lines can correlate submissions without storing the address itself.
func Fingerprint(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}

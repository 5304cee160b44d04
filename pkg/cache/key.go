package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// extractionVersion changes whenever the extraction patterns or the cached
// encoding change, invalidating old entries.
const extractionVersion = "v1"

// Keyer derives cache keys.
type Keyer interface {
	// ExtractionKey returns the key for the extraction result of a file
	// with the given content.
	ExtractionKey(content []byte) string
}

// DefaultKeyer keys extractions by content hash: "extract:<version>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ExtractionKey implements Keyer.
func (DefaultKeyer) ExtractionKey(content []byte) string {
	return "extract:" + extractionVersion + ":" + ContentHash(content)
}

// ContentHash returns the hex SHA-256 digest of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

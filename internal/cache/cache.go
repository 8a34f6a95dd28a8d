package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for one oracle operation over a block of text.
// Keying on a content hash means the same excerpt submitted from a file, a
// URL, or stdin hits the same entry.
func Key(operation, text string) string {
	hash := sha256.Sum256([]byte(text))
	return "rigor:v1:" + operation + ":" + hex.EncodeToString(hash[:])
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores byte values under string keys with a TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from document content. Lint results are
// keyed by the bytes of the document, so an unchanged file hits the
// cache regardless of its path.
func Key(content []byte) string {
	hash := sha256.Sum256(content)
	return "dossier:v1:" + hex.EncodeToString(hash[:])
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores embedding vectors keyed by the text they encode, so
// repeated index builds and queries skip the embeddings API.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from arbitrary text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "vehs:v1:" + hex.EncodeToString(hash[:])
}

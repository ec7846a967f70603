package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKey builds the cache key for a rendered artifact: a prefix, the
// rasterizer backend name, and a SHA-256 over the SVG content and the
// rendering options. Backends are not pixel-identical, so a change to the
// backend, the input bytes, or the parameters yields a distinct key.
func ArtifactKey(prefix, backend string, svg []byte, opts any) string {
	h := sha256.New()
	h.Write(svg)
	if optData, err := json.Marshal(opts); err == nil {
		h.Write(optData)
	}
	return fmt.Sprintf("%s:%s:%s", prefix, backend, hex.EncodeToString(h.Sum(nil)))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

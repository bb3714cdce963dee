package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyPrefix for analysis entries
const PrefixAnalysis = "analysis"

// GenerateKey generates a cache key from a repository reference.
// The key is a SHA256 hash of the normalized reference.
func GenerateKey(reference string) string {
	normalized := normalizeForKey(reference)
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// AnalysisKey generates the cache key for a repository analysis.
func AnalysisKey(reference string) string {
	return PrefixAnalysis + ":" + GenerateKey(reference)
}

// normalizeForKey normalizes a reference for consistent key generation
func normalizeForKey(reference string) string {
	normalized := strings.TrimSpace(reference)
	normalized = strings.TrimSuffix(normalized, "/")
	normalized = strings.TrimSuffix(normalized, ".git")
	return strings.ToLower(normalized)
}

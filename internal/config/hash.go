package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/zeebo/blake3"
)

// ComputeBlake3Hash computes the BLAKE3 hash of a file.
func ComputeBlake3Hash(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// HashString returns the hex BLAKE3 digest of s truncated to n characters
// (n <= 0 returns the full digest).
func HashString(s string, n int) string {
	hash := blake3.Sum256([]byte(s))
	digest := hex.EncodeToString(hash[:])
	if n > 0 && n < len(digest) {
		return digest[:n]
	}
	return digest
}

// Fingerprint identifies the settings file content the config was loaded from.
// Debug logs and doctor reports carry it so a run can be matched to the
// settings it used.
func (c *Config) Fingerprint() (string, error) {
	if c.SourcePath == "" {
		return "", fmt.Errorf("config was not loaded from a file")
	}
	return ComputeBlake3Hash(c.SourcePath)
}

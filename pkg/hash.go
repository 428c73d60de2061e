package kushn

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// Algorithm represents a digest algorithm configuration.
type Algorithm struct {
	Name string
	Size int // digest size in bytes
	New  func() hash.Hash
}

// GetAlgorithm returns the algorithm configuration for the given name.
func GetAlgorithm(name string) (*Algorithm, error) {
	switch strings.ToLower(name) {
	case "sha1":
		return &Algorithm{Name: "sha1", Size: sha1.Size, New: sha1.New}, nil
	case "sha256":
		return &Algorithm{Name: "sha256", Size: sha256.Size, New: sha256.New}, nil
	case "sha512":
		return &Algorithm{Name: "sha512", Size: sha512.Size, New: sha512.New}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// DefaultAlgorithm returns SHA-256, the manifest digest algorithm. Manifest
// hashes are 64-character lowercase hex strings.
func DefaultAlgorithm() *Algorithm {
	algorithm, _ := GetAlgorithm("sha256")
	return algorithm
}

// HashFile streams the file at path through the algorithm and returns the
// raw digest. The file is consumed as an opaque byte stream, so the result
// is stable across platforms and content types, and it is closed before
// return. A failed open or read returns the error with no partial digest.
func HashFile(path string, algorithm *Algorithm) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	hasher := algorithm.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return nil, fmt.Errorf("failed to hash file %s: %w", path, err)
	}

	return hasher.Sum(nil), nil
}

// HashFileHex calculates the digest of a file and returns it as a lowercase
// hex string.
func HashFileHex(path string, algorithm *Algorithm) (string, error) {
	sum, err := HashFile(path, algorithm)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// HashStringHex calculates the digest of in-memory data and returns it as a
// lowercase hex string.
func HashStringHex(data string, algorithm *Algorithm) string {
	hasher := algorithm.New()
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

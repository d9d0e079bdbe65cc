package vcard

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashAlgo represents a supported fingerprint algorithm.
type HashAlgo string

const (
	// HashSHA256 uses SHA-256.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512.
	HashSHA512 HashAlgo = "sha512"

	// HashBLAKE2b uses BLAKE2b-256.
	HashBLAKE2b HashAlgo = "blake2b"
)

// Hasher performs deterministic one-way hashing.
type Hasher interface {
	// Hash returns the hex-encoded hash of data.
	Hash(data []byte) (string, error)
}

// sha256Hasher implements SHA-256 hashing.
type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher.
// The result is a hex-encoded 64-character string.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// sha512Hasher implements SHA-512 hashing.
type sha512Hasher struct{}

// SHA512Hasher returns a SHA-512 hasher.
// The result is a hex-encoded 128-character string.
func SHA512Hasher() Hasher {
	return &sha512Hasher{}
}

func (h *sha512Hasher) Hash(data []byte) (string, error) {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:]), nil
}

// blake2bHasher implements BLAKE2b-256 hashing.
type blake2bHasher struct{}

// BLAKE2bHasher returns a BLAKE2b-256 hasher.
// The result is a hex-encoded 64-character string.
func BLAKE2bHasher() Hasher {
	return &blake2bHasher{}
}

func (h *blake2bHasher) Hash(data []byte) (string, error) {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// builtinHashers returns the default hasher registry.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashSHA256:  SHA256Hasher(),
		HashSHA512:  SHA512Hasher(),
		HashBLAKE2b: BLAKE2bHasher(),
	}
}

// HasherFor returns the builtin hasher for algo.
func HasherFor(algo HashAlgo) (Hasher, error) {
	h, ok := builtinHashers()[algo]
	if !ok {
		return nil, newConfigError(ErrInvalidOption, string(algo), "unknown hash algorithm")
	}
	return h, nil
}

// Fingerprint hashes the rendered card without its REV line, so two
// builders holding the same fields share a fingerprint regardless of when
// they were rendered.
func (b *Builder) Fingerprint(h Hasher) (string, error) {
	var sb strings.Builder
	b.writeBody(&sb)
	sb.WriteString("END:VCARD" + crlf)

	sum, err := h.Hash([]byte(sb.String()))
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return sum, nil
}

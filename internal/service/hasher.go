package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Supported digest algorithms for stored passwords.
const (
	HashSHA256  = "sha256"
	HashSHA3256 = "sha3-256"
)

// Hasher turns a plaintext password into the stored digest.
//
// Digests are deterministic and unsalted so that a lookup can match on
// (username, digest) directly. That makes equal passwords produce equal
// digests across users: a known weakness kept for compatibility with
// existing credential data.
type Hasher interface {
	Hash(password string) string
}

type digestHasher struct {
	newHash func() hash.Hash
}

func (h digestHasher) Hash(password string) string {
	d := h.newHash()
	d.Write([]byte(password))
	return hex.EncodeToString(d.Sum(nil))
}

// NewHasher returns the hasher for algo. An empty algo selects SHA-256.
func NewHasher(algo string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(algo)) {
	case "", HashSHA256:
		return digestHasher{newHash: sha256.New}, nil
	case HashSHA3256:
		return digestHasher{newHash: sha3.New256}, nil
	default:
		return nil, fmt.Errorf("unsupported password hash %q", algo)
	}
}

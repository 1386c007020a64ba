package ds

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is the digest algorithm used when none is named.
const DefaultAlgorithm = "SHA-512"

// Hasher computes object ids from content.
type Hasher interface {
	// Algorithm is the name the Hasher was constructed with.
	Algorithm() string

	// Sum computes the id of the given content:
	// the lowercase hex encoding of its digest.
	// The empty byte sequence is valid content.
	Sum(data []byte) string
}

var algorithms = map[string]func() hash.Hash{
	"md5":      md5.New,
	"sha1":     sha1.New,
	"sha256":   sha256.New,
	"sha384":   sha512.New384,
	"sha512":   sha512.New,
	"sha3-256": sha3.New256,
	"sha3-512": sha3.New512,
	"blake3":   func() hash.Hash { return blake3.New() },
}

// NewHasher produces a Hasher for the named algorithm.
// Names are case-insensitive and the "SHA-" and "SHA" spellings
// are equivalent, so "SHA-512", "sha512" and "Sha-512" all work.
// An empty name selects DefaultAlgorithm.
// An unknown name is a configuration error,
// reported here rather than at first use.
func NewHasher(name string) (Hasher, error) {
	if name == "" {
		name = DefaultAlgorithm
	}
	newFn, ok := algorithms[normalizeAlgorithm(name)]
	if !ok {
		return nil, errors.Errorf("unknown digest algorithm %q", name)
	}
	return algHasher{name: name, newFn: newFn}, nil
}

func normalizeAlgorithm(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "sha-", "sha")
}

type algHasher struct {
	name  string
	newFn func() hash.Hash
}

func (h algHasher) Algorithm() string { return h.name }

func (h algHasher) Sum(data []byte) string {
	hh := h.newFn()
	hh.Write(data)
	return hex.EncodeToString(hh.Sum(nil))
}

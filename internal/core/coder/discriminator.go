package coder

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// DiscriminatorSize is the length of the tag prefixed to every encoded
// record.
const DiscriminatorSize = 8

// accountNamespace prefixes the type name before hashing, so that account
// discriminators can never collide with tags derived from other namespaces.
const accountNamespace = "account:"

// Discriminator is the 8-byte deterministic tag identifying a record's
// logical type: the first 8 bytes of hash("account:" + name).
type Discriminator [DiscriminatorSize]byte

// String returns the tag as lowercase hex.
func (d Discriminator) String() string {
	return hex.EncodeToString(d[:])
}

// HashFunc is the hash primitive discriminators are derived from. It must
// be deterministic and keyless.
type HashFunc func(data []byte) [32]byte

// SHA256 is the default hash and the one the wire format of existing
// record stores is built on.
var SHA256 HashFunc = sha256.Sum256

// Blake3 is an alternative hash for deployments that are not bound to the
// SHA-256 wire contract.
var Blake3 HashFunc = blake3.Sum256

// Generator derives discriminators from type names. The zero value is not
// usable; construct with NewGenerator.
type Generator struct {
	hash HashFunc
}

// NewGenerator returns a generator over the given hash, defaulting to
// SHA256 when hash is nil.
func NewGenerator(hash HashFunc) Generator {
	if hash == nil {
		hash = SHA256
	}
	return Generator{hash: hash}
}

// Compute returns the discriminator for name. Pure and deterministic: the
// same name always yields the same tag.
func (g Generator) Compute(name string) Discriminator {
	sum := g.hash([]byte(accountNamespace + name))
	var d Discriminator
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

// Compute derives the discriminator for name with the default SHA-256 hash.
func Compute(name string) Discriminator {
	return NewGenerator(nil).Compute(name)
}

// Package accounts is the public surface of the typed record coder. It
// wraps the internal schema, layout and coder packages behind an API that
// only exposes stdlib types: build a Coder from an IDL document, then
// encode, decode and resolve discriminator-prefixed records.
package accounts

import (
	"go.uber.org/zap"

	"github.com/typemark/typemark/internal/core/coder"
	"github.com/typemark/typemark/internal/core/schema"
)

// DiscriminatorSize is the length of the tag prefixed to every record.
const DiscriminatorSize = coder.DiscriminatorSize

// Failure classes, matchable with errors.Is.
var (
	ErrUnknownType           = coder.ErrUnknownType
	ErrUnknownDiscriminator  = coder.ErrUnknownDiscriminator
	ErrBufferTooShort        = coder.ErrBufferTooShort
	ErrDiscriminatorMismatch = coder.ErrDiscriminatorMismatch
	ErrEncodingFailed        = coder.ErrEncodingFailed
	ErrDecodingFailed        = coder.ErrDecodingFailed
)

// Option customizes coder construction.
type Option func(*coder.Config)

// WithLogger directs construction diagnostics and collision warnings to
// the given logger.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *coder.Config) { cfg.Logger = log }
}

// WithHash replaces the SHA-256 discriminator hash. The function must
// be deterministic; records written under one hash cannot be resolved
// under another.
func WithHash(hash func([]byte) [32]byte) Option {
	return func(cfg *coder.Config) { cfg.Hash = coder.HashFunc(hash) }
}

// WithBlake3 selects BLAKE3 discriminators.
func WithBlake3() Option {
	return func(cfg *coder.Config) { cfg.Hash = coder.Blake3 }
}

// WithUncheckedDecode restores the legacy decode behavior: Decode strips
// the embedded discriminator without verifying it matches the requested
// type.
func WithUncheckedDecode() Option {
	return func(cfg *coder.Config) { cfg.UncheckedDecode = true }
}

// Coder encodes and decodes typed records. Safe for concurrent use.
type Coder struct {
	inner *coder.AccountCoder
	types *schema.Collection
}

// NewCoderFromJSON builds a coder from a JSON IDL document.
func NewCoderFromJSON(idl []byte, opts ...Option) (*Coder, error) {
	types, err := schema.ParseJSON(idl)
	if err != nil {
		return nil, err
	}
	return newCoder(types, opts)
}

// NewCoderFromYAML builds a coder from a YAML IDL document.
func NewCoderFromYAML(idl []byte, opts ...Option) (*Coder, error) {
	types, err := schema.ParseYAML(idl)
	if err != nil {
		return nil, err
	}
	return newCoder(types, opts)
}

func newCoder(types *schema.Collection, opts []Option) (*Coder, error) {
	var cfg coder.Config
	for _, opt := range opts {
		opt(&cfg)
	}
	inner, err := coder.NewAccountCoder(types, cfg)
	if err != nil {
		return nil, err
	}
	return &Coder{inner: inner, types: types}, nil
}

// Encode serializes value as a record of the named type.
func (c *Coder) Encode(name string, value any) ([]byte, error) {
	return c.inner.Encode(name, value)
}

// Decode deserializes a record of the named type, verifying the embedded
// discriminator unless the coder was built with WithUncheckedDecode.
func (c *Coder) Decode(name string, data []byte) (any, error) {
	return c.inner.Decode(name, data)
}

// DecodeUnchecked deserializes without comparing the embedded
// discriminator to the named type's.
func (c *Coder) DecodeUnchecked(name string, data []byte) (any, error) {
	return c.inner.DecodeUnchecked(name, data)
}

// DecodeAny resolves the record's type from its discriminator and decodes
// it.
func (c *Coder) DecodeAny(data []byte) (string, any, error) {
	return c.inner.DecodeAny(data)
}

// ResolveTypeName returns the type name owning the tag, or false when the
// tag belongs to no registered type.
func (c *Coder) ResolveTypeName(tag [DiscriminatorSize]byte) (string, bool) {
	return c.inner.ResolveTypeName(coder.Discriminator(tag))
}

// DiscriminatorFor returns the tag the coder prefixes to records of the
// named type.
func (c *Coder) DiscriminatorFor(name string) [DiscriminatorSize]byte {
	return [DiscriminatorSize]byte(c.inner.Discriminator(name))
}

// Types returns the registered type names in IDL declaration order.
func (c *Coder) Types() []string {
	return c.inner.Names()
}

// Fingerprint identifies the schema collection the coder was built from.
func (c *Coder) Fingerprint() uint64 {
	return c.types.Fingerprint()
}

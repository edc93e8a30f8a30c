// Package coder implements the typed binary record coder: encoded records
// carry an 8-byte discriminator derived from the account type name,
// followed by the schema-defined payload. A coder is built once from a
// schema collection and is read-only afterwards, so any number of
// goroutines may encode, decode and resolve concurrently without locking.
package coder

import (
	"go.uber.org/zap"

	"github.com/typemark/typemark/internal/core/schema"
)

// Config controls coder construction. The zero value is valid: SHA-256
// discriminators, no logging, strict discriminator checking on decode.
type Config struct {
	// Hash overrides the discriminator hash primitive. Nil means SHA-256,
	// which is what existing on-disk records were written with.
	Hash HashFunc

	// Logger receives the construction debug line and collision warnings.
	// Nil means no logging.
	Logger *zap.Logger

	// UncheckedDecode restores the permissive legacy behavior: Decode
	// strips the leading 8 bytes without verifying they match the
	// requested type's discriminator.
	UncheckedDecode bool
}

// AccountCoder encodes and decodes discriminator-prefixed records.
type AccountCoder struct {
	gen      Generator
	registry *LayoutRegistry
	index    *DiscriminatorIndex
	strict   bool
}

// NewAccountCoder builds the layout registry and discriminator index from
// the collection. Construction either completes fully or fails fully; a
// half-initialized coder is never returned. A nil collection yields an
// empty coder on which every lookup fails with ErrUnknownType.
func NewAccountCoder(types *schema.Collection, cfg Config) (*AccountCoder, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	gen := NewGenerator(cfg.Hash)

	registry, err := newLayoutRegistry(types)
	if err != nil {
		return nil, err
	}
	index := newDiscriminatorIndex(gen, registry.Names(), log)

	log.Debug("account coder constructed",
		zap.Int("types", len(registry.Names())),
		zap.Uint64("schema_fingerprint", types.Fingerprint()),
	)
	return &AccountCoder{
		gen:      gen,
		registry: registry,
		index:    index,
		strict:   !cfg.UncheckedDecode,
	}, nil
}

// Discriminator returns the tag for name under this coder's hash.
func (c *AccountCoder) Discriminator(name string) Discriminator {
	return c.gen.Compute(name)
}

// Names returns the registered account type names in registration order.
func (c *AccountCoder) Names() []string {
	return c.registry.Names()
}

// Encode serializes value as a record of the named type: the type's
// discriminator followed by the layout-encoded payload. The result is
// allocated at exactly 8+len(payload) bytes.
func (c *AccountCoder) Encode(name string, value any) ([]byte, error) {
	l, ok := c.registry.Lookup(name)
	if !ok {
		return nil, newError(ErrUnknownType, name, nil)
	}
	payload, err := l.Encode(value)
	if err != nil {
		return nil, newError(ErrEncodingFailed, name, err)
	}
	d := c.gen.Compute(name)
	out := make([]byte, DiscriminatorSize+len(payload))
	copy(out, d[:])
	copy(out[DiscriminatorSize:], payload)
	return out, nil
}

// Decode deserializes a record of the named type. The embedded
// discriminator is verified against the name unless the coder was built
// with UncheckedDecode.
func (c *AccountCoder) Decode(name string, data []byte) (any, error) {
	return c.decode(name, data, c.strict)
}

// DecodeUnchecked strips the leading 8 bytes without comparing them to the
// named type's discriminator, regardless of coder configuration. For
// callers that already resolved the name from the tag.
func (c *AccountCoder) DecodeUnchecked(name string, data []byte) (any, error) {
	return c.decode(name, data, false)
}

func (c *AccountCoder) decode(name string, data []byte, checkTag bool) (any, error) {
	if len(data) < DiscriminatorSize {
		return nil, newError(ErrBufferTooShort, name, nil)
	}
	l, ok := c.registry.Lookup(name)
	if !ok {
		return nil, newError(ErrUnknownType, name, nil)
	}
	if checkTag {
		var embedded Discriminator
		copy(embedded[:], data[:DiscriminatorSize])
		if expected := c.gen.Compute(name); embedded != expected {
			return nil, newError(ErrDiscriminatorMismatch, name, nil)
		}
	}
	value, err := l.Decode(data[DiscriminatorSize:])
	if err != nil {
		return nil, newError(ErrDecodingFailed, name, err)
	}
	return value, nil
}

// DecodeAny resolves the record's type from its embedded discriminator and
// decodes it, returning the resolved name alongside the value.
func (c *AccountCoder) DecodeAny(data []byte) (string, any, error) {
	d, err := c.DiscriminatorOf(data)
	if err != nil {
		return "", nil, err
	}
	name, ok := c.index.ResolveName(d)
	if !ok {
		return "", nil, newError(ErrUnknownDiscriminator, "", nil)
	}
	value, err := c.DecodeUnchecked(name, data)
	if err != nil {
		return "", nil, err
	}
	return name, value, nil
}

// ResolveTypeName returns the type name owning the tag, or false if the
// tag belongs to no type in this coder's schema collection.
func (c *AccountCoder) ResolveTypeName(d Discriminator) (string, bool) {
	return c.index.ResolveName(d)
}

// DiscriminatorOf extracts the embedded discriminator from a record buffer.
func (c *AccountCoder) DiscriminatorOf(data []byte) (Discriminator, error) {
	var d Discriminator
	if len(data) < DiscriminatorSize {
		return d, newError(ErrBufferTooShort, "", nil)
	}
	copy(d[:], data[:DiscriminatorSize])
	return d, nil
}

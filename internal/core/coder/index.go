package coder

import (
	"go.uber.org/zap"
)

// DiscriminatorIndex is the inverse of the discriminator generator
// restricted to the registered names: tag -> type name. Built once, then
// read-only.
type DiscriminatorIndex struct {
	byTag map[Discriminator]string
}

// newDiscriminatorIndex computes the discriminator of every name in order.
// If two names collide on a tag the later one overwrites the earlier — a
// birthday-bound risk on a small fixed name set that is accepted rather
// than guarded against. The overwrite is logged so the operator can rename.
func newDiscriminatorIndex(gen Generator, names []string, log *zap.Logger) *DiscriminatorIndex {
	idx := &DiscriminatorIndex{byTag: make(map[Discriminator]string, len(names))}
	for _, name := range names {
		d := gen.Compute(name)
		if prev, collided := idx.byTag[d]; collided {
			log.Warn("discriminator collision, later type shadows earlier",
				zap.String("discriminator", d.String()),
				zap.String("shadowed", prev),
				zap.String("kept", name),
			)
		}
		idx.byTag[d] = name
	}
	return idx
}

// ResolveName returns the type name registered under the tag. A miss is an
// expected outcome when scanning mixed-type stores, not an error.
func (i *DiscriminatorIndex) ResolveName(d Discriminator) (string, bool) {
	name, ok := i.byTag[d]
	return name, ok
}

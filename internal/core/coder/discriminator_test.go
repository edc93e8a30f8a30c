package coder

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMatchesFixture(t *testing.T) {
	// First 8 bytes of sha256("account:Counter"), computed independently.
	want := Discriminator{0xFF, 0xB0, 0x04, 0xF5, 0xBC, 0xFD, 0x7C, 0x19}
	assert.Equal(t, want, Compute("Counter"))
	assert.Equal(t, "ffb004f5bcfd7c19", Compute("Counter").String())
}

func TestComputeIsNamespaced(t *testing.T) {
	// The tag is derived from "account:"+name, not the bare name.
	sum := sha256.Sum256([]byte("account:Vault"))
	var want Discriminator
	copy(want[:], sum[:DiscriminatorSize])
	assert.Equal(t, want, Compute("Vault"))

	bare := sha256.Sum256([]byte("Vault"))
	got := Compute("Vault")
	assert.NotEqual(t, bare[:DiscriminatorSize], got[:])
}

func TestComputeDeterministic(t *testing.T) {
	gen := NewGenerator(nil)
	for _, name := range []string{"", "Counter", "OpenOrders", "a", "A"} {
		assert.Equal(t, gen.Compute(name), gen.Compute(name))
		assert.Equal(t, gen.Compute(name), Compute(name))
	}
}

func TestComputeDistinctOverSampledNames(t *testing.T) {
	// Probabilistic, not absolute: collisions are birthday-bound on the
	// hash, and a realistic schema set should never hit one.
	seen := make(map[Discriminator]string, 2000)
	for i := 0; i < 1000; i++ {
		for _, name := range []string{
			fmt.Sprintf("Account%d", i),
			fmt.Sprintf("Market_%d_State", i),
		} {
			d := Compute(name)
			prev, collided := seen[d]
			require.False(t, collided, "collision between %q and %q", prev, name)
			seen[d] = name
		}
	}
}

func TestBlake3DiffersFromSHA256(t *testing.T) {
	b3 := NewGenerator(Blake3)
	assert.NotEqual(t, Compute("Counter"), b3.Compute("Counter"))
	assert.Equal(t, b3.Compute("Counter"), b3.Compute("Counter"))
}

package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterProducesExactBuffer(t *testing.T) {
	w := NewWriter(4)
	w.WriteU8(0xAB)
	w.WriteU16(0x0102)
	w.WriteU32(0x03040506)
	w.WriteU64(0x0708090A0B0C0D0E)
	w.WriteBool(true)
	w.WriteBytes([]byte{0xFF, 0xFE})

	want := []byte{
		0xAB,
		0x02, 0x01,
		0x06, 0x05, 0x04, 0x03,
		0x0E, 0x0D, 0x0C, 0x0B, 0x0A, 0x09, 0x08, 0x07,
		0x01,
		0xFF, 0xFE,
	}
	assert.Equal(t, want, w.Bytes())
	assert.Equal(t, len(want), w.Len())
}

func TestReaderRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteU8(200)
	w.WriteU16(65500)
	w.WriteU32(4_000_000_000)
	w.WriteU64(1 << 60)
	w.WriteBool(false)

	r := NewReader(w.Bytes())

	u8, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u8)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(65500), u16)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(4_000_000_000), u32)

	u64, err := r.ReadU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<60), u64)

	b, err := r.ReadBool()
	require.NoError(t, err)
	assert.False(t, b)

	assert.Equal(t, 0, r.Remaining())
	assert.Equal(t, w.Len(), r.Offset())
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	_, err := r.ReadU32()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	// The failed read must not consume anything.
	assert.Equal(t, 0, r.Offset())

	_, err = r.ReadN(3)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	p, err := r.ReadN(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, p)

	_, err = r.ReadU8()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReaderInvalidBool(t *testing.T) {
	r := NewReader([]byte{0x02})
	_, err := r.ReadBool()
	assert.ErrorContains(t, err, "invalid bool byte")
}

func TestReaderNegativeCount(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadN(-1)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

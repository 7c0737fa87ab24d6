package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAccessors(t *testing.T) {
	assert := assert.New(t)

	d := DiskToken[uint32](9)
	a, ok := d.Disk()
	assert.True(ok)
	assert.Equal(uint64(9), a)
	_, ok = d.Memory()
	assert.False(ok)
	assert.Equal(TokenDisk, d.Kind())

	m := MemoryToken[uint32](4)
	_, ok = m.Disk()
	assert.False(ok)
	s, ok := m.Memory()
	assert.True(ok)
	assert.Equal(uint32(4), s)

	b := BothToken[uint32](9, 4)
	_, ok = b.Disk()
	assert.True(ok)
	_, ok = b.Memory()
	assert.True(ok)
	assert.Equal("both(9,4)", b.String())
}

func TestTokenBytes(t *testing.T) {
	for _, tok := range []Token[uint16]{
		DiskToken[uint16](0),
		DiskToken[uint16](1 << 40),
		MemoryToken[uint16](65535),
		BothToken[uint16](3, 7),
	} {
		b := tok.Bytes()
		require.Len(t, b, TokenSize)
		got, err := ParseToken[uint16](b)
		require.NoError(t, err)
		assert.Equal(t, tok, got)
	}
}

func TestParseTokenBad(t *testing.T) {
	assert := assert.New(t)
	_, err := ParseToken[uint16](make([]byte, TokenSize-1))
	assert.ErrorIs(err, ErrBadToken)

	_, err = ParseToken[uint16](make([]byte, TokenSize))
	assert.ErrorIs(err, ErrBadToken, "kind 0")

	_, err = ParseToken[uint8](MemoryToken[uint16](256).Bytes())
	assert.ErrorIs(err, ErrBadToken, "memory address too wide")

	b := DiskToken[uint16](1).Bytes()
	b[16] = 1
	_, err = ParseToken[uint16](b)
	assert.ErrorIs(err, ErrBadToken, "memory address on a disk token")
}

package addr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type slot uint16

func TestMax(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(math.MaxUint8), Max[uint8]())
	assert.Equal(uint64(math.MaxUint16), Max[slot]())
	assert.Equal(uint64(math.MaxUint32), Max[uint32]())
	assert.Equal(uint64(math.MaxUint64), Max[uint64]())
}

func TestFromIndex(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(255), FromIndex[uint8](255))
	assert.Equal(uint64(7), Index(FromIndex[slot](7)))
	assert.Panics(func() { FromIndex[uint8](256) })
}

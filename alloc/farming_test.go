package alloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFarmingAllotZero(t *testing.T) {
	f := NewFarming[uint8]()
	assert.Panics(t, func() { f.Allot(0) })
}

func TestFarmingOverflow(t *testing.T) {
	f := NewFarming[uint8]()
	assert.Panics(t, func() { f.Allot(256) })
}

func TestFarmingAllot(t *testing.T) {
	assert := assert.New(t)
	f := NewFarming[uint32]()
	var end uint64
	for i := uint32(0); i <= 100; i++ {
		size := randomSize(50)
		assert.Equal(i, f.Allot(size))
		loc, ok := f.Location(i)
		assert.True(ok)
		assert.Equal(end, loc)
		end += size
	}
	assert.Equal(end, f.End())
}

func TestFarmingRetain(t *testing.T) {
	assert := assert.New(t)
	f := NewFarming[uint8]()
	assert.Panics(func() { f.Retain(1) }, "never allotted")

	a := f.Allot(randomSize(50))
	f.Retain(a)
	assert.Panics(func() { f.Retain(a) }, "retained twice")
}

func TestFarmingExactSizeReuse(t *testing.T) {
	assert := assert.New(t)
	f := NewFarming[uint16]()
	f.Allot(3)
	a1 := f.Allot(5)
	f.Allot(7)
	a3 := f.Allot(5)

	f.Retain(a1)
	f.Retain(a3)
	assert.Equal(uint64(2), f.NumRetained())

	a4 := f.Allot(4)
	assert.Equal(uint16(4), a4, "no retained estate of size 4")
	assert.Equal(a3, f.Allot(5))
	assert.Equal(a1, f.Allot(5))
	assert.Equal(uint64(0), f.NumRetained())

	loc, _ := f.Location(a1)
	assert.Equal(uint64(3), loc)
	size, _ := f.Size(a3)
	assert.Equal(uint64(5), size)
}

func TestFarmingLocationAndSize(t *testing.T) {
	assert := assert.New(t)
	f := NewFarming[uint8]()
	f.Allot(randomSize(50))
	a := f.Allot(randomSize(50))
	f.Allot(randomSize(50))

	_, ok := f.Location(a + 2)
	assert.False(ok)
	_, ok = f.Size(a + 2)
	assert.False(ok)

	f.Retain(a)
	_, ok = f.Location(a)
	assert.False(ok)
	_, ok = f.Size(a)
	assert.False(ok)
}

func TestFarmingRegister(t *testing.T) {
	assert := assert.New(t)
	f := NewFarming[uint8]()
	assert.Panics(func() { f.Register(300, 1) }, "location out of bound")

	assert.Equal(uint8(0), f.Register(0, 3))
	f.Retain(0)
	assert.Equal(uint8(1), f.Register(3, 2), "register never reuses")
	assert.Equal(uint64(5), f.End())
	assert.Panics(func() { f.Register(0, 1) })

	assert.Equal(uint8(0), f.Allot(3))
}

func TestFarmingAbandon(t *testing.T) {
	assert := assert.New(t)
	f := NewFarming[uint8]()
	assert.Panics(func() { f.Abandon(0) }, "nothing allotted")

	a := f.Allot(3)
	b := f.Allot(5)
	assert.Panics(func() { f.Abandon(a) }, "not the newest")

	f.Abandon(b)
	assert.Equal(uint64(3), f.End())
	assert.Equal(uint64(1), f.Len())
	_, ok := f.Location(b)
	assert.False(ok)

	c := f.Allot(2)
	assert.Equal(b, c, "abandoned address is handed out again")
	loc, _ := f.Location(c)
	assert.Equal(uint64(3), loc)
	assert.Equal(uint64(5), f.End())

	f.Retain(c)
	assert.Panics(func() { f.Abandon(c) }, "retained")
}

func TestFarmingUniqueLive(t *testing.T) {
	assert := assert.New(t)
	f := NewFarming[uint64]()
	live := make(map[uint64]bool)
	var order []uint64
	for i := 0; i < 2000; i++ {
		if len(order) > 0 && rand.Intn(3) == 0 {
			j := rand.Intn(len(order))
			a := order[j]
			order = append(order[:j], order[j+1:]...)
			delete(live, a)
			f.Retain(a)
			continue
		}
		a := f.Allot(randomSize(4))
		assert.False(live[a], "address %d handed out while live", a)
		live[a] = true
		order = append(order, a)
	}

	// live estates never overlap
	type span struct{ lo, hi uint64 }
	var spans []span
	for a := range live {
		loc, ok := f.Location(a)
		assert.True(ok)
		size, _ := f.Size(a)
		spans = append(spans, span{loc, loc + size})
	}
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			overlap := spans[i].lo < spans[j].hi && spans[j].lo < spans[i].hi
			assert.False(overlap)
		}
	}
}

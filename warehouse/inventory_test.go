package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryPlaceGet(t *testing.T) {
	assert := assert.New(t)
	inv := NewInventory[uint8, string]()
	a := inv.Place("a")
	b := inv.Place("b")
	assert.NotEqual(a, b)
	v, ok := inv.Get(a)
	assert.True(ok)
	assert.Equal("a", v)
	v, _ = inv.Get(b)
	assert.Equal("b", v)
	assert.Equal(uint64(2), inv.Len())
	assert.True(inv.Has(a))
	assert.False(inv.Has(7))
	assert.Panics(func() { inv.Get(7) }, "unknown address")
}

func TestInventoryRemoveReuse(t *testing.T) {
	assert := assert.New(t)
	inv := NewInventory[uint8, string]()
	a := inv.Place("a")
	inv.Place("b")
	inv.Remove(a)
	_, ok := inv.Get(a)
	assert.False(ok)
	assert.Equal(uint64(1), inv.Len())
	assert.Equal(a, inv.Place("c"), "freed slot is reused")
	assert.Panics(func() {
		inv.Remove(a)
		inv.Remove(a)
	}, "double remove")
}

func TestInventoryTake(t *testing.T) {
	assert := assert.New(t)
	inv := NewInventory[uint8, string]()
	a := inv.Place("a")
	v, ok := inv.Take(a)
	assert.True(ok)
	assert.Equal("a", v)
	_, ok = inv.Take(a)
	assert.False(ok, "already empty")
	assert.Equal(uint64(0), inv.Len())
}

func TestInventoryReplace(t *testing.T) {
	assert := assert.New(t)
	inv := NewInventory[uint8, string]()
	a := inv.Place("a")
	inv.Replace(a, "z")
	v, _ := inv.Get(a)
	assert.Equal("z", v)
	assert.Equal(uint64(1), inv.Len())

	inv.Remove(a)
	assert.Panics(func() { inv.Replace(a, "y") }, "empty slot")
}

func TestInventoryReserve(t *testing.T) {
	assert := assert.New(t)
	inv := NewInventory[uint8, string]()
	r := inv.Reserve(nil)
	_, ok := inv.Get(r)
	assert.False(ok, "reserved slots hold nothing")
	assert.NotEqual(r, inv.Place("a"))

	inv.Fill(r, "r")
	v, _ := inv.Get(r)
	assert.Equal("r", v)
	assert.Panics(func() { inv.Fill(r, "again") })
	assert.Equal(uint64(2), inv.Len())
}

func TestInventoryReserveSpecific(t *testing.T) {
	assert := assert.New(t)
	inv := NewInventory[uint8, string]()
	five := uint8(5)
	assert.Equal(five, inv.Reserve(&five))
	assert.Panics(func() { inv.Reserve(&five) }, "already reserved")

	// The gap below 5 is free for Place, and never hands out 5.
	seen := map[uint8]bool{}
	for i := 0; i < 5; i++ {
		a := inv.Place("x")
		assert.Less(a, five)
		assert.False(seen[a])
		seen[a] = true
	}
	assert.Equal(uint8(6), inv.Place("y"))

	inv.Remove(2)
	two := uint8(2)
	assert.Equal(two, inv.Reserve(&two))
	assert.Equal(uint8(7), inv.Place("z"), "reserved gap is not reused")

	inv.Fill(five, "five")
	inv.Replace(two, "two")
	v, _ := inv.Get(two)
	assert.Equal("two", v)
	inv.Remove(two)
	assert.Equal(two, inv.Place("again"))
}

func TestInventoryOverflow(t *testing.T) {
	inv := NewInventory[uint8, int]()
	for i := 0; i < 255; i++ {
		inv.Place(i)
	}
	assert.Panics(t, func() { inv.Place(255) })
}

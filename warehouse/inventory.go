package warehouse

import (
	"fmt"

	"github.com/mit-pdos/go-warehouse/addr"
	"github.com/mit-pdos/go-warehouse/alloc"
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotReserved
	slotTaken
)

type slot[Item any] struct {
	state slotState
	item  Item
}

// Inventory is an in-memory slot table. Addresses come from a Residential
// allocator with one slot per address, so an address is its slot index.
//
// The allocator's pointer always equals len(storage): every slot below it is
// either live or retained, and a slot is Empty exactly when its address sits
// on the free-list.
type Inventory[A addr.WholeNumber, Item any] struct {
	estate  *alloc.Residential[A]
	storage []slot[Item]
	taken   uint64
}

func NewInventory[A addr.WholeNumber, Item any]() *Inventory[A, Item] {
	return &Inventory[A, Item]{
		estate: alloc.NewResidential[A](1),
	}
}

// claim allots an address and makes sure storage covers it.
func (inv *Inventory[A, Item]) claim() (A, uint64) {
	a := inv.estate.Allot()
	i := addr.Index(a)
	switch {
	case i == uint64(len(inv.storage)):
		inv.storage = append(inv.storage, slot[Item]{})
	case i > uint64(len(inv.storage)):
		panic(fmt.Errorf("inventory: address %d is past storage end %d",
			a, len(inv.storage)))
	case inv.storage[i].state != slotEmpty:
		panic(fmt.Errorf("inventory: allotted address %d is in use", a))
	}
	return a, i
}

// mustSlot returns the slot for a, which must have been handed out before.
func (inv *Inventory[A, Item]) mustSlot(a A) *slot[Item] {
	i := addr.Index(a)
	if i >= uint64(len(inv.storage)) {
		panic(fmt.Errorf("inventory: unknown address %d", a))
	}
	return &inv.storage[i]
}

func (inv *Inventory[A, Item]) Place(item Item) A {
	a, i := inv.claim()
	inv.storage[i] = slot[Item]{state: slotTaken, item: item}
	inv.taken += 1
	return a
}

// Reserve sets aside an address to be filled later. With specific nil a
// fresh address is allotted; otherwise that exact address is claimed,
// growing storage with empty slots up to it if needed.
func (inv *Inventory[A, Item]) Reserve(specific *A) A {
	if specific == nil {
		a, i := inv.claim()
		inv.storage[i].state = slotReserved
		return a
	}
	a := *specific
	i := addr.Index(a)
	if i < uint64(len(inv.storage)) {
		if inv.storage[i].state != slotEmpty {
			panic(fmt.Errorf("inventory: reserve of occupied address %d", a))
		}
		inv.estate.Reclaim(a)
		inv.storage[i].state = slotReserved
		return a
	}
	for j := uint64(len(inv.storage)); j <= i; j++ {
		b := inv.estate.Register(j)
		inv.storage = append(inv.storage, slot[Item]{})
		if j < i {
			inv.estate.Retain(b)
		}
	}
	inv.storage[i].state = slotReserved
	return a
}

// Fill stores item in a reserved slot.
func (inv *Inventory[A, Item]) Fill(a A, item Item) {
	s := inv.mustSlot(a)
	if s.state != slotReserved {
		panic(fmt.Errorf("inventory: fill of unreserved address %d", a))
	}
	*s = slot[Item]{state: slotTaken, item: item}
	inv.taken += 1
}

// Replace overwrites the item at a. Reserved slots are filled.
func (inv *Inventory[A, Item]) Replace(a A, item Item) {
	s := inv.mustSlot(a)
	switch s.state {
	case slotEmpty:
		panic(fmt.Errorf("inventory: replace of empty address %d", a))
	case slotReserved:
		inv.taken += 1
	}
	*s = slot[Item]{state: slotTaken, item: item}
}

func (inv *Inventory[A, Item]) Remove(a A) {
	if inv.mustSlot(a).state == slotEmpty {
		panic(fmt.Errorf("inventory: remove of empty address %d", a))
	}
	inv.Take(a)
}

// Take empties the slot at a and returns what it held, if anything.
func (inv *Inventory[A, Item]) Take(a A) (Item, bool) {
	s := inv.mustSlot(a)
	old := *s
	if old.state == slotEmpty {
		var zero Item
		return zero, false
	}
	inv.estate.Retain(a)
	*s = slot[Item]{}
	if old.state != slotTaken {
		return old.item, false
	}
	inv.taken -= 1
	return old.item, true
}

func (inv *Inventory[A, Item]) Get(a A) (Item, bool) {
	s := inv.mustSlot(a)
	if s.state != slotTaken {
		var zero Item
		return zero, false
	}
	return s.item, true
}

// Has reports whether a holds an item. Unlike Get it accepts any address.
func (inv *Inventory[A, Item]) Has(a A) bool {
	i := addr.Index(a)
	return i < uint64(len(inv.storage)) && inv.storage[i].state == slotTaken
}

// Len reports the number of slots holding an item.
func (inv *Inventory[A, Item]) Len() uint64 {
	return inv.taken
}

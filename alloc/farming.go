package alloc

import (
	"fmt"

	"github.com/mit-pdos/go-warehouse/addr"
	"github.com/mit-pdos/go-warehouse/util"
)

type estate struct {
	location uint64
	retained bool
}

// Farming allocates estates of caller-chosen size.
//
// locations[i] is the start of the estate with address i; it ends where
// estate i+1 starts, or at end for the last one.
type Farming[A addr.WholeNumber] struct {
	locations []estate
	end       uint64               // first location past every estate
	retained  map[uint64]*stack[A] // by estate size
}

func NewFarming[A addr.WholeNumber]() *Farming[A] {
	return &Farming[A]{
		retained: make(map[uint64]*stack[A]),
	}
}

func (f *Farming[A]) extend(size uint64) A {
	if util.SumOverflows(f.end, size) || f.end+size > addr.Max[A]() {
		panic("farming: allot overflow")
	}
	a := addr.FromIndex[A](uint64(len(f.locations)))
	f.locations = append(f.locations, estate{location: f.end})
	f.end += size
	return a
}

// Allot returns a retained address of exactly size if there is one, and
// otherwise extends the address space by size.
func (f *Farming[A]) Allot(size uint64) A {
	if size == 0 {
		panic("farming: allot size cannot be zero")
	}
	if s, ok := f.retained[size]; ok {
		a, _ := s.pop()
		if s.len() == 0 {
			delete(f.retained, size)
		}
		e := &f.locations[addr.Index(a)]
		if !e.retained {
			panic(fmt.Errorf("farming: free-list address %d is occupied", a))
		}
		e.retained = false
		util.DPrintf(10, "farming: reuse %d size %d\n", a, size)
		return a
	}
	return f.extend(size)
}

func (f *Farming[A]) Retain(a A) {
	i := addr.Index(a)
	if i >= uint64(len(f.locations)) {
		panic(fmt.Errorf("farming: retain of unallotted address %d", a))
	}
	if f.locations[i].retained {
		panic(fmt.Errorf("farming: address %d already retained", a))
	}
	size := f.sizeOf(i)
	s, ok := f.retained[size]
	if !ok {
		s = new(stack[A])
		f.retained[size] = s
	}
	s.push(a)
	f.locations[i].retained = true
}

func (f *Farming[A]) sizeOf(i uint64) uint64 {
	next := f.end
	if i+1 < uint64(len(f.locations)) {
		next = f.locations[i+1].location
	}
	return next - f.locations[i].location
}

func (f *Farming[A]) live(a A) (uint64, bool) {
	i := addr.Index(a)
	if i >= uint64(len(f.locations)) || f.locations[i].retained {
		return 0, false
	}
	return i, true
}

// Location returns where a's estate starts, or false if a is not live.
func (f *Farming[A]) Location(a A) (uint64, bool) {
	i, ok := f.live(a)
	if !ok {
		return 0, false
	}
	return f.locations[i].location, true
}

// Size returns the length of a's estate, or false if a is not live.
func (f *Farming[A]) Size(a A) (uint64, bool) {
	i, ok := f.live(a)
	if !ok {
		return 0, false
	}
	return f.sizeOf(i), true
}

// Register claims the estate [location, location+size), which must start at
// End. It never reuses a retained address.
func (f *Farming[A]) Register(location uint64, size uint64) A {
	if location != f.end {
		panic(fmt.Errorf("farming: register at %d, expected %d", location, f.end))
	}
	if size == 0 {
		panic("farming: register size cannot be zero")
	}
	return f.extend(size)
}

// Abandon undoes the Allot or Register that handed out a by extending the
// address space. a must be the newest address and still live; End moves
// back to where a's estate started.
func (f *Farming[A]) Abandon(a A) {
	i := addr.Index(a)
	n := uint64(len(f.locations))
	if n == 0 || i != n-1 {
		panic(fmt.Errorf("farming: abandon of %d, which is not the newest address", a))
	}
	if f.locations[i].retained {
		panic(fmt.Errorf("farming: abandon of retained address %d", a))
	}
	f.end = f.locations[i].location
	f.locations = f.locations[:i]
	util.DPrintf(10, "farming: abandon %d, end back to %d\n", a, f.end)
}

// End is the first location past every estate handed out so far.
func (f *Farming[A]) End() uint64 {
	return f.end
}

// Len reports how many addresses have ever been allotted.
func (f *Farming[A]) Len() uint64 {
	return uint64(len(f.locations))
}

func (f *Farming[A]) NumRetained() uint64 {
	var n uint64
	for _, s := range f.retained {
		n += s.len()
	}
	return n
}

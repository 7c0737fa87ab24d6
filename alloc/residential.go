package alloc

import (
	"fmt"

	"github.com/mit-pdos/go-warehouse/addr"
	"github.com/mit-pdos/go-warehouse/util"
)

// Residential allocates fixed-size estates.
type Residential[A addr.WholeNumber] struct {
	size     uint64
	pointer  uint64 // next never-allotted address
	retained stack[A]
	verify   map[A]struct{} // members of retained
}

func NewResidential[A addr.WholeNumber](size uint64) *Residential[A] {
	if size == 0 {
		panic("residential: size cannot be zero")
	}
	return &Residential[A]{
		size:   size,
		verify: make(map[A]struct{}),
	}
}

// advance hands out the pointer address after checking that its estate
// still fits in the address space.
func (r *Residential[A]) advance() A {
	if util.MulOverflows(r.pointer, r.size) {
		panic("residential: allot overflow")
	}
	location := r.pointer * r.size
	if util.SumOverflows(location, r.size) || location+r.size > addr.Max[A]() {
		panic("residential: allot overflow")
	}
	a := addr.FromIndex[A](r.pointer)
	r.pointer += 1
	return a
}

// Allot returns the most recently retained address, or a fresh one.
func (r *Residential[A]) Allot() A {
	if a, ok := r.retained.pop(); ok {
		delete(r.verify, a)
		util.DPrintf(10, "residential: reuse %d\n", a)
		return a
	}
	return r.advance()
}

func (r *Residential[A]) Retain(a A) {
	if addr.Index(a) >= r.pointer {
		panic(fmt.Errorf("residential: retain of unallotted address %d", a))
	}
	if _, ok := r.verify[a]; ok {
		panic(fmt.Errorf("residential: address %d already retained", a))
	}
	r.retained.push(a)
	r.verify[a] = struct{}{}
}

// Reclaim takes the retained address a back off the free-list, as if Allot
// had returned it.
func (r *Residential[A]) Reclaim(a A) {
	if _, ok := r.verify[a]; !ok {
		panic(fmt.Errorf("residential: reclaim of unretained address %d", a))
	}
	r.retained.remove(a)
	delete(r.verify, a)
}

// Location returns the offset of a's estate, or false if a is not live.
func (r *Residential[A]) Location(a A) (uint64, bool) {
	if addr.Index(a) >= r.pointer {
		return 0, false
	}
	if _, ok := r.verify[a]; ok {
		return 0, false
	}
	return addr.Index(a) * r.size, true
}

// Register claims the estate at location, which must be the next
// never-allotted one, and returns its address.
func (r *Residential[A]) Register(location uint64) A {
	if util.MulOverflows(r.pointer, r.size) || location != r.pointer*r.size {
		panic(fmt.Errorf("residential: register at %d, expected %d",
			location, r.pointer*r.size))
	}
	return r.advance()
}

// Len reports how many addresses have ever been allotted.
func (r *Residential[A]) Len() uint64 {
	return r.pointer
}

func (r *Residential[A]) NumRetained() uint64 {
	return r.retained.len()
}

// Package addr describes the integer types usable as allocator addresses.
//
// An address is an opaque handle handed out by an allocator. It is stable for
// the life of the record it names and never reused while that record is live.
// Allocators do their arithmetic on plain uint64 indices and convert at the
// boundary with Index and FromIndex.
package addr

import (
	"fmt"
)

// WholeNumber is satisfied by the unsigned integer types an allocator may hand
// out. The zero value is the first address.
type WholeNumber interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Max returns the largest value representable by A.
func Max[A WholeNumber]() uint64 {
	var a A
	a = ^a
	return uint64(a)
}

func Index[A WholeNumber](a A) uint64 {
	return uint64(a)
}

// FromIndex converts i to an address, panicking if A cannot hold it.
func FromIndex[A WholeNumber](i uint64) A {
	if i > Max[A]() {
		panic(fmt.Errorf("address %d overflows max %d", i, Max[A]()))
	}
	return A(i)
}

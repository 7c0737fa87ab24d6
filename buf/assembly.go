package buf

import (
	"fmt"

	"github.com/mit-pdos/go-warehouse/common"
)

// Integrity is the outcome of dismantling a package.
type Integrity struct {
	good       common.Good
	consistent bool
}

func Consistent(good common.Good) Integrity {
	return Integrity{good: good, consistent: true}
}

var Inconsistent = Integrity{}

func (i Integrity) Consistent() bool {
	return i.consistent
}

// Good returns the dismantled good, which is nil if the package was torn.
func (i Integrity) Good() common.Good {
	return i.good
}

// Assemble frames good as a freshly inserted package.
func Assemble(good common.Good) common.Package {
	return AssembleAs(good, FlagInsert)
}

func AssembleAs(good common.Good, flag Flag) common.Package {
	if len(good) == 0 {
		panic("assemble: good cannot be empty")
	}
	goodLen := uint64(len(good)) + 1
	count := BlockCount(common.HeaderSize + goodLen)
	if count > 0xFFFF || goodLen > 0xFFFFFFFF {
		panic(fmt.Errorf("assemble: good of %d bytes does not fit a label", len(good)))
	}
	pkg := make(common.Package, BlockBytes(count))
	PutLabel(pkg, Label{
		BlockCount: uint16(count),
		Flag:       flag,
		GoodLen:    uint32(goodLen),
	})
	n := copy(pkg[common.HeaderSize:], good)
	pkg[common.HeaderSize+uint64(n)] = common.ConsistentByte
	return pkg
}

// Tombstone returns a zero-filled, delete-flagged package spanning count
// blocks.
func Tombstone(count uint64) common.Package {
	pkg := make(common.Package, BlockBytes(count))
	PutLabel(pkg, Label{
		BlockCount: uint16(count),
		Flag:       FlagDelete,
	})
	return pkg
}

// Dismantle extracts the good from pkg and checks its consistency byte.
//
// A header that claims more good bytes than pkg holds is reported as
// inconsistent rather than an error: it is what a torn write looks like.
func Dismantle(pkg common.Package) (Integrity, error) {
	l, err := ReadLabel(pkg)
	if err != nil {
		return Inconsistent, err
	}
	end := common.HeaderSize + uint64(l.GoodLen)
	if l.GoodLen == 0 || end > uint64(len(pkg)) {
		return Inconsistent, nil
	}
	good := pkg[common.HeaderSize:end]
	if good[len(good)-1] != common.ConsistentByte {
		return Inconsistent, nil
	}
	out := make(common.Good, len(good)-1)
	copy(out, good)
	return Consistent(out), nil
}

package buf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mit-pdos/go-warehouse/common"
)

const (
	offBlockCount = 0
	offFlag       = offBlockCount + 2
	offGoodLen    = offFlag + 1
)

var ErrShortHeader = errors.New("buf: package shorter than header")

// Label is the header at the front of every package.
type Label struct {
	BlockCount uint16
	Flag       Flag
	GoodLen    uint32 // includes the consistency byte
}

// PutLabel writes l over the first HeaderSize bytes of pkg.
func PutLabel(pkg []byte, l Label) {
	if uint64(len(pkg)) < common.HeaderSize {
		panic(fmt.Errorf("label: package of %d bytes has no room for a header", len(pkg)))
	}
	binary.LittleEndian.PutUint16(pkg[offBlockCount:], l.BlockCount)
	pkg[offFlag] = byte(l.Flag)
	binary.LittleEndian.PutUint32(pkg[offGoodLen:], l.GoodLen)
}

// ReadLabel decodes the header at the front of b.
func ReadLabel(b []byte) (Label, error) {
	if uint64(len(b)) < common.HeaderSize {
		return Label{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(b))
	}
	return Label{
		BlockCount: binary.LittleEndian.Uint16(b[offBlockCount:]),
		Flag:       FlagOf(b[offFlag]),
		GoodLen:    binary.LittleEndian.Uint32(b[offGoodLen:]),
	}, nil
}

// PackageLen is the byte length of the package this label heads.
func (l Label) PackageLen() uint64 {
	return BlockBytes(uint64(l.BlockCount))
}

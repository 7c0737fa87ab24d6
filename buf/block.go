// Package buf frames goods into block-aligned packages and back.
//
// A package is laid out as
//
//	[block count: u16 LE][flag: u8][good length: u32 LE][good][0xFF][zero padding]
//
// where the good length counts the trailing 0xFF consistency byte. A package
// whose consistency byte is missing was torn by a crash mid-write.
//
// Nothing in this package performs I/O.
package buf

import (
	"github.com/mit-pdos/go-warehouse/common"
	"github.com/mit-pdos/go-warehouse/util"
)

// BlockCount returns how many blocks n bytes occupy.
func BlockCount(n uint64) uint64 {
	if n == 0 {
		panic("block count of zero bytes")
	}
	return util.RoundUp(n, common.BlockSize)
}

// BlockPointer returns the byte offset of block blkno.
func BlockPointer(blkno common.Bnum) uint64 {
	return blkno * common.BlockSize
}

func BlockBytes(count uint64) uint64 {
	return count * common.BlockSize
}

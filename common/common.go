package common

const (
	BlockSize   uint64 = 256       // bytes per block, the unit of disk allocation
	GoodMaxSize uint64 = 32 * 1024 // largest good a single package may carry
	ChunkSize   uint64 = GoodMaxSize * 2

	// HeaderSize is the size of a package label:
	// [block count u16][flag u8][good length u32]
	HeaderSize uint64 = 2 + 1 + 4

	// ConsistentByte trails every good inside its package.
	ConsistentByte byte = 0xFF

	// MaxPackageBlocks is the block count of the largest legal package.
	MaxPackageBlocks = (HeaderSize + GoodMaxSize + 1 + BlockSize - 1) / BlockSize
	MaxPackageSize   = MaxPackageBlocks * BlockSize
)

// Good is the caller's record content.
type Good = []byte

// Package is a good framed for disk: header, good, consistency byte and
// zero padding up to a block boundary.
type Package = []byte

// Bnum numbers blocks from the start of a data file.
type Bnum = uint64

package godown

import (
	"github.com/mit-pdos/go-warehouse/common"
)

// Mode selects what a scan does with the packages it finds.
type Mode int

const (
	// Initialize rebuilds the allocator from the packages on disk, in disk
	// order, and reports every live good with its address. The Godown must
	// be fresh.
	Initialize Mode = iota

	// Uninitialize only reports goods; the allocator is left alone.
	Uninitialize
)

func (m Mode) String() string {
	if m == Initialize {
		return "initialize"
	}
	return "uninitialize"
}

// Item is one good found by a scan. Address is only meaningful when
// Addressed is set, which it is in Initialize mode.
type Item struct {
	Address   Address
	Addressed bool
	Good      common.Good
}

// Logistics is a resumable scan cursor over a Godown's data.
//
// Each TransferChunk call reads one window past the cursor and appends the
// goods it finds; Unload hands them over. Once Done reports true the scan has
// seen everything and further transfers do nothing.
type Logistics struct {
	mode    Mode
	pointer uint64      // byte offset of the next unread package
	blkno   common.Bnum // block the next package registers at
	items   []Item
	done    bool
}

func NewLogistics(mode Mode) *Logistics {
	return &Logistics{mode: mode}
}

func (l *Logistics) Mode() Mode {
	return l.mode
}

func (l *Logistics) Done() bool {
	return l.done
}

func (l *Logistics) Pointer() uint64 {
	return l.pointer
}

func (l *Logistics) load(item Item) {
	l.items = append(l.items, item)
}

// Unload returns the goods gathered since the last Unload.
func (l *Logistics) Unload() []Item {
	items := l.items
	l.items = nil
	return items
}

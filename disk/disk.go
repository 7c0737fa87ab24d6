package disk

import "errors"

var ErrDeviceFull = errors.New("disk: write past end of device")

// Disk provides positioned access to the bytes of a data file.
//
// Every call names its own offset, so there is no shared seek position to
// race on. Callers still serialize access to one Disk.
type Disk interface {
	// ReadAt reads up to n bytes starting at off. It returns fewer bytes
	// only when it reaches the end of the data, and an empty slice when
	// there is nothing at off.
	ReadAt(off uint64, n uint64) ([]byte, error)

	// WriteAt writes b at off, growing the data if needed.
	WriteAt(off uint64, b []byte) error

	// Size reports how many bytes the disk holds.
	Size() (uint64, error)

	// Barrier ensures data is persisted.
	//
	// When it returns, all outstanding writes are guaranteed to be durably on
	// disk
	Barrier() error

	// Close releases any resources used by the disk and makes it unusable.
	Close() error
}

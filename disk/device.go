package disk

import (
	gdisk "github.com/tchajed/goose/machine/disk"

	"github.com/mit-pdos/go-warehouse/util"
)

var _ Disk = (*Device)(nil)

// Device adapts a fixed-size block device to byte-positioned access. Writes
// that do not cover whole device blocks read-modify-write them. Reads past
// the end of the device come back short.
type Device struct {
	d    gdisk.Disk
	size uint64 // in bytes
}

func NewDevice(d gdisk.Disk) *Device {
	return &Device{d: d, size: d.Size() * gdisk.BlockSize}
}

func (dev *Device) ReadAt(off uint64, n uint64) ([]byte, error) {
	if off >= dev.size {
		return []byte{}, nil
	}
	end := util.Min(off+n, dev.size)
	buf := make([]byte, 0, end-off)
	for pos := off; pos < end; {
		bn := pos / gdisk.BlockSize
		start := pos % gdisk.BlockSize
		stop := util.Min(gdisk.BlockSize, start+(end-pos))
		blk := dev.d.Read(bn)
		buf = append(buf, blk[start:stop]...)
		pos += stop - start
	}
	return buf, nil
}

func (dev *Device) WriteAt(off uint64, b []byte) error {
	end := off + uint64(len(b))
	if end > dev.size {
		return ErrDeviceFull
	}
	for pos := off; pos < end; {
		bn := pos / gdisk.BlockSize
		start := pos % gdisk.BlockSize
		stop := util.Min(gdisk.BlockSize, start+(end-pos))
		src := b[pos-off : pos-off+(stop-start)]
		if start == 0 && stop == gdisk.BlockSize {
			dev.d.Write(bn, src)
		} else {
			blk := dev.d.Read(bn)
			copy(blk[start:stop], src)
			dev.d.Write(bn, blk)
		}
		pos += stop - start
	}
	return nil
}

func (dev *Device) Size() (uint64, error) {
	return dev.size, nil
}

func (dev *Device) Barrier() error {
	dev.d.Barrier()
	return nil
}

func (dev *Device) Close() error {
	dev.d.Close()
	return nil
}

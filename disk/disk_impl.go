package disk

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/mit-pdos/go-warehouse/util"
)

var _ Disk = (*FileDisk)(nil)

// FileDisk is a Disk backed by a regular file.
type FileDisk struct {
	fd   int
	path string
}

// NewFileDisk opens path for reading and writing, creating it if it does not
// exist.
func NewFileDisk(path string) (*FileDisk, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_CLOEXEC, 0666)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	var stat unix.Stat_t
	err = unix.Fstat(fd, &stat)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFREG {
		unix.Close(fd)
		return nil, fmt.Errorf("open %s: not a regular file", path)
	}
	util.DPrintf(1, "disk: opened %s (%d bytes)\n", path, stat.Size)
	return &FileDisk{fd: fd, path: path}, nil
}

func (d *FileDisk) ReadAt(off uint64, n uint64) ([]byte, error) {
	buf := make([]byte, n)
	var read uint64
	for read < n {
		m, err := unix.Pread(d.fd, buf[read:], int64(off+read))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s at %d: %w", d.path, off+read, err)
		}
		if m == 0 {
			break
		}
		read += uint64(m)
	}
	util.DPrintf(20, "read: %d+%d\n", off, read)
	return buf[:read], nil
}

func (d *FileDisk) WriteAt(off uint64, b []byte) error {
	var written uint64
	for written < uint64(len(b)) {
		m, err := unix.Pwrite(d.fd, b[written:], int64(off+written))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("write %s at %d: %w", d.path, off+written, err)
		}
		written += uint64(m)
	}
	util.DPrintf(20, "write: %d+%d\n", off, len(b))
	return nil
}

func (d *FileDisk) Size() (uint64, error) {
	var stat unix.Stat_t
	err := unix.Fstat(d.fd, &stat)
	if err != nil {
		return 0, err
	}
	return uint64(stat.Size), nil
}

func (d *FileDisk) Barrier() error {
	// NOTE: on macOS, this flushes to the drive but doesn't actually issue a
	// disk barrier; see https://golang.org/src/internal/poll/fd_fsync_darwin.go
	// for more details. The correct replacement is to issue a fcntl syscall with
	// cmd F_FULLFSYNC.
	err := unix.Fsync(d.fd)
	if err != nil {
		return fmt.Errorf("sync %s: %w", d.path, err)
	}
	util.DPrintf(20, "barrier\n")
	return nil
}

func (d *FileDisk) Close() error {
	return unix.Close(d.fd)
}

/////////////////////////
/////////////////////////

var _ Disk = (*MemDisk)(nil)

// MemDisk is a growable in-memory Disk.
type MemDisk struct {
	l    *sync.RWMutex
	data []byte
}

func NewMemDisk() *MemDisk {
	return &MemDisk{l: new(sync.RWMutex)}
}

func (d *MemDisk) ReadAt(off uint64, n uint64) ([]byte, error) {
	d.l.RLock()
	defer d.l.RUnlock()
	if off >= uint64(len(d.data)) {
		return []byte{}, nil
	}
	end := util.Min(off+n, uint64(len(d.data)))
	buf := make([]byte, end-off)
	copy(buf, d.data[off:end])
	return buf, nil
}

func (d *MemDisk) WriteAt(off uint64, b []byte) error {
	d.l.Lock()
	defer d.l.Unlock()
	end := off + uint64(len(b))
	if end > uint64(len(d.data)) {
		grown := make([]byte, end)
		copy(grown, d.data)
		d.data = grown
	}
	copy(d.data[off:], b)
	return nil
}

func (d *MemDisk) Size() (uint64, error) {
	d.l.RLock()
	defer d.l.RUnlock()
	return uint64(len(d.data)), nil
}

func (d *MemDisk) Barrier() error { return nil }

func (d *MemDisk) Close() error { return nil }

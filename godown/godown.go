// Package godown stores goods on disk, one block-aligned package per good.
//
// Addresses come from a Farming allocator whose unit is a block, so an
// address's location is its first block. Removing a good overwrites its
// package with a tombstone of the same span and frees the address; disk space
// is never handed back, only reused by a later good of the same block count.
//
// The allocator lives only in memory. After opening an existing file, run an
// Initialize scan (see Logistics) before placing anything, which replays the
// packages on disk into the allocator.
package godown

import (
	"errors"
	"fmt"

	"github.com/mit-pdos/go-warehouse/alloc"
	"github.com/mit-pdos/go-warehouse/buf"
	"github.com/mit-pdos/go-warehouse/common"
	"github.com/mit-pdos/go-warehouse/disk"
	"github.com/mit-pdos/go-warehouse/util"
)

type Address = uint64

// Godown is a disk object store. It is not safe for concurrent use.
type Godown struct {
	estate    *alloc.Farming[Address]
	d         disk.Disk
	chunkSize uint64
}

type Option func(*Godown)

// WithChunkSize sets the scan window. It must hold the largest package.
func WithChunkSize(n uint64) Option {
	if n < common.MaxPackageSize {
		panic(fmt.Errorf("godown: chunk size %d cannot hold a %d-byte package",
			n, common.MaxPackageSize))
	}
	return func(g *Godown) {
		g.chunkSize = n
	}
}

func New(d disk.Disk, opts ...Option) *Godown {
	g := &Godown{
		estate:    alloc.NewFarming[Address](),
		d:         d,
		chunkSize: common.ChunkSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Open opens (creating if needed) the data file at path.
func Open(path string, opts ...Option) (*Godown, error) {
	d, err := disk.NewFileDisk(path)
	if err != nil {
		return nil, err
	}
	return New(d, opts...), nil
}

func (g *Godown) write(blkno common.Bnum, pkg common.Package) error {
	return g.d.WriteAt(buf.BlockPointer(blkno), pkg)
}

func (g *Godown) place(good common.Good, flag buf.Flag) (Address, error) {
	if uint64(len(good)) > common.GoodMaxSize {
		return 0, fmt.Errorf("%w: %d > %d bytes", ErrGoodTooLarge, len(good), common.GoodMaxSize)
	}
	if len(good) == 0 {
		return 0, ErrEmptyGood
	}
	pkg := buf.AssembleAs(good, flag)
	count := uint64(len(pkg)) / common.BlockSize
	n := g.estate.Len()
	a := g.estate.Allot(count)
	loc, _ := g.estate.Location(a)
	err := g.write(loc, pkg)
	if err != nil {
		// A reused estate still holds its tombstone, but a fresh one holds
		// nothing a scan could step over.
		if g.estate.Len() > n {
			g.estate.Abandon(a)
		} else {
			g.estate.Retain(a)
		}
		return 0, err
	}
	util.DPrintf(3, "godown: place %d at block %d (%d blocks)\n", a, loc, count)
	return a, nil
}

// Place stores good and returns its address.
func (g *Godown) Place(good common.Good) (Address, error) {
	return g.place(good, buf.FlagInsert)
}

func (g *Godown) mustLocate(a Address) (common.Bnum, uint64) {
	loc, ok := g.estate.Location(a)
	if !ok {
		panic(fmt.Errorf("godown: unknown address %d", a))
	}
	size, _ := g.estate.Size(a)
	return loc, size
}

// Remove tombstones a's package and frees a. a must be live.
func (g *Godown) Remove(a Address) error {
	loc, size := g.mustLocate(a)
	err := g.write(loc, buf.Tombstone(size))
	if err != nil {
		return err
	}
	g.estate.Retain(a)
	util.DPrintf(3, "godown: remove %d at block %d\n", a, loc)
	return nil
}

// Replace stores good at a new address and then removes a. On error a is
// left live and the new copy is tombstoned, unless that tombstone cannot be
// written either: then both stay live and the error wraps ErrDuplicate,
// with the new address returned.
func (g *Godown) Replace(a Address, good common.Good) (Address, error) {
	g.mustLocate(a)
	na, err := g.place(good, buf.FlagUpdate)
	if err != nil {
		return 0, err
	}
	err = g.Remove(a)
	if err == nil {
		return na, nil
	}
	if rerr := g.Remove(na); rerr != nil {
		return na, fmt.Errorf("%w: %d and %d: %w", ErrDuplicate, a, na, errors.Join(err, rerr))
	}
	return 0, err
}

// Get returns the good stored at a. a must be live; a torn package at a
// live address means the file is corrupt, and Get panics.
func (g *Godown) Get(a Address) (common.Good, error) {
	loc, size := g.mustLocate(a)
	pkg, err := g.d.ReadAt(buf.BlockPointer(loc), buf.BlockBytes(size))
	if err != nil {
		return nil, err
	}
	integrity, err := buf.Dismantle(pkg)
	if err != nil || !integrity.Consistent() {
		panic(fmt.Errorf("godown: package at address %d is corrupt", a))
	}
	return integrity.Good(), nil
}

// Has reports whether a is live.
func (g *Godown) Has(a Address) bool {
	_, ok := g.estate.Location(a)
	return ok
}

type Stat struct {
	Live     uint64 // live addresses
	Retained uint64 // freed addresses awaiting reuse
	Blocks   uint64 // blocks in use or tombstoned
}

func (g *Godown) Stat() Stat {
	n := g.estate.NumRetained()
	return Stat{
		Live:     g.estate.Len() - n,
		Retained: n,
		Blocks:   g.estate.End(),
	}
}

// TransferChunk advances l by one window of the data file.
//
// Packages are walked in disk order until one does not fit in the window;
// the cursor then moves past the last whole package, so a package cut by the
// window edge is read whole by the next call. The scan is done when a window
// comes back empty, a zero block count (unwritten space) is found, or the
// data ends inside the window.
func (g *Godown) TransferChunk(l *Logistics) error {
	if l.done {
		return nil
	}
	chunk, err := g.d.ReadAt(l.pointer, g.chunkSize)
	if err != nil {
		return err
	}
	n := uint64(len(chunk))
	if n == 0 {
		l.done = true
		return nil
	}

	var counter uint64
	blkno := l.blkno
	for counter+common.HeaderSize <= n {
		label, _ := buf.ReadLabel(chunk[counter:])
		count := uint64(label.BlockCount)
		if count == 0 {
			l.done = true
			break
		}
		if count > common.MaxPackageBlocks {
			util.DPrintf(1, "godown: corrupt header at %d claims %d blocks\n",
				l.pointer+counter, count)
			l.done = true
			break
		}
		pkgLen := label.PackageLen()
		if counter+pkgLen > n {
			break
		}
		pkg := chunk[counter : counter+pkgLen]

		switch l.mode {
		case Uninitialize:
			if label.Flag != buf.FlagDelete {
				integrity, _ := buf.Dismantle(pkg)
				if integrity.Consistent() {
					l.load(Item{Good: integrity.Good()})
				}
			}
		case Initialize:
			a := g.estate.Register(blkno, count)
			if label.Flag == buf.FlagDelete {
				g.estate.Retain(a)
			} else {
				integrity, _ := buf.Dismantle(pkg)
				if integrity.Consistent() {
					l.load(Item{Address: a, Addressed: true, Good: integrity.Good()})
				} else {
					util.DPrintf(1, "godown: torn package at block %d, removing %d\n", blkno, a)
					err := g.Remove(a)
					if err != nil {
						return err
					}
				}
			}
			blkno += count
		}
		util.DPrintf(5, "godown: scanned %v package at %d (%d blocks)\n",
			label.Flag, l.pointer+counter, count)
		counter += pkgLen
	}

	// A short window means the data ended inside it; whatever is left is
	// an incomplete package.
	if n < g.chunkSize {
		l.done = true
	}
	l.pointer += counter
	l.blkno = blkno
	return nil
}

// Sync makes every completed write durable.
func (g *Godown) Sync() error {
	return g.d.Barrier()
}

func (g *Godown) Close() error {
	return g.d.Close()
}

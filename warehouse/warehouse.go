// Package warehouse puts an in-memory Inventory, an on-disk Godown, or both
// behind one API. Items are addressed by Tokens; in both mode every item is
// mirrored and its token carries both addresses.
package warehouse

import (
	"errors"
	"fmt"
	"os"

	"github.com/mit-pdos/go-warehouse/addr"
	"github.com/mit-pdos/go-warehouse/config"
	"github.com/mit-pdos/go-warehouse/godown"
	"github.com/mit-pdos/go-warehouse/util"
)

var ErrEmptySlot = errors.New("warehouse: no item at address")

type Mode int

const (
	ModeGodown Mode = iota
	ModeInventory
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeGodown:
		return config.ModeGodown
	case ModeInventory:
		return config.ModeInventory
	case ModeBoth:
		return config.ModeBoth
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case config.ModeGodown:
		return ModeGodown, nil
	case config.ModeInventory:
		return ModeInventory, nil
	case config.ModeBoth:
		return ModeBoth, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", config.ErrInvalid, s)
}

// SessionItem is one item produced by a session. Token is only set when
// HasToken is, which it is for Initialize sessions.
type SessionItem[S addr.WholeNumber, Item any] struct {
	Token    Token[S]
	HasToken bool
	Item     Item
}

// Options names the backends of a Warehouse. Codec is required with a
// Godown.
type Options[S addr.WholeNumber, Item any] struct {
	Godown    *godown.Godown
	Inventory *Inventory[S, Item]
	Codec     Codec[Item]
}

// Warehouse is not safe for concurrent use, and must not be written to
// while a session is open.
type Warehouse[S addr.WholeNumber, Item any] struct {
	godown    *godown.Godown
	inventory *Inventory[S, Item]
	codec     Codec[Item]
	logistics *godown.Logistics
}

func New[S addr.WholeNumber, Item any](opts Options[S, Item]) *Warehouse[S, Item] {
	if opts.Godown == nil && opts.Inventory == nil {
		panic("warehouse: no backend")
	}
	if opts.Godown != nil && opts.Codec == nil {
		panic("warehouse: godown needs a codec")
	}
	return &Warehouse[S, Item]{
		godown:    opts.Godown,
		inventory: opts.Inventory,
		codec:     opts.Codec,
	}
}

// Open builds the warehouse cfg describes, creating its directory and data
// file as needed. With a godown backend, run Restore before anything else.
func Open[S addr.WholeNumber, Item any](cfg config.Config, codec Codec[Item]) (*Warehouse[S, Item], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	if cfg.Compress && codec != nil {
		codec = Snappy(codec)
	}
	opts := Options[S, Item]{Codec: codec}
	if mode != ModeGodown {
		opts.Inventory = NewInventory[S, Item]()
	}
	if mode != ModeInventory {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, err
		}
		g, err := godown.Open(cfg.Path(), godown.WithChunkSize(cfg.Window()))
		if err != nil {
			return nil, err
		}
		opts.Godown = g
	}
	util.DPrintf(1, "warehouse: open %s in %v mode\n", cfg.Path(), mode)
	return New(opts), nil
}

func (w *Warehouse[S, Item]) Mode() Mode {
	switch {
	case w.godown == nil:
		return ModeInventory
	case w.inventory == nil:
		return ModeGodown
	}
	return ModeBoth
}

func (w *Warehouse[S, Item]) mustGodown() *godown.Godown {
	if w.godown == nil {
		panic("warehouse: no godown")
	}
	return w.godown
}

func (w *Warehouse[S, Item]) mustInventory() *Inventory[S, Item] {
	if w.inventory == nil {
		panic("warehouse: no inventory")
	}
	return w.inventory
}

func (w *Warehouse[S, Item]) pack(item Item) ([]byte, error) {
	good, err := w.codec.Pack(item)
	if err != nil {
		return nil, fmt.Errorf("warehouse: pack: %w", err)
	}
	return good, nil
}

func (w *Warehouse[S, Item]) unpack(good []byte) (Item, error) {
	item, err := w.codec.Unpack(good)
	if err != nil {
		return item, fmt.Errorf("warehouse: unpack: %w", err)
	}
	return item, nil
}

// Add stores item in every backend.
func (w *Warehouse[S, Item]) Add(item Item) (Token[S], error) {
	var da godown.Address
	if w.godown != nil {
		good, err := w.pack(item)
		if err != nil {
			return Token[S]{}, err
		}
		da, err = w.godown.Place(good)
		if err != nil {
			return Token[S]{}, err
		}
	}
	if w.inventory == nil {
		return DiskToken[S](da), nil
	}
	ma := w.inventory.Place(item)
	if w.godown == nil {
		return MemoryToken(ma), nil
	}
	return BothToken(da, ma), nil
}

// Update replaces the item t names. The disk address changes; the memory
// address does not. Every backend t names must be present.
//
// On error t still names the old item, except when the error wraps
// godown.ErrDuplicate: the new item is then stored and the returned token
// names it, while the old disk copy also stays live.
func (w *Warehouse[S, Item]) Update(t Token[S], item Item) (Token[S], error) {
	da, onDisk := t.Disk()
	var derr error
	if onDisk {
		good, err := w.pack(item)
		if err != nil {
			return Token[S]{}, err
		}
		da, derr = w.mustGodown().Replace(da, good)
		if derr != nil && !errors.Is(derr, godown.ErrDuplicate) {
			return Token[S]{}, derr
		}
	}
	ma, inMemory := t.Memory()
	if inMemory {
		w.mustInventory().Replace(ma, item)
	}
	switch {
	case onDisk && inMemory:
		return BothToken(da, ma), derr
	case onDisk:
		return DiskToken[S](da), derr
	}
	return MemoryToken(ma), nil
}

// Remove deletes the item t names from every present backend. The disk
// copy goes first, so a failed write leaves the item in both.
func (w *Warehouse[S, Item]) Remove(t Token[S]) error {
	if da, ok := t.Disk(); ok && w.godown != nil {
		if err := w.godown.Remove(da); err != nil {
			return err
		}
	}
	if ma, ok := t.Memory(); ok && w.inventory != nil {
		w.inventory.Remove(ma)
	}
	return nil
}

// Get returns the item t names, from memory when the warehouse has it there.
func (w *Warehouse[S, Item]) Get(t Token[S]) (Item, error) {
	var zero Item
	if ma, ok := t.Memory(); ok && w.inventory != nil {
		item, ok := w.inventory.Get(ma)
		if !ok {
			return zero, fmt.Errorf("%w %d", ErrEmptySlot, ma)
		}
		return item, nil
	}
	da, ok := t.Disk()
	if !ok || w.godown == nil {
		return zero, fmt.Errorf("%w: %v has no reachable backend", ErrEmptySlot, t)
	}
	good, err := w.godown.Get(da)
	if err != nil {
		return zero, err
	}
	return w.unpack(good)
}

// Has reports whether Get would find an item for t.
func (w *Warehouse[S, Item]) Has(t Token[S]) bool {
	if ma, ok := t.Memory(); ok && w.inventory != nil {
		return w.inventory.Has(ma)
	}
	da, ok := t.Disk()
	return ok && w.godown != nil && w.godown.Has(da)
}

// StartSession opens a scan of the godown.
func (w *Warehouse[S, Item]) StartSession(mode godown.Mode) {
	if w.godown == nil {
		panic("warehouse: session needs a godown")
	}
	if w.logistics != nil {
		panic("warehouse: session already open")
	}
	w.logistics = godown.NewLogistics(mode)
	util.DPrintf(1, "warehouse: start %v session\n", mode)
}

func (w *Warehouse[S, Item]) InSession() bool {
	return w.logistics != nil
}

// SessionItems returns the next batch of items. Windows that yield nothing
// are skipped, so an empty batch means the scan is finished.
//
// In an Initialize session on a warehouse with an inventory, every item is
// also placed in the inventory and its token names both addresses.
//
// If an item in the batch cannot be unpacked, the whole batch is dropped
// and nothing of it reaches the inventory. In an Initialize session its
// goods stay registered in the godown under addresses no caller has seen,
// so the session should be abandoned.
func (w *Warehouse[S, Item]) SessionItems() ([]SessionItem[S, Item], error) {
	l := w.logistics
	if l == nil {
		panic("warehouse: no session")
	}
	var batch []godown.Item
	for len(batch) == 0 && !l.Done() {
		if err := w.godown.TransferChunk(l); err != nil {
			return nil, err
		}
		batch = l.Unload()
	}

	items := make([]SessionItem[S, Item], 0, len(batch))
	for _, gi := range batch {
		item, err := w.unpack(gi.Good)
		if err != nil {
			return nil, err
		}
		items = append(items, SessionItem[S, Item]{Item: item})
	}
	for i, gi := range batch {
		si := &items[i]
		if gi.Addressed {
			si.HasToken = true
			if w.inventory != nil {
				si.Token = BothToken(gi.Address, w.inventory.Place(si.Item))
			} else {
				si.Token = DiskToken[S](gi.Address)
			}
		}
	}
	return items, nil
}

func (w *Warehouse[S, Item]) StopSession() {
	if w.logistics == nil {
		panic("warehouse: no session")
	}
	util.DPrintf(1, "warehouse: stop session at byte %d\n", w.logistics.Pointer())
	w.logistics = nil
}

// Restore replays the godown into a freshly opened warehouse, calling fn
// with every recovered item. It is a no-op without a godown. An error from
// fn stops the replay, leaving the allocator partly rebuilt.
func (w *Warehouse[S, Item]) Restore(fn func(SessionItem[S, Item]) error) error {
	if w.godown == nil {
		return nil
	}
	w.StartSession(godown.Initialize)
	defer w.StopSession()
	for {
		items, err := w.SessionItems()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		if fn == nil {
			continue
		}
		for _, si := range items {
			if err := fn(si); err != nil {
				return err
			}
		}
	}
}

// Stat reports on the godown; it is zero without one.
func (w *Warehouse[S, Item]) Stat() godown.Stat {
	if w.godown == nil {
		return godown.Stat{}
	}
	return w.godown.Stat()
}

// Len reports the number of items in the inventory.
func (w *Warehouse[S, Item]) Len() uint64 {
	if w.inventory == nil {
		return 0
	}
	return w.inventory.Len()
}

func (w *Warehouse[S, Item]) Sync() error {
	if w.godown == nil {
		return nil
	}
	return w.godown.Sync()
}

func (w *Warehouse[S, Item]) Close() error {
	if w.godown == nil {
		return nil
	}
	return w.godown.Close()
}

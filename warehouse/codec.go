package warehouse

import (
	"fmt"

	"github.com/golang/snappy"
)

// Codec converts items to and from the goods a Godown stores.
type Codec[Item any] interface {
	Pack(item Item) ([]byte, error)
	Unpack(good []byte) (Item, error)
}

// Bytes stores byte slices as they are.
type Bytes struct{}

func (Bytes) Pack(item []byte) ([]byte, error) {
	return item, nil
}

func (Bytes) Unpack(good []byte) ([]byte, error) {
	return good, nil
}

type snappyCodec[Item any] struct {
	inner Codec[Item]
}

// Snappy compresses whatever inner produces. Compressed goods are still
// subject to the godown size limit, so a large item may fit only compressed.
func Snappy[Item any](inner Codec[Item]) Codec[Item] {
	return snappyCodec[Item]{inner: inner}
}

func (c snappyCodec[Item]) Pack(item Item) ([]byte, error) {
	b, err := c.inner.Pack(item)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, b), nil
}

func (c snappyCodec[Item]) Unpack(good []byte) (Item, error) {
	b, err := snappy.Decode(nil, good)
	if err != nil {
		var zero Item
		return zero, fmt.Errorf("snappy: %w", err)
	}
	return c.inner.Unpack(b)
}

package warehouse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesCodec(t *testing.T) {
	good, err := Bytes{}.Pack([]byte("abc"))
	require.NoError(t, err)
	item, err := Bytes{}.Unpack(good)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), item)
}

func TestSnappyCodec(t *testing.T) {
	c := Snappy[[]byte](Bytes{})
	item := bytes.Repeat([]byte("warehouse"), 1000)
	good, err := c.Pack(item)
	require.NoError(t, err)
	assert.Less(t, len(good), len(item))

	got, err := c.Unpack(good)
	require.NoError(t, err)
	assert.Equal(t, item, got)

	_, err = c.Unpack([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

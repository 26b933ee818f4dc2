package blockstream

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, c *Chunker) [][]byte {
	var blocks [][]byte
	for {
		b, err := c.Next()
		if err == io.EOF {
			return blocks
		}
		require.NoError(t, err)
		blocks = append(blocks, append([]byte(nil), b...))
	}
}

func TestChunkerExactBlocks(t *testing.T) {
	c := NewChunker(bytes.NewReader([]byte("abcdefgh")), 4)
	blocks := readAll(t, c)
	require.Equal(t, [][]byte{[]byte("abcd"), []byte("efgh")}, blocks)
	require.Equal(t, 2, c.Count())
	require.Equal(t, 0, c.Padded())

	_, err := c.Next()
	require.Equal(t, io.EOF, err)
}

func TestChunkerPadsEveryTrailingByte(t *testing.T) {
	// the reused buffer holds "wxyz" when the short read lands
	c := NewChunker(bytes.NewReader([]byte("wxyzA")), 4)
	blocks := readAll(t, c)
	require.Equal(t, [][]byte{[]byte("wxyz"), []byte("A\x00\x00\x00")}, blocks)
	require.Equal(t, 3, c.Padded())

	c = NewChunker(bytes.NewReader([]byte("abcdefg")), 4)
	blocks = readAll(t, c)
	require.Equal(t, []byte("efg\x00"), blocks[1])
	require.Equal(t, 1, c.Padded())
}

func TestChunkerEmpty(t *testing.T) {
	c := NewChunker(bytes.NewReader(nil), 4)
	require.Empty(t, readAll(t, c))
	require.Equal(t, 0, c.Count())
}

func TestChunkerShortReads(t *testing.T) {
	// a reader returning one byte at a time must still yield full blocks
	c := NewChunker(iotest.OneByteReader(bytes.NewReader([]byte("abcdefghij"))), 4)
	blocks := readAll(t, c)
	require.Equal(t, [][]byte{[]byte("abcd"), []byte("efgh"), []byte("ij\x00\x00")}, blocks)
}

func TestChunkerReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader([]byte("abcd")), iotest.ErrReader(boom))
	c := NewChunker(r, 4)

	b, err := c.Next()
	require.NoError(t, err)
	require.Equal(t, []byte("abcd"), b)

	_, err = c.Next()
	require.Equal(t, boom, errors.Cause(err))

	_, err = c.Next()
	require.Equal(t, io.EOF, err)
}

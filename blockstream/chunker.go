package blockstream

import (
	"io"

	"github.com/pkg/errors"
)

// Chunker splits a stream into blocks of exactly size bytes. A short final
// read is padded with zeros up to size.
type Chunker struct {
	r      io.Reader
	size   int
	buf    []byte
	count  int
	padlen int
	done   bool
}

func NewChunker(r io.Reader, size int) *Chunker {
	return &Chunker{
		r:    r,
		size: size,
		buf:  make([]byte, size),
	}
}

// Next returns the next block, or io.EOF once the stream is exhausted. The
// block is only valid until the following call.
func (c *Chunker) Next() ([]byte, error) {
	if c.done {
		return nil, io.EOF
	}
	n, err := io.ReadFull(c.r, c.buf)
	switch err {
	case nil:
	case io.EOF:
		c.done = true
		return nil, io.EOF
	case io.ErrUnexpectedEOF:
		c.done = true
		c.padlen = c.size - n
		copy(c.buf[n:], createPadding(c.padlen))
	default:
		c.done = true
		return nil, errors.Wrapf(err, "read block %d", c.count)
	}
	c.count++
	return c.buf, nil
}

// Count is the number of blocks returned so far.
func (c *Chunker) Count() int {
	return c.count
}

// Padded is the number of zero bytes appended to the last block.
func (c *Chunker) Padded() int {
	return c.padlen
}

func createPadding(padlen int) []byte {
	return make([]byte, padlen)
}

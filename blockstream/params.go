// Package blockstream runs byte streams through a block FEC codec: fixed-size
// chunking with zero padding, per-block encode or correct, and optional
// corruption of freshly encoded blocks.
package blockstream

import (
	"github.com/pkg/errors"
)

const (
	DefaultDataSize    = 4
	DefaultEncodedSize = 8
)

var ErrInvalidParams = errors.New("invalid block parameters")

// Params are the data block size D and encoded block size E. They are not
// stored in the stream, so an encoder and decoder must agree on them.
type Params struct {
	DataSize    int
	EncodedSize int
}

func DefaultParams() Params {
	return Params{DataSize: DefaultDataSize, EncodedSize: DefaultEncodedSize}
}

func (p Params) Validate() error {
	if p.DataSize < 1 || p.EncodedSize <= p.DataSize || p.EncodedSize > 256 {
		return errors.Wrapf(ErrInvalidParams, "data %d, encoded %d", p.DataSize, p.EncodedSize)
	}
	return nil
}

// ParitySize is E-D.
func (p Params) ParitySize() int {
	return p.EncodedSize - p.DataSize
}

// EncodedLen is the encoded length of n clear bytes.
func (p Params) EncodedLen(n int64) int64 {
	return divCeil(n, int64(p.DataSize)) * int64(p.EncodedSize)
}

// DecodedLen is the decoded length of n encoded bytes. A trailing partial
// block counts as a full one since it is zero-padded before decoding.
func (p Params) DecodedLen(n int64) int64 {
	return divCeil(n, int64(p.EncodedSize)) * int64(p.DataSize)
}

func divCeil(a, b int64) int64 {
	return (a + b - 1) / b
}

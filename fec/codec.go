// Package fec adapts third-party Reed-Solomon implementations to a
// byte-oriented block codec: D data bytes in, E encoded bytes out, and
// correction of up to (E-D)/2 corrupted bytes per encoded block.
package fec

import (
	"github.com/pkg/errors"
)

var (
	// ErrUncorrectable is returned by Correct when a block carries more
	// corrupted bytes than the code can repair.
	ErrUncorrectable = errors.New("fec: block is uncorrectable")
	// ErrBlockSize is returned when a block of the wrong length is passed in.
	ErrBlockSize = errors.New("fec: wrong block size")
)

const (
	Infectious  = "infectious"
	ReedSolomon = "reedsolomon"

	// MaxEncodedSize is the GF(2^8) code length limit.
	MaxEncodedSize = 256
)

// Codec is a systematic block code over bytes. Encode output starts with
// the data bytes and ends with E-D parity bytes.
type Codec interface {
	Encode(data []byte) ([]byte, error)
	Correct(block []byte) ([]byte, error)
	DataSize() int
	EncodedSize() int
}

// New returns the codec registered under name.
func New(name string, dataSize, encodedSize int) (Codec, error) {
	if err := Validate(name, dataSize, encodedSize); err != nil {
		return nil, err
	}
	if name == ReedSolomon {
		return NewRSCodec(dataSize, encodedSize)
	}
	return NewInfectiousCodec(dataSize, encodedSize)
}

// Validate reports whether New would accept name and the block sizes.
func Validate(name string, dataSize, encodedSize int) error {
	if err := checkParams(dataSize, encodedSize); err != nil {
		return err
	}
	switch name {
	case Infectious, "":
		return nil
	case ReedSolomon:
		return checkSearch(dataSize, encodedSize)
	default:
		return errors.Errorf("unknown codec %q, try %q or %q", name, Infectious, ReedSolomon)
	}
}

// MaxCorrectable is the number of corrupted bytes per block c always repairs.
func MaxCorrectable(c Codec) int {
	return (c.EncodedSize() - c.DataSize()) / 2
}

func checkParams(dataSize, encodedSize int) error {
	if dataSize < 1 {
		return errors.Errorf("data block size must be positive, got %d", dataSize)
	}
	if encodedSize <= dataSize {
		return errors.Errorf("encoded block size %d must exceed data block size %d", encodedSize, dataSize)
	}
	if encodedSize > MaxEncodedSize {
		return errors.Errorf("encoded block size %d exceeds %d", encodedSize, MaxEncodedSize)
	}
	return nil
}

func checkLen(b []byte, want int) error {
	if len(b) != want {
		return errors.Wrapf(ErrBlockSize, "got %d bytes, want %d", len(b), want)
	}
	return nil
}

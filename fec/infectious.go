package fec

import (
	"github.com/pkg/errors"
	"github.com/vivint/infectious"
)

// InfectiousCodec treats every byte of a block as one share of an
// infectious FEC and relies on its Berlekamp-Welch decoder for correction.
type InfectiousCodec struct {
	dataSize    int
	encodedSize int
	fec         *infectious.FEC
}

func NewInfectiousCodec(dataSize, encodedSize int) (*InfectiousCodec, error) {
	if err := checkParams(dataSize, encodedSize); err != nil {
		return nil, err
	}
	f, err := infectious.NewFEC(dataSize, encodedSize)
	if err != nil {
		return nil, errors.Wrap(err, "infectious.NewFEC")
	}
	return &InfectiousCodec{
		dataSize:    dataSize,
		encodedSize: encodedSize,
		fec:         f,
	}, nil
}

func (c *InfectiousCodec) DataSize() int    { return c.dataSize }
func (c *InfectiousCodec) EncodedSize() int { return c.encodedSize }

func (c *InfectiousCodec) Encode(data []byte) ([]byte, error) {
	if err := checkLen(data, c.dataSize); err != nil {
		return nil, err
	}
	out := make([]byte, c.encodedSize)
	// share data is reused between callbacks, copy it out immediately
	err := c.fec.Encode(data, func(s infectious.Share) {
		out[s.Number] = s.Data[0]
	})
	if err != nil {
		return nil, errors.Wrap(err, "infectious encode")
	}
	return out, nil
}

func (c *InfectiousCodec) Correct(block []byte) (data []byte, err error) {
	if err := checkLen(block, c.encodedSize); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, ErrUncorrectable
		}
	}()

	shares := make([]infectious.Share, c.encodedSize)
	for i := range shares {
		shares[i].Number = i
		shares[i].Data = []byte{block[i]}
	}
	res, err := c.fec.Decode(nil, shares)
	if err != nil {
		return nil, ErrUncorrectable
	}

	// Berlekamp-Welch may settle on a codeword farther away than the
	// guaranteed radius when the block is badly damaged.
	codeword, err := c.Encode(res)
	if err != nil {
		return nil, err
	}
	if distance(codeword, block) > (c.encodedSize-c.dataSize)/2 {
		return nil, ErrUncorrectable
	}
	return res, nil
}

func distance(a, b []byte) int {
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

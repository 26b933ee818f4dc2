package fec

import (
	"github.com/klauspost/reedsolomon"
	"github.com/pkg/errors"
)

// MaxSearch bounds the erasure patterns RSCodec tries per block and
// MaxSearchWork bounds patterns times D^3, the matrix inversion each
// pattern's Reconstruct may need. Parameters above either are rejected.
const (
	MaxSearch     = 4096
	MaxSearchWork = 1 << 24
)

// RSCodec maps every byte of a block onto a 1-byte shard of a klauspost
// Reed-Solomon encoder. The encoder only repairs erasures, so Correct
// searches erasure patterns of growing weight until the shards verify.
type RSCodec struct {
	dataCount   int
	parityCount int
	encoder     reedsolomon.Encoder
}

func NewRSCodec(dataSize, encodedSize int) (*RSCodec, error) {
	if err := checkParams(dataSize, encodedSize); err != nil {
		return nil, err
	}
	if err := checkSearch(dataSize, encodedSize); err != nil {
		return nil, err
	}
	enc, err := reedsolomon.New(dataSize, encodedSize-dataSize)
	if err != nil {
		return nil, errors.Wrap(err, "reedsolomon.New")
	}
	return &RSCodec{
		dataCount:   dataSize,
		parityCount: encodedSize - dataSize,
		encoder:     enc,
	}, nil
}

func (r *RSCodec) DataSize() int    { return r.dataCount }
func (r *RSCodec) EncodedSize() int { return r.dataCount + r.parityCount }

func (r *RSCodec) Encode(data []byte) ([]byte, error) {
	if err := checkLen(data, r.dataCount); err != nil {
		return nil, err
	}
	out := make([]byte, r.EncodedSize())
	copy(out, data)
	if err := r.encoder.Encode(split(out)); err != nil {
		return nil, errors.Wrap(err, "reedsolomon encode")
	}
	return out, nil
}

// Correct returns the data of the unique codeword within (E-D)/2 bytes of
// block. A code of distance E-D+1 has at most one such codeword, so the
// first erasure pattern that reconstructs into a consistent codeword wins.
func (r *RSCodec) Correct(block []byte) ([]byte, error) {
	if err := checkLen(block, r.EncodedSize()); err != nil {
		return nil, err
	}
	if ok, err := r.encoder.Verify(split(block)); err == nil && ok {
		out := make([]byte, r.dataCount)
		copy(out, block)
		return out, nil
	}

	var result []byte
	buf := make([]byte, len(block))
	for e := 1; e <= r.parityCount/2 && result == nil; e++ {
		combinations(len(block), e, func(erased []int) bool {
			copy(buf, block)
			shards := split(buf)
			for _, i := range erased {
				shards[i] = nil
			}
			if err := r.encoder.Reconstruct(shards); err != nil {
				return true
			}
			if ok, err := r.encoder.Verify(shards); err != nil || !ok {
				return true
			}
			result = make([]byte, r.dataCount)
			for i := range result {
				result[i] = shards[i][0]
			}
			return false
		})
	}
	if result == nil {
		return nil, ErrUncorrectable
	}
	return result, nil
}

// SearchSize is the number of erasure patterns Correct tries on an
// uncorrectable block, saturating just above MaxSearch.
func SearchSize(dataSize, encodedSize int) int {
	t := (encodedSize - dataSize) / 2
	total, c := 0, 1
	for e := 0; e <= t; e++ {
		total += c
		if total > MaxSearch {
			return MaxSearch + 1
		}
		// C(n, e+1) from C(n, e); c <= MaxSearch keeps this from overflowing
		c = c * (encodedSize - e) / (e + 1)
	}
	return total
}

func checkSearch(dataSize, encodedSize int) error {
	n := SearchSize(dataSize, encodedSize)
	d := int64(dataSize)
	if n > MaxSearch || int64(n)*d*d*d > MaxSearchWork {
		return errors.Errorf("%s codec with data %d, encoded %d needs too many correction attempts per block",
			ReedSolomon, dataSize, encodedSize)
	}
	return nil
}

// split returns one 1-byte shard per byte of b, aliasing b.
func split(b []byte) [][]byte {
	shards := make([][]byte, len(b))
	for i := range b {
		shards[i] = b[i : i+1 : i+1]
	}
	return shards
}

// combinations calls fn with every k-subset of [0, n) in lexicographic
// order until fn returns false.
func combinations(n, k int, fn func([]int) bool) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

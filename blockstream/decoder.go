package blockstream

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/tjohn327/clrfec/fec"
	"github.com/tjohn327/clrfec/xlog"
)

// BlockObserver is told the outcome of every decoded block. offset is the
// position of the block in the encoded stream.
type BlockObserver func(index int, offset int64, status BlockStatus) error

type DecoderOption func(*Decoder)

func WithObserver(o BlockObserver) DecoderOption {
	return func(d *Decoder) {
		d.observer = o
	}
}

// Decoder reverses Encoder. A block the codec cannot repair is replaced by
// DataSize zero bytes and decoding carries on: corrupted input never makes
// Decode fail, it only shows up in Stats.Fallback.
type Decoder struct {
	codec    fec.Codec
	observer BlockObserver
}

func NewDecoder(codec fec.Codec, opts ...DecoderOption) *Decoder {
	d := &Decoder{codec: codec}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads r in blocks of EncodedSize bytes, zero-padding a short final
// block, and writes DataSize bytes per block to w. Only I/O and codec usage
// errors abort the run.
func (d *Decoder) Decode(r io.Reader, w io.Writer) (*Stats, error) {
	chunker := NewChunker(r, d.codec.EncodedSize())
	out := newCountingWriter(w)
	stats := &Stats{}

	err := d.run(chunker, out, stats)

	stats.Blocks = chunker.Count()
	stats.Padded = chunker.Padded()
	stats.BytesIn = int64(stats.Blocks*d.codec.EncodedSize() - stats.Padded)
	stats.BytesOut = out.n
	stats.Digest = out.digest.Sum64()
	if err != nil {
		return stats, err
	}
	xlog.Logger.Debugf("decoded %s", stats)
	return stats, nil
}

func (d *Decoder) run(chunker *Chunker, w io.Writer, stats *Stats) error {
	fallback := make([]byte, d.codec.DataSize())
	for {
		block, err := chunker.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		index := chunker.Count() - 1

		data, status, err := d.correct(block)
		if err != nil {
			return errors.Wrapf(err, "correct block %d", index)
		}
		if status == Fallback {
			data = fallback
		}
		stats.record(status)
		if d.observer != nil {
			offset := int64(index) * int64(d.codec.EncodedSize())
			if err := d.observer(index, offset, status); err != nil {
				return errors.Wrapf(err, "observe block %d", index)
			}
		}
		if _, err := w.Write(data); err != nil {
			return errors.Wrapf(err, "write block %d", index)
		}
	}
}

func (d *Decoder) correct(block []byte) ([]byte, BlockStatus, error) {
	data, err := d.codec.Correct(block)
	if errors.Cause(err) == fec.ErrUncorrectable {
		return nil, Fallback, nil
	}
	if err != nil {
		return nil, Fallback, err
	}
	codeword, err := d.codec.Encode(data)
	if err != nil {
		return nil, Fallback, err
	}
	if bytes.Equal(codeword, block) {
		return data, Clean, nil
	}
	return data, Corrected, nil
}

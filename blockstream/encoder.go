package blockstream

import (
	"io"

	"github.com/pkg/errors"
	"github.com/tjohn327/clrfec/fec"
	"github.com/tjohn327/clrfec/xlog"
)

type EncoderOption func(*Encoder)

// WithCorruptor damages every encoded block before it is written.
func WithCorruptor(c *Corruptor) EncoderOption {
	return func(e *Encoder) {
		e.corruptor = c
	}
}

// Encoder turns a clear stream into a stream of encoded blocks.
type Encoder struct {
	codec     fec.Codec
	corruptor *Corruptor
}

func NewEncoder(codec fec.Codec, opts ...EncoderOption) *Encoder {
	e := &Encoder{codec: codec}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode reads r to the end in blocks of DataSize bytes and writes one
// EncodedSize block per input block to w. The first error aborts the run;
// the returned stats cover the blocks handled until then.
func (e *Encoder) Encode(r io.Reader, w io.Writer) (*Stats, error) {
	chunker := NewChunker(r, e.codec.DataSize())
	out := newCountingWriter(w)
	stats := &Stats{}

	err := e.run(chunker, out, stats)

	stats.Blocks = chunker.Count()
	stats.Padded = chunker.Padded()
	stats.BytesIn = int64(stats.Blocks*e.codec.DataSize() - stats.Padded)
	stats.BytesOut = out.n
	stats.Digest = out.digest.Sum64()
	if err != nil {
		return stats, err
	}
	xlog.Logger.Debugf("encoded %s", stats)
	return stats, nil
}

func (e *Encoder) run(chunker *Chunker, w io.Writer, stats *Stats) error {
	for {
		block, err := chunker.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		index := chunker.Count() - 1

		encoded, err := e.codec.Encode(block)
		if err != nil {
			return errors.Wrapf(err, "encode block %d", index)
		}
		if e.corruptor != nil {
			e.corruptor.Corrupt(encoded)
			stats.Corrupted++
		}
		if _, err := w.Write(encoded); err != nil {
			return errors.Wrapf(err, "write block %d", index)
		}
	}
}

package blockstream

import (
	"fmt"
	"hash"
	"io"

	"github.com/cespare/xxhash"
	"github.com/dustin/go-humanize"
)

// BlockStatus is the outcome of decoding one block.
type BlockStatus int

const (
	Clean BlockStatus = iota
	Corrected
	Fallback
)

func (s BlockStatus) String() string {
	switch s {
	case Clean:
		return "clean"
	case Corrected:
		return "corrected"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Stats summarises one pipeline run. Digest is the xxhash64 of the bytes
// written.
type Stats struct {
	Blocks    int
	BytesIn   int64
	BytesOut  int64
	Padded    int
	Clean     int
	Corrected int
	Fallback  int
	Corrupted int
	Digest    uint64
}

func (s *Stats) record(status BlockStatus) {
	switch status {
	case Clean:
		s.Clean++
	case Corrected:
		s.Corrected++
	case Fallback:
		s.Fallback++
	}
}

// FallbackRatio is the share of blocks replaced by zeros.
func (s *Stats) FallbackRatio() float64 {
	if s.Blocks == 0 {
		return 0
	}
	return float64(s.Fallback) / float64(s.Blocks)
}

func (s *Stats) String() string {
	return fmt.Sprintf("blocks=%d in=%s out=%s padded=%d clean=%d corrected=%d fallback=%d corrupted=%d digest=%016x",
		s.Blocks, humanize.IBytes(uint64(s.BytesIn)), humanize.IBytes(uint64(s.BytesOut)),
		s.Padded, s.Clean, s.Corrected, s.Fallback, s.Corrupted, s.Digest)
}

// countingWriter tracks what reaches the underlying writer.
type countingWriter struct {
	w      io.Writer
	digest hash.Hash64
	n      int64
}

func newCountingWriter(w io.Writer) *countingWriter {
	return &countingWriter{w: w, digest: xxhash.New()}
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.digest.Write(p[:n])
	return n, err
}

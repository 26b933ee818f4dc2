package main

import (
	"bufio"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/tjohn327/clrfec/blockstream"
	"github.com/tjohn327/clrfec/fec"
	"github.com/tjohn327/clrfec/xlog"
)

type pipeline func(r io.Reader, w io.Writer) (*blockstream.Stats, error)

func RunEncode(cfg *Config, pathIn, pathOut string) error {
	codec, err := newCodec(cfg)
	if err != nil {
		return err
	}
	return transcode(cfg, "encode", pathIn, pathOut, blockstream.NewEncoder(codec).Encode)
}

// RunErrcode encodes like RunEncode and then damages every block to
// produce test input for RunDecode.
func RunErrcode(cfg *Config, pathIn, pathOut string) error {
	codec, err := newCodec(cfg)
	if err != nil {
		return err
	}
	var src rand.Source
	if cfg.Seed != 0 {
		src = rand.NewSource(cfg.Seed)
	}
	corruptor := blockstream.NewCorruptor(src, cfg.CorruptWidth())
	enc := blockstream.NewEncoder(codec, blockstream.WithCorruptor(corruptor))
	return transcode(cfg, "errcode", pathIn, pathOut, enc.Encode)
}

// RunDecode never fails because of corrupted blocks; those come out as
// zeros. Set cfg.Report to find out which ones.
func RunDecode(cfg *Config, pathIn, pathOut string) (err error) {
	codec, err := newCodec(cfg)
	if err != nil {
		return err
	}
	var opts []blockstream.DecoderOption
	if cfg.Report != "" {
		report, rerr := createReport(cfg.Report)
		if rerr != nil {
			return rerr
		}
		defer func() {
			if cerr := report.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		opts = append(opts, blockstream.WithObserver(report.Observe))
	}
	return transcode(cfg, "decode", pathIn, pathOut, blockstream.NewDecoder(codec, opts...).Decode)
}

func newCodec(cfg *Config) (fec.Codec, error) {
	codec, err := fec.New(cfg.Codec, cfg.DataBlockSize, cfg.EncodedBlockSize)
	if err != nil {
		return nil, errors.Wrap(err, "create codec")
	}
	return codec, nil
}

// transcode owns both files for the duration of run and closes them on
// every path. Output is flushed even when run fails, so a failed run
// leaves every block written before the failure on disk.
func transcode(cfg *Config, op, pathIn, pathOut string, run pipeline) (err error) {
	fileIn, err := os.Open(pathIn)
	if err != nil {
		return errors.Wrapf(err, "open input %s", pathIn)
	}
	defer fileIn.Close()

	fileOut, err := os.Create(pathOut)
	if err != nil {
		return errors.Wrapf(err, "create output %s", pathOut)
	}
	bufSize := int(cfg.BufferSize.Bytes)
	bufOut := bufio.NewWriterSize(fileOut, bufSize)
	defer func() {
		ferr := bufOut.Flush()
		cerr := fileOut.Close()
		if err != nil {
			return
		}
		if ferr != nil {
			err = errors.Wrapf(ferr, "flush output %s", pathOut)
		} else if cerr != nil {
			err = errors.Wrapf(cerr, "close output %s", pathOut)
		}
	}()

	stats, err := run(bufio.NewReaderSize(fileIn, bufSize), bufOut)
	if err != nil {
		return errors.Wrapf(err, "%s %s", op, pathIn)
	}
	xlog.Logger.Debugw(op+" done", "in", pathIn, "out", pathOut, "stats", stats.String())
	return nil
}

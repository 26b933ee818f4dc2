package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/tjohn327/clrfec/blockstream"
)

// blockReport writes one "index,offset,status" line per decoded block.
type blockReport struct {
	filename string
	file     *os.File
	writer   *bufio.Writer
}

func createReport(filename string) (*blockReport, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "create report %s", filename)
	}
	return &blockReport{
		filename: filename,
		file:     file,
		writer:   bufio.NewWriter(file),
	}, nil
}

func (r *blockReport) Observe(index int, offset int64, status blockstream.BlockStatus) error {
	_, err := fmt.Fprintf(r.writer, "%d,%d,%s\n", index, offset, status)
	return err
}

func (r *blockReport) Close() error {
	ferr := r.writer.Flush()
	cerr := r.file.Close()
	if ferr != nil {
		return errors.Wrapf(ferr, "flush report %s", r.filename)
	}
	if cerr != nil {
		return errors.Wrapf(cerr, "close report %s", r.filename)
	}
	return nil
}

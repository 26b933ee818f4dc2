package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/tjohn327/clrfec/blockstream"
	"github.com/tjohn327/clrfec/fec"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	DataBlockSize    int           `toml:"data_block_size"`
	EncodedBlockSize int           `toml:"encoded_block_size"`
	Codec            string        `toml:"codec"`
	CorruptBytes     int           `toml:"corrupt_bytes"` // -1 means the parity size
	Seed             int64         `toml:"seed"`
	BufferSize       size          `toml:"buffer_size"`
	LogLevel         zapcore.Level `toml:"log_level"`
	LogOutput        []string      `toml:"log_output"`
	Report           string        `toml:"report"`
}

// size accepts "64KiB", "1MB" or a plain byte count.
type size struct {
	Bytes uint64
}

func (s *size) UnmarshalText(text []byte) error {
	var err error
	s.Bytes, err = humanize.ParseBytes(string(text))
	return err
}

func DefaultConfig() Config {
	return Config{
		DataBlockSize:    blockstream.DefaultDataSize,
		EncodedBlockSize: blockstream.DefaultEncodedSize,
		Codec:            fec.Infectious,
		CorruptBytes:     -1,
		BufferSize:       size{Bytes: 64 << 10},
		LogLevel:         zapcore.InfoLevel,
		LogOutput:        []string{"stderr"},
	}
}

// LoadConfig reads path over the defaults. A missing path leaves the
// defaults untouched.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

func (c *Config) Params() blockstream.Params {
	return blockstream.Params{DataSize: c.DataBlockSize, EncodedSize: c.EncodedBlockSize}
}

// CorruptWidth is the errcode prefix length.
func (c *Config) CorruptWidth() int {
	if c.CorruptBytes < 0 {
		return c.Params().ParitySize()
	}
	return c.CorruptBytes
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if err := fec.Validate(c.Codec, c.DataBlockSize, c.EncodedBlockSize); err != nil {
		return err
	}
	if c.CorruptWidth() > c.EncodedBlockSize {
		return errors.Errorf("corrupt_bytes %d exceeds encoded block size %d", c.CorruptBytes, c.EncodedBlockSize)
	}
	if c.BufferSize.Bytes == 0 {
		return errors.New("buffer_size must be positive")
	}
	if len(c.LogOutput) == 0 {
		return errors.New("log_output is empty")
	}
	return nil
}

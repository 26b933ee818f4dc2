package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tjohn327/clrfec/fec"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 4, cfg.DataBlockSize)
	require.Equal(t, 8, cfg.EncodedBlockSize)
	require.Equal(t, 4, cfg.CorruptWidth())
	require.Equal(t, fec.Infectious, cfg.Codec)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.toml", []byte(`
data_block_size    = 12
encoded_block_size = 18
codec              = "reedsolomon"
corrupt_bytes      = 3
seed               = 42
buffer_size        = "1MiB"
log_level          = "debug"
log_output         = ["stdout"]
report             = "blocks.csv"
`))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 12, cfg.DataBlockSize)
	require.Equal(t, 18, cfg.EncodedBlockSize)
	require.Equal(t, fec.ReedSolomon, cfg.Codec)
	require.Equal(t, 3, cfg.CorruptWidth())
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, uint64(1<<20), cfg.BufferSize.Bytes)
	require.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	require.Equal(t, []string{"stdout"}, cfg.LogOutput)
	require.Equal(t, "blocks.csv", cfg.Report)
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"params": func(c *Config) { c.EncodedBlockSize = c.DataBlockSize },
		"codec":  func(c *Config) { c.Codec = "lt" },
		"search": func(c *Config) {
			c.Codec = fec.ReedSolomon
			c.DataBlockSize, c.EncodedBlockSize = 16, 32
		},
		"corrupt": func(c *Config) { c.CorruptBytes = 9 },
		"buffer":  func(c *Config) { c.BufferSize.Bytes = 0 },
		"log":     func(c *Config) { c.LogOutput = nil },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("/nonexistent/clrfec.toml")
	require.Error(t, err)

	path := writeFile(t, t.TempDir(), "c.toml", []byte(`buffer_size = "lots"`))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tjohn327/clrfec/xlog"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
)

const usage = "Invalid number of args! Try: clrfec <op> <file in> <file out>"

var initLogging = func(cfg *Config) error {
	return xlog.InitLog(cfg.LogOutput, cfg.LogLevel)
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		xlog.Logger.Errorf("%+v", err)
		fmt.Fprintln(os.Stderr, err)
		xlog.Sync()
		os.Exit(1)
	}
	xlog.Sync()
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "clrfec",
		Usage:     "protect files with Reed-Solomon forward error correction",
		ArgsUsage: "<encode|decode|errcode> <file in> <file out>",
		Writer:    out,
		// "help" is an op like any other and must reach run
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "write per-block decode status as CSV to this file",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed for errcode corruption, 0 draws a fresh one",
			},
		},
		Action: run,
	}
}

// run mirrors the original tool: usage problems are reported on stdout and
// still exit 0, only pipeline failures are errors.
func run(c *cli.Context) error {
	out := c.App.Writer
	if c.NArg() != 3 {
		fmt.Fprintln(out, usage)
		return nil
	}
	op, pathIn, pathOut := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)

	var runOp func(*Config, string, string) error
	switch op {
	case "encode":
		runOp = RunEncode
	case "decode":
		runOp = RunDecode
	case "errcode":
		runOp = RunErrcode
	default:
		fmt.Fprintf(out, "%s is not a valid op, try 'encode' or 'decode' instead\n", op)
		return nil
	}

	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	if err := initLogging(&cfg); err != nil {
		return errors.Wrap(err, "init log")
	}
	xlog.Logger.Debugw("start", "op", op, "codec", cfg.Codec,
		"data_block_size", cfg.DataBlockSize, "encoded_block_size", cfg.EncodedBlockSize)
	return runOp(&cfg, pathIn, pathOut)
}

func configFromContext(c *cli.Context) (Config, error) {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("log-level") {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
			return cfg, errors.Wrap(err, "log-level")
		}
		cfg.LogLevel = level
	}
	if c.IsSet("report") {
		cfg.Report = c.String("report")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
	return cfg, cfg.Validate()
}

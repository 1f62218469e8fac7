// Package main defines bitree, a command line tool that runs scripts of
// updates and prefix-sum queries against a binary indexed tree and
// generates random scripts for it.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var log = logrus.WithField("prefix", "main")

var (
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info=default, warn, error, fatal, panic)",
		Value: "info",
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Usage: "Specify log formatting. Supports: text, json.",
		Value: "text",
	}
	scriptFlag = &cli.StringFlag{
		Name:     "script",
		Usage:    "Path to the YAML script to run",
		Required: true,
	}
	floatFlag = &cli.BoolFlag{
		Name:  "float",
		Usage: "Hold float64 values instead of int64",
	}
	lengthFlag = &cli.IntFlag{
		Name:  "length",
		Usage: "Number of values in the generated script",
		Value: 16,
	}
	opsFlag = &cli.IntFlag{
		Name:  "ops",
		Usage: "Number of operations in the generated script",
		Value: 16,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed of the random generators",
		Value: 1,
	}
	distFlag = &cli.StringFlag{
		Name:  "dist",
		Usage: "Distribution of the generated values. Supports: uniform, poisson.",
		Value: "uniform",
	}
	maxFlag = &cli.Int64Flag{
		Name:  "max",
		Usage: "Exclusive upper bound of uniform values",
		Value: 100,
	}
	lambdaFlag = &cli.Float64Flag{
		Name:  "lambda",
		Usage: "Mean of poisson values",
		Value: 4,
	}
)

func configureLogging(ctx *cli.Context) error {
	level, err := logrus.ParseLevel(ctx.String(verbosityFlag.Name))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	switch format := ctx.String(logFormatFlag.Name); format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		logrus.SetFormatter(formatter)
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %s", format)
	}
	return nil
}

func newApp() *cli.App {
	app := &cli.App{}
	app.Name = "bitree"
	app.Usage = "run prefix-sum scripts against a binary indexed tree"
	app.Flags = []cli.Flag{verbosityFlag, logFormatFlag}
	app.Before = configureLogging
	app.Commands = []*cli.Command{
		{
			Name:  "run",
			Usage: "Run a script and print the result of every query",
			Flags: []cli.Flag{scriptFlag, floatFlag},
			Action: func(ctx *cli.Context) error {
				path := ctx.String(scriptFlag.Name)
				if ctx.Bool(floatFlag.Name) {
					return runScript[float64](path, ctx.App.Writer)
				}
				return runScript[int64](path, ctx.App.Writer)
			},
		},
		{
			Name:  "generate",
			Usage: "Write a random script to stdout",
			Flags: []cli.Flag{lengthFlag, opsFlag, seedFlag, distFlag, maxFlag, lambdaFlag},
			Action: func(ctx *cli.Context) error {
				cfg := generateConfig{
					length: ctx.Int(lengthFlag.Name),
					ops:    ctx.Int(opsFlag.Name),
					seed:   ctx.Int64(seedFlag.Name),
					dist:   ctx.String(distFlag.Name),
					max:    ctx.Int64(maxFlag.Name),
					lambda: ctx.Float64(lambdaFlag.Name),
				}
				return writeGenerated(cfg, ctx.App.Writer)
			},
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

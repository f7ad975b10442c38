package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cqkv/statdump"
	"github.com/jessevdk/go-flags"
)

type Options struct {
	Top        *int   `short:"n" long:"top" description:"number of records in the preview (default 10)"`
	Quiet      bool   `short:"q" long:"quiet" description:"do not print the preview"`
	MaxRecords int    `long:"max-records" description:"largest number of records a dump may hold"`
	Config     string `short:"c" long:"config" description:"INI file with a [statdump] section"`
	LogLevel   string `long:"log-level" description:"panic, fatal, error, warning, info, debug or trace (default warning)"`
	LogFormat  string `long:"log-format" choice:"text" choice:"json" description:"log format (default text)"`

	Args struct {
		InputA string `positional-arg-name:"in_a" description:"first source dump"`
		InputB string `positional-arg-name:"in_b" description:"second source dump"`
		Output string `positional-arg-name:"out" description:"destination dump"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "statdump"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return statdump.ExitOK
		}
		fmt.Fprintln(stderr, err)
		return statdump.ExitUsage
	}
	if len(rest) != 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", rest)
		parser.WriteHelp(stderr)
		return statdump.ExitUsage
	}

	cfg := defaultConfig()
	if opts.Config != "" {
		if err = loadConfig(opts.Config, &cfg); err != nil {
			fmt.Fprintln(stderr, err)
			return statdump.ExitUsage
		}
	}
	cfg.applyFlags(&opts)

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return statdump.ExitUsage
	}

	pipelineOpts := []statdump.Option{
		statdump.WithLogger(logger),
		statdump.WithMaxRecords(cfg.MaxRecords),
		statdump.WithTop(cfg.Top),
	}
	if !cfg.Quiet {
		pipelineOpts = append(pipelineOpts, statdump.WithReportWriter(stdout))
	}

	_, err = statdump.NewPipeline(pipelineOpts...).Run(opts.Args.InputA, opts.Args.InputB, opts.Args.Output)
	if err != nil {
		fmt.Fprintf(stderr, "%v (%s)\n", err, statdump.StatusString(err))
		return statdump.ExitCode(err)
	}
	return statdump.ExitOK
}

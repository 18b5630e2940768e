// writebuf writes one input string into a fixed size buffer with
// fmtbuf.Writer and prints what ended up in the buffer. It is meant for
// trying buffer sizes, reserves and terminators by hand and for attaching
// the --debug output to bug reports.
//
// Usage:
//
//	writebuf --buffer-size 10 --reserve 4 --truncate-with '...' 'some input'
//
// Defaults for --buffer-size, --reserve, --mode and --debug can be set with
// WRITEBUF_BUFFER_SIZE, WRITEBUF_RESERVE, WRITEBUF_MODE and WRITEBUF_DEBUG.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/rivo/uniseg"
	"github.com/spf13/pflag"
	"github.com/zeebo/errs/v2"

	"github.com/histdb/fmtbuf"
	"github.com/histdb/fmtbuf/hexx"
)

func main() {
	os.Exit(run(os.Args[1:], environ(os.Environ()), os.Stdout, os.Stderr))
}

func environ(kvs []string) map[string]string {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

// config holds the settings that may come from the environment. Flags
// override them.
type config struct {
	BufferSize int    `env:"WRITEBUF_BUFFER_SIZE"`
	Reserve    int    `env:"WRITEBUF_RESERVE" envDefault:"0"`
	Mode       string `env:"WRITEBUF_MODE" envDefault:"codepoints"`
	Debug      bool   `env:"WRITEBUF_DEBUG"`
}

// arguments is the parsed command line.
type arguments struct {
	config

	input        []byte
	finishWith   *string
	truncateWith *string
	mode         fmtbuf.Mode
}

func parseArguments(args []string, vars map[string]string, stderr io.Writer) (arguments, bool, error) {
	var result arguments
	if err := env.ParseWithOptions(&result.config, env.Options{Environment: vars}); err != nil {
		return arguments{}, false, err
	}

	var finishWith, truncateWith string
	var hexInput bool

	flagSet := pflag.NewFlagSet("writebuf", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVar(&result.BufferSize, "buffer-size", result.BufferSize, "size of the target buffer in bytes")
	flagSet.IntVar(&result.Reserve, "reserve", result.Reserve, "bytes at the end of the buffer held back for the terminator")
	flagSet.StringVar(&finishWith, "finish-with", "", "terminator written after the content (also used on truncation unless --truncate-with is set)")
	flagSet.StringVar(&truncateWith, "truncate-with", "", "terminator written instead when the content was truncated")
	flagSet.StringVar(&result.Mode, "mode", result.Mode, "where truncation may cut: codepoints or graphemes")
	flagSet.BoolVar(&hexInput, "hex", false, "the input is hex encoded bytes, which need not be valid UTF-8")
	flagSet.BoolVar(&result.Debug, "debug", result.Debug, "print debugging information after the output")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return arguments{}, true, nil
		}
		return arguments{}, false, err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return arguments{}, true, nil
	}

	if flagSet.Changed("finish-with") {
		result.finishWith = &finishWith
	}
	if flagSet.Changed("truncate-with") {
		result.truncateWith = &truncateWith
	}

	if flagSet.NArg() != 1 {
		return arguments{}, false, errs.Errorf("expected exactly one input argument, got %d", flagSet.NArg())
	}
	if result.BufferSize < 0 {
		return arguments{}, false, errs.Errorf("--buffer-size must not be negative, got %d", result.BufferSize)
	}

	mode, err := fmtbuf.ParseMode(result.Mode)
	if err != nil {
		return arguments{}, false, err
	}
	result.mode = mode

	result.input = []byte(flagSet.Arg(0))
	if hexInput {
		result.input, err = hexx.Decode(nil, result.input)
		if err != nil {
			return arguments{}, false, err
		}
	}

	return result, false, nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `writebuf writes its input into a fixed size buffer and prints the result.

Usage: writebuf [flags] <input>

Flags:
%s`, flagSet.FlagUsages())
}

func run(args []string, vars map[string]string, stdout, stderr io.Writer) int {
	arguments, done, err := parseArguments(args, vars, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	} else if done {
		return 0
	}

	level := slog.LevelWarn
	if arguments.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	buf := make([]byte, arguments.BufferSize)
	writer, err := fmtbuf.WithReserve(buf, arguments.Reserve)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	writer.SetMode(arguments.mode)

	logger.Debug("writing",
		"buffer_size", arguments.BufferSize,
		"reserve", arguments.Reserve,
		"mode", arguments.mode,
		"input_len", len(arguments.input))

	committed, err := writer.Write(arguments.input)
	logger.Debug("write returned", "committed", committed, "error", err)

	var writtenLen int
	switch {
	case arguments.finishWith == nil && arguments.truncateWith == nil:
		writtenLen, err = writer.Finish()
	case arguments.truncateWith == nil:
		writtenLen, err = writer.FinishWith([]byte(*arguments.finishWith))
	case arguments.finishWith == nil:
		writtenLen, err = writer.FinishWithOr(nil, []byte(*arguments.truncateWith))
	default:
		writtenLen, err = writer.FinishWithOr([]byte(*arguments.finishWith), []byte(*arguments.truncateWith))
	}

	truncated := errors.Is(err, fmtbuf.ErrTruncated)
	if err != nil && !truncated {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	contents := buf[:writtenLen]
	if utf8.Valid(contents) {
		fmt.Fprintf(stdout, "%s\n", contents)
	} else {
		fmt.Fprintf(stdout, "! error: output is not valid UTF-8\n")
	}

	if arguments.Debug {
		fmt.Fprintf(stdout, "+ written_len: %d\n", writtenLen)
		fmt.Fprintf(stdout, "+ truncated: %v\n", truncated)
		fmt.Fprintf(stdout, "+ graphemes: %d\n", uniseg.GraphemeClusterCount(string(contents)))
		fmt.Fprintf(stdout, "+ output_bytes: %s\n", hexx.Append(nil, contents))
		fmt.Fprintf(stdout, "+ input: %s\n", arguments.input)
		fmt.Fprintf(stdout, "+ input_bytes: %s\n", hexx.Append(nil, arguments.input))
	}

	return 0
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// notifyContext returns a context cancelled on the first shutdown signal.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, args[1:], env)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	printError(env.Stderr, err)
	return exitCodeFor(err)
}

// run dispatches to a command. Without arguments it converts markdown on
// stdin to a standalone html document with a table of contents.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		return runConvert(ctx, nil, defaultStreamFlags(), env)
	}

	switch args[0] {
	case "convert":
		return parseAndConvert(ctx, args[1:], env)
	case "formats":
		return runFormats(env.Stdout)
	case "version":
		fmt.Fprintf(env.Stdout, "docconv %s\n", Version)
		return nil
	case "help", "-h", "--help":
		runHelp(args[1:], env)
		return nil
	case "completion":
		return runCompletion(args[1:], env)
	}

	// Flags or paths without a command mean convert.
	if strings.HasPrefix(args[0], "-") || pathExists(args[0]) {
		return parseAndConvert(ctx, args, env)
	}

	printUsage(env.Stderr)
	return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
}

func parseAndConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return runConvert(ctx, positional, flags, env)
}

// defaultStreamFlags selects markdown to standalone html with a TOC.
func defaultStreamFlags() *convertFlags {
	return &convertFlags{
		format:  formatFlags{from: defaultFrom.String(), to: defaultTo.String()},
		options: optionFlags{toc: true, standalone: true},
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// printError writes err with its hint. A batch failure was already reported
// per file, so only its summary is printed.
func printError(w io.Writer, err error) {
	var be *batchError
	if errors.As(err, &be) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
}

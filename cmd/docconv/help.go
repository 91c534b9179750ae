package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docconv [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert documents between formats")
	fmt.Fprintln(w, "  formats     List supported formats and features")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, docconv reads markdown from stdin and writes a")
	fmt.Fprintln(w, "standalone html document with a table of contents to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docconv help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docconv convert [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert documents between formats.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Files or directories (default: stdin, or \"-\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --metrics-file <path>    Write Prometheus metrics to a file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formats:")
	fmt.Fprintln(w, "  -f, --from <fmt>             Source format: markdown, html (default: from extension)")
	fmt.Fprintln(w, "  -t, --to <fmt>               Target format: html, markdown, plain (default: html)")
	fmt.Fprintln(w, "  -e, --extensions <list>      Reader extensions: autolink,typographer,hardbreaks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "      --toc                    Prepend a table of contents")
	fmt.Fprintln(w, "      --toc-depth <n>          Deepest heading level in the TOC (1-6)")
	fmt.Fprintln(w, "  -s, --standalone             Write a complete document")
	fmt.Fprintln(w, "      --highlight              Syntax-highlight code blocks (html only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>           Envelope CSS style")
	fmt.Fprintln(w, "      --assets-dir <path>      Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --highlight-style <name> Chroma style for --highlight")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show debug logs and timing")
	fmt.Fprintln(w, "      --log-format <fmt>       Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCCONV_CONFIG, DOCCONV_FROM, DOCCONV_TO, DOCCONV_STYLE, DOCCONV_ASSETS_DIR,")
	fmt.Fprintln(w, "  DOCCONV_OUTPUT_DIR, DOCCONV_LOG_LEVEL, DOCCONV_LOG_FORMAT, DOCCONV_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "formats":
		fmt.Fprintln(env.Stdout, "Usage: docconv formats")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List supported formats, reader extensions and writer features.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docconv version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docconv help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

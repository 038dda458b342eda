// Command htmlbalance balances a fragment of sanitizer-produced HTML read
// from a file or stdin, writing the well-formed result to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/corvidwiki/htmlbalance"
)

var version = "dev"

// config holds the CLI configuration.
type config struct {
	strict  bool
	allowed string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, inputPath, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if inputPath == "" {
		return nil
	}

	input, err := readInput(inputPath, stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var opts []htmlbalance.Option
	if cfg.strict {
		opts = append(opts, htmlbalance.WithStrictMode())
	}
	if cfg.allowed != "" {
		opts = append(opts, htmlbalance.WithAllowedElements(strings.Split(cfg.allowed, ",")...))
	}

	out, err := htmlbalance.Balance(string(input), nil, opts...)
	if err != nil {
		return fmt.Errorf("balancing HTML: %w", err)
	}

	_, err = fmt.Fprint(stdout, out)
	return err
}

func parseFlags(args []string, stderr io.Writer) (*config, string, error) {
	fs := flag.NewFlagSet("htmlbalance", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{}
	var showVersion bool

	fs.BoolVar(&cfg.strict, "strict", false, "abort on an input-contract violation instead of degrading gracefully")
	fs.StringVar(&cfg.allowed, "allow", "", "comma-separated allow-list of tag names; others degrade to literal text")
	fs.BoolVar(&showVersion, "version", false, "show version")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: htmlbalance [options] <file>\n\n")
		fmt.Fprintf(stderr, "Balance a fragment of sanitized HTML into well-formed HTML5.\n\n")
		fmt.Fprintf(stderr, "Arguments:\n")
		fmt.Fprintf(stderr, "  file    HTML fragment path or '-' for stdin\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  htmlbalance fragment.html                Balance a file\n")
		fmt.Fprintf(stderr, "  cat fragment.html | htmlbalance -         Balance piped input\n")
		fmt.Fprintf(stderr, "  htmlbalance -strict -allow=p,b,i frag.html   Strict mode, restricted tag set\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, "", nil
		}
		return nil, "", err
	}

	if showVersion {
		fmt.Fprintf(stderr, "htmlbalance version %s\n", version)
		return nil, "", nil
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		fs.Usage()
		return nil, "", fmt.Errorf("missing input file")
	}

	return cfg, remaining[0], nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

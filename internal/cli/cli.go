// Package cli implements the shape-csvscan command: parse a delimited file and
// print its rows tab-separated, optionally projecting a subset of columns.
package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/shapestone/shape-csvscan/internal/config"
	"github.com/shapestone/shape-csvscan/pkg/csv"
)

// Name is the command name used in usage and log output.
const Name = "shape-csvscan"

// Options holds the resolved command-line settings.
type Options struct {
	File      string
	Delimiter byte
	Quote     byte
	Columns   []int
	Verbose   bool

	// DetectDelimiter is set by "-d auto"; Delimiter is then ignored.
	DetectDelimiter bool
}

// Run executes the command with args (excluding the program name) and
// returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	opts, code, ok := parseArgs(args, stderr)
	if !ok {
		return code
	}

	popts := parserOptions(opts, stderr)
	if err := popts.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	p, err := csv.New(opts.File, popts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: cannot open file %s: %v\n", opts.File, err)
		return 1
	}
	defer p.Close()

	if err := writeRows(p, opts.Columns, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <file.csv> [options]\n", Name)
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  -d, --delimiter CHAR    Field delimiter, or 'auto' to detect (default: ',')\n")
	fmt.Fprintf(w, "  -q, --quote CHAR        Quote character (default: '\"')\n")
	fmt.Fprintf(w, "  -c, --columns LIST      Print only these columns (e.g., 0,2)\n")
	fmt.Fprintf(w, "      --config FILE       Read defaults from a YAML or JSON file\n")
	fmt.Fprintf(w, "  -v, --verbose           Log lenient parsing warnings to stderr\n")
	fmt.Fprintf(w, "  -h, --help              Show help\n")
}

// parseArgs resolves flags, the config file and the file argument.
// When ok is false the command must exit with code.
func parseArgs(args []string, stderr io.Writer) (opts Options, code int, ok bool) {
	fs := flag.NewFlagSet(Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }

	var delimiter, quote, columns, configPath string
	var verbose, help bool

	fs.StringVar(&delimiter, "delimiter", "", "Field delimiter")
	fs.StringVar(&delimiter, "d", "", "Field delimiter (shorthand)")
	fs.StringVar(&quote, "quote", "", "Quote character")
	fs.StringVar(&quote, "q", "", "Quote character (shorthand)")
	fs.StringVar(&columns, "columns", "", "Columns to print")
	fs.StringVar(&columns, "c", "", "Columns to print (shorthand)")
	fs.StringVar(&configPath, "config", "", "Path to configuration file")
	fs.BoolVar(&verbose, "verbose", false, "Log warnings")
	fs.BoolVar(&verbose, "v", false, "Log warnings (shorthand)")
	fs.BoolVar(&help, "help", false, "Show help")
	fs.BoolVar(&help, "h", false, "Show help (shorthand)")

	// Options may follow the file argument, so parse around positionals.
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return opts, 0, false
			}
			return opts, 1, false
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	if help {
		usage(stderr)
		return opts, 0, false
	}
	if len(positional) == 0 {
		usage(stderr)
		return opts, 1, false
	}

	props := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return opts, 1, false
		}
		props = loaded
	}

	// Explicit flags override the config file
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "delimiter", "d":
			props.Delimiter = delimiter
		case "quote", "q":
			props.Quote = quote
		case "columns", "c":
			var cols []int
			if cols, err = ParseColumns(columns); err == nil {
				props.Columns = cols
			}
		case "verbose", "v":
			props.Verbose = verbose
		}
	})
	if err == nil {
		err = props.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return opts, 1, false
	}

	opts = Options{
		File:    positional[0],
		Columns: props.Columns,
		Verbose: props.Verbose,
	}
	if props.Delimiter == config.AutoDelimiter {
		opts.DetectDelimiter = true
	} else {
		opts.Delimiter, _ = config.ParseChar(props.Delimiter)
	}
	opts.Quote, _ = config.ParseChar(props.Quote)
	return opts, 0, true
}

// ParseColumns parses a comma-separated list of 0-based column indices.
func ParseColumns(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	cols := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid column %q in %q", part, s)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative column %d in %q", n, s)
		}
		cols = append(cols, n)
	}
	return cols, nil
}

func parserOptions(opts Options, stderr io.Writer) csv.Options {
	popts := csv.DefaultOptions()
	popts.Delimiter = opts.Delimiter
	popts.Quote = opts.Quote
	popts.DetectDelimiter = opts.DetectDelimiter
	if opts.Verbose {
		logger := log.New(stderr, Name+": ", 0)
		popts.WarningCallback = func(line int, message string) {
			logger.Printf("%s: line %d: %s", opts.File, line, message)
		}
	}
	return popts
}

// Project returns the fields of row at cols, in order, skipping indices the
// row does not have. dst is reused when it has capacity.
func Project(row *csv.Row, cols []int, dst [][]byte) [][]byte {
	dst = dst[:0]
	for _, c := range cols {
		f, err := row.Field(c)
		if err != nil {
			continue
		}
		dst = append(dst, f)
	}
	return dst
}

// writeRows writes every row tab-separated. Output is flushed per row when
// stdout is a terminal and at the end otherwise.
func writeRows(p *csv.Parser, cols []int, stdout io.Writer) error {
	w := bufio.NewWriterSize(stdout, 64*1024)
	interactive := isTerminal(stdout)

	var projected [][]byte
	for {
		row, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = w.Flush()
			return err
		}

		fields := row.Fields()
		if len(cols) > 0 {
			projected = Project(row, cols, projected)
			fields = projected
		}
		for i, f := range fields {
			if i > 0 {
				_ = w.WriteByte('\t')
			}
			_, _ = w.Write(f)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if interactive {
			if err := w.Flush(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

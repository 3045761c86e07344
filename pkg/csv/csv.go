// Package csv provides a zero-copy, row-at-a-time parser for delimited text files.
//
// A Parser reads the whole file into memory when it is constructed and then
// returns one row per call to Next. Field values are views into that buffer:
// no per-field storage is allocated unless a quoted field contains escaped
// quotes ("" collapsed to "), in which case only that field is copied.
//
// # Quoting
//
// Quoting follows RFC 4180 with a configurable delimiter and quote byte, and
// is deliberately lenient:
//
//   - A quote inside an unquoted field is ordinary content: a"b stays a"b
//   - Bytes between a closing quote and the next delimiter are dropped: "ab"cd yields ab
//   - An unterminated quoted field extends to the end of the file
//
// None of these are errors. Set Options.WarningCallback to observe them.
//
// # Line Endings
//
// Rows end at \n, \r\n or a bare \r outside quotes. A trailing line break
// does not produce an extra row, but a blank line in the middle of the file
// is a row with one empty field.
//
// # Lifetimes
//
// The *Row returned by Next and the slice returned by Row.Fields are reused
// by the following call. The field bytes themselves are never overwritten and
// may be retained; use Row.Strings to get owned copies.
//
// # Thread Safety
//
// A Parser must be used by one goroutine at a time. Independent parsers share
// no state and may run concurrently.
//
// # Example usage
//
//	p, err := csv.New("data.csv", csv.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	defer p.Close()
//
//	for {
//	    row, err := p.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    name, _ := row.String(0)
//	    fmt.Println(name)
//	}
package csv

import (
	"io"

	"github.com/shapestone/shape-csvscan/internal/fastparser"
	"github.com/shapestone/shape-csvscan/internal/source"
)

// Row is one parsed record. See the package documentation for lifetimes.
type Row = fastparser.Row

// Parser reads rows from a file that is fully resident in memory.
type Parser struct {
	buf     *source.Buffer
	scanner *fastparser.RowScanner
	opts    Options
	err     error
}

// New reads the file at path and returns a Parser over its contents.
//
// Errors from opening, stating or reading the file are returned as *IOError;
// a file too large for Options.MaxFileSize or the platform returns
// ErrOutOfMemory. No Parser is returned on failure. An empty file is valid
// and yields no rows.
func New(path string, opts Options) (*Parser, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	buf, err := source.Open(path, source.Options{MaxSize: opts.MaxFileSize})
	if err != nil {
		return nil, err
	}
	return newParser(buf, opts), nil
}

// NewFromBytes returns a Parser over data, which the Parser takes ownership of.
// The caller must not modify data afterwards.
func NewFromBytes(data []byte, opts Options) (*Parser, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return newParser(source.New(data), opts), nil
}

func newParser(buf *source.Buffer, opts Options) *Parser {
	if opts.DetectDelimiter {
		opts.Delimiter = SniffDelimiter(buf.Bytes(), opts.Quote)
	}
	return &Parser{
		buf: buf,
		scanner: fastparser.NewRowScanner(buf.Bytes(), fastparser.ScannerOptions{
			Delimiter:       opts.Delimiter,
			Quote:           opts.Quote,
			MaxFields:       opts.MaxFields,
			WarningCallback: opts.WarningCallback,
		}),
		opts: opts,
	}
}

// Next returns the next row, or io.EOF once the input is exhausted.
// After io.EOF every further call returns io.EOF again.
//
// An ErrOutOfMemory failure aborts the call without a partial row and is
// returned from every later call; the Parser cannot be used further.
func (p *Parser) Next() (*Row, error) {
	if p.buf.Closed() {
		return nil, ErrClosed
	}
	if p.err != nil {
		return nil, p.err
	}

	if p.scanner.Scan() {
		return p.scanner.Row(), nil
	}
	if err := p.scanner.Err(); err != nil {
		p.err = err
		return nil, err
	}
	return nil, io.EOF
}

// ReadAll returns every remaining row as owned strings.
func (p *Parser) ReadAll() ([][]string, error) {
	records := make([][]string, 0, 16)
	for {
		row, err := p.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, row.Strings())
	}
}

// Size returns the size of the input in bytes.
func (p *Parser) Size() int {
	return p.buf.Len()
}

// Offset returns the byte offset of the next unread row.
func (p *Parser) Offset() int {
	return p.scanner.Offset()
}

// Options returns the options the Parser was built with, defaults applied.
// With DetectDelimiter set, Delimiter holds the detected byte.
func (p *Parser) Options() Options {
	return p.opts
}

// Close releases the input buffer. Next returns ErrClosed afterwards.
// Field bytes obtained earlier remain valid.
func (p *Parser) Close() error {
	return p.buf.Close()
}

// Format returns the format identifier for this parser.
func Format() string {
	return "CSV"
}

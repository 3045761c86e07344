package fastparser

import (
	"fmt"

	"github.com/shapestone/shape-csvscan/internal/source"
)

// ErrOutOfMemory is returned when a row cannot grow any further.
var ErrOutOfMemory = source.ErrOutOfMemory

// ScannerOptions configures RowScanner behavior.
type ScannerOptions struct {
	// Delimiter separates fields. Default: ','
	Delimiter byte

	// Quote encloses fields that contain delimiters, quotes or line breaks.
	// Default: '"'
	Quote byte

	// MaxFields caps the number of fields in a single row. A row that needs
	// more fails with ErrOutOfMemory and stops the scanner. 0 means no limit.
	MaxFields int

	// WarningCallback is invoked when malformed quoting is accepted leniently:
	// an unterminated quoted field, or bytes dropped after a closing quote.
	WarningCallback func(line int, message string)
}

// DefaultScannerOptions returns comma-delimited, double-quoted options.
func DefaultScannerOptions() ScannerOptions {
	return ScannerOptions{
		Delimiter: ',',
		Quote:     '"',
	}
}

// RowScanner splits a resident buffer into rows and fields in a single pass.
// The input is never modified.
//
// Example usage:
//
//	scanner := NewRowScanner(data, DefaultScannerOptions())
//	for scanner.Scan() {
//	    row := scanner.Row()
//	    // Process row...
//	}
//	if err := scanner.Err(); err != nil {
//	    // Handle error
//	}
//
// Quoting is lenient: an unterminated quoted field extends to the end of the
// input, and bytes between a closing quote and the next delimiter or line
// break are dropped. Neither is reported as an error.
type RowScanner struct {
	data    []byte
	pos     int
	length  int
	classes *classTable
	quote   byte
	opts    ScannerOptions

	// Position tracking
	line      int
	lineStart int

	row     Row
	current *Row
	err     error
}

// NewRowScanner creates a scanner over data. The scanner never writes to data
// and the caller must not modify it while fields are in use.
func NewRowScanner(data []byte, opts ScannerOptions) *RowScanner {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}

	return &RowScanner{
		data:    data,
		length:  len(data),
		classes: newClassTable(opts.Delimiter, opts.Quote),
		quote:   opts.Quote,
		opts:    opts,
		line:    1,
		row:     newRow(),
	}
}

// Scan advances to the next row.
// Returns false at end of input or after an error; once false, it stays false.
// After Scan returns false, check Err() to distinguish between the two.
func (s *RowScanner) Scan() bool {
	s.current = nil
	if s.err != nil || s.pos >= s.length {
		return false
	}

	s.row.reset(s.line, s.pos)

	var sp span
	state := stateFieldStart
	for {
		switch state {
		case stateFieldStart:
			sp = span{offset: s.pos, line: s.line, column: s.pos - s.lineStart + 1}
			if s.pos < s.length && s.classes[s.data[s.pos]] == classQuote {
				s.pos++
				state = stateInQuotedField
			} else {
				state = stateInUnquotedField
			}

		case stateInUnquotedField:
			sp.start, sp.end = s.scanUnquoted()
			state = stateFieldEnd

		case stateInQuotedField:
			var closed bool
			sp, closed = s.scanQuoted(sp)
			if closed {
				state = stateAfterClosingQuote
			} else {
				s.warn(sp.line, fmt.Sprintf("unterminated quoted field at column %d extends to end of input", sp.column))
				state = stateFieldEnd
			}

		case stateAfterClosingQuote:
			s.skipAfterClosingQuote()
			state = stateFieldEnd

		case stateFieldEnd:
			if s.opts.MaxFields > 0 && len(s.row.spans) >= s.opts.MaxFields {
				s.err = fmt.Errorf("row on line %d exceeds %d fields: %w", s.row.line, s.opts.MaxFields, ErrOutOfMemory)
				return false
			}
			s.row.spans = append(s.row.spans, sp)

			if s.pos < s.length && s.classes[s.data[s.pos]] == classDelim {
				s.pos++
				state = stateFieldStart
				continue
			}

			s.skipTerminator()
			s.row.build(s.data)
			s.current = &s.row
			return true
		}
	}
}

// Row returns the row produced by the last successful Scan, or nil.
func (s *RowScanner) Row() *Row {
	return s.current
}

// Err returns the error that stopped the scanner, if any.
func (s *RowScanner) Err() error {
	return s.err
}

// Offset returns the cursor position: the offset of the next unread byte.
func (s *RowScanner) Offset() int {
	return s.pos
}

// Line returns the 1-based line of the next unread byte.
func (s *RowScanner) Line() int {
	return s.line
}

// scanUnquoted consumes field content up to a delimiter, line break or end of input.
func (s *RowScanner) scanUnquoted() (start, end int) {
	start = s.pos
	for s.pos < s.length && !s.classes[s.data[s.pos]].endsField() {
		s.pos++
	}
	return start, s.pos
}

// scanQuoted consumes a quoted field whose opening quote has been skipped.
// It reports whether a closing quote was found. Fields without escaped quotes
// point into the input; the first doubled quote moves the field into the row's
// owned buffer.
func (s *RowScanner) scanQuoted(sp span) (span, bool) {
	start := s.pos
	chunk := start
	escaped := false
	ownedStart := 0

	for s.pos < s.length {
		c := s.data[s.pos]

		switch c {
		case s.quote:
			if s.pos+1 < s.length && s.data[s.pos+1] == s.quote {
				if !escaped {
					escaped = true
					ownedStart = s.row.beginOwned(s.pos - start)
				}
				// Keep one of the two quotes
				s.row.owned = append(s.row.owned, s.data[chunk:s.pos+1]...)
				s.pos += 2
				chunk = s.pos
				continue
			}

			end := s.pos
			s.pos++
			return s.finishQuoted(sp, start, end, chunk, escaped, ownedStart), true

		case '\n':
			s.pos++
			s.newLine()
			continue

		case '\r':
			s.pos++
			if s.pos >= s.length || s.data[s.pos] != '\n' {
				s.newLine()
			}
			continue
		}

		s.pos++
	}

	return s.finishQuoted(sp, start, s.length, chunk, escaped, ownedStart), false
}

func (s *RowScanner) finishQuoted(sp span, start, end, chunk int, escaped bool, ownedStart int) span {
	if !escaped {
		sp.start, sp.end = start, end
		return sp
	}
	s.row.owned = append(s.row.owned, s.data[chunk:end]...)
	sp.start, sp.end, sp.owned = ownedStart, len(s.row.owned), true
	return sp
}

// skipAfterClosingQuote drops any bytes between a closing quote and the next
// delimiter, line break or end of input.
func (s *RowScanner) skipAfterClosingQuote() {
	start := s.pos
	for s.pos < s.length && !s.classes[s.data[s.pos]].endsField() {
		s.pos++
	}
	if dropped := s.pos - start; dropped > 0 {
		s.warn(s.line, fmt.Sprintf("dropped %d bytes after closing quote at column %d", dropped, start-s.lineStart+1))
	}
}

// skipTerminator consumes one row terminator: \r\n, \r or \n.
// At end of input there is nothing to consume.
func (s *RowScanner) skipTerminator() {
	if s.pos >= s.length {
		return
	}

	switch s.classes[s.data[s.pos]] {
	case classCR:
		s.pos++
		if s.pos < s.length && s.data[s.pos] == '\n' {
			s.pos++
		}
		s.newLine()
	case classLF:
		s.pos++
		s.newLine()
	}
}

// newLine records that a line break ended just before the cursor.
func (s *RowScanner) newLine() {
	s.line++
	s.lineStart = s.pos
}

func (s *RowScanner) warn(line int, message string) {
	if s.opts.WarningCallback != nil {
		s.opts.WarningCallback(line, message)
	}
}

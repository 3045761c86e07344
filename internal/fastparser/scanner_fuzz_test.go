package fastparser

import (
	"strings"
	"testing"
)

// FuzzRowScanner checks that any input terminates with well-formed rows and,
// for quote-free input, matches a plain line/delimiter split.
func FuzzRowScanner(f *testing.F) {
	seeds := []string{
		"",
		"\n",
		"a,b,c\n",
		"a,\"b,b\",c\n",
		"a,\"b\nc\",d\n",
		"\"unterminated\n",
		"\"ab\"cd,e\n",
		"a\"b,c\n",
		"one\r\ntwo\rthree\n",
		"\"\"\"\"",
		"a,",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1<<12 {
			t.Skip()
		}

		s := NewRowScanner([]byte(input), DefaultScannerOptions())
		var rows [][]string
		last := -1
		for s.Scan() {
			if s.Offset() <= last {
				t.Fatalf("cursor did not advance: %d -> %d, input=%q", last, s.Offset(), input)
			}
			last = s.Offset()
			if s.Row().Len() < 1 {
				t.Fatalf("row with no fields, input=%q", input)
			}
			rows = append(rows, s.Row().Strings())
		}
		if s.Err() != nil {
			t.Fatalf("Err() = %v, input=%q", s.Err(), input)
		}
		if len(input) > 0 && last != len(input) {
			t.Fatalf("stopped at %d of %d bytes, input=%q", last, len(input), input)
		}
		if s.Scan() {
			t.Fatalf("Scan() = true after end, input=%q", input)
		}

		if strings.IndexByte(input, '"') >= 0 {
			return
		}
		want := splitPlain(input)
		if len(rows) != len(want) {
			t.Fatalf("got %d rows, want %d, input=%q", len(rows), len(want), input)
		}
		for i := range want {
			if strings.Join(rows[i], ",") != want[i] {
				t.Fatalf("row %d = %q, want %q, input=%q", i, rows[i], want[i], input)
			}
		}
	})
}

// splitPlain splits quote-free input into lines on \r\n, \r and \n,
// without a final empty line after a trailing terminator.
func splitPlain(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

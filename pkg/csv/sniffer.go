package csv

import "bytes"

// sniffLimit bounds how much of the input SniffDelimiter looks at when
// Options.DetectDelimiter is set.
const sniffLimit = 64 * 1024

// candidateDelimiters are tried in order; earlier entries win ties.
var candidateDelimiters = []byte{',', '\t', ';', '|'}

// SniffDelimiter guesses the field delimiter of sample.
//
// Each candidate (comma, tab, semicolon, pipe) is counted per line outside
// quoted sections. A candidate that appears the same number of times on every
// non-empty line scores ten times that count; otherwise it scores its count on
// the first line. The highest score wins and ties go to the earlier
// candidate, so ',' is returned when nothing scores. A candidate equal to
// quote is never chosen.
func SniffDelimiter(sample []byte, quote byte) byte {
	if quote == 0 {
		quote = '"'
	}

	lines := sniffLines(sample)
	var best byte
	bestScore := -1
	for _, delim := range candidateDelimiters {
		if delim == quote {
			continue
		}
		if score := scoreDelimiter(lines, delim, quote); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

func scoreDelimiter(lines [][]byte, delim, quote byte) int {
	first := -1
	consistent := true
	for _, line := range lines {
		n := countDelimiter(line, delim, quote)
		if first < 0 {
			first = n
			continue
		}
		if n != first {
			consistent = false
			break
		}
	}
	if first <= 0 {
		return 0
	}
	if consistent {
		return first * 10
	}
	return first
}

// countDelimiter counts occurrences of delim, ignoring quoted sections.
func countDelimiter(line []byte, delim, quote byte) int {
	count := 0
	inQuotes := false
	for _, b := range line {
		if b == quote {
			inQuotes = !inQuotes
		} else if b == delim && !inQuotes {
			count++
		}
	}
	return count
}

// sniffLines splits sample on \n and \r and drops empty lines. A final
// line cut short by the sample limit is dropped too when others exist.
func sniffLines(sample []byte) [][]byte {
	truncated := len(sample) > sniffLimit
	if truncated {
		sample = sample[:sniffLimit]
	}

	lines := bytes.FieldsFunc(sample, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	if truncated && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

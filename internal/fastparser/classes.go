package fastparser

// byteClass groups input bytes by their meaning to the row scanner.
// Classes at or above classDelim end an unquoted field.
type byteClass uint8

const (
	classOther byteClass = iota // ordinary field content
	classQuote                  // configured quote character
	classDelim                  // configured field delimiter
	classCR                     // \r
	classLF                     // \n
)

// endsField reports whether a byte of class c terminates an unquoted field.
func (c byteClass) endsField() bool {
	return c >= classDelim
}

// classTable is a 256-entry lookup table built once per scanner, since the
// delimiter and quote are per-instance configuration.
type classTable [256]byteClass

func newClassTable(delim, quote byte) *classTable {
	var t classTable
	t['\r'] = classCR
	t['\n'] = classLF
	t[quote] = classQuote
	t[delim] = classDelim
	return &t
}

// scanState is the position of the scanner within a single field.
type scanState uint8

const (
	stateFieldStart scanState = iota
	stateInUnquotedField
	stateInQuotedField
	stateAfterClosingQuote
	stateFieldEnd
)

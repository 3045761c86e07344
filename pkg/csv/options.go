package csv

// Options configures a Parser.
type Options struct {
	// Delimiter separates fields. It must not be \r, \n or the quote byte.
	// Default: ','
	Delimiter byte

	// Quote encloses fields containing delimiters, quotes or line breaks.
	// Inside a quoted field a doubled quote stands for one quote.
	// It must not be \r or \n.
	// Default: '"'
	Quote byte

	// DetectDelimiter replaces Delimiter with the result of SniffDelimiter
	// over the start of the input once it is loaded.
	DetectDelimiter bool

	// MaxFields caps the number of fields in one row; a longer row fails with
	// ErrOutOfMemory. 0 means no limit.
	MaxFields int

	// MaxFileSize rejects larger files with ErrOutOfMemory at construction.
	// 0 means no limit.
	MaxFileSize int64

	// WarningCallback is invoked for malformed quoting that is accepted
	// leniently. If nil, warnings are silently ignored.
	WarningCallback func(line int, message string)
}

// DefaultOptions returns comma-delimited, double-quoted options without limits.
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
		Quote:     '"',
	}
}

// withDefaults fills zero delimiter and quote bytes.
func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Quote == 0 {
		o.Quote = '"'
	}
	return o
}

// validSpecial reports whether b may be used as a delimiter or quote.
func validSpecial(b byte) bool {
	return b != 0 && b != '\r' && b != '\n'
}

// Validate checks if the options are valid.
// Zero Delimiter and Quote are reported; New and NewFromBytes apply defaults first.
// Delimiter is not checked when DetectDelimiter is set.
func (o Options) Validate() error {
	if !o.DetectDelimiter && !validSpecial(o.Delimiter) {
		return &OptionsError{Field: "Delimiter", Message: "invalid delimiter"}
	}
	if !validSpecial(o.Quote) {
		return &OptionsError{Field: "Quote", Message: "invalid quote character"}
	}
	if !o.DetectDelimiter && o.Delimiter == o.Quote {
		return &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	if o.MaxFields < 0 {
		return &OptionsError{Field: "MaxFields", Message: "must not be negative"}
	}
	if o.MaxFileSize < 0 {
		return &OptionsError{Field: "MaxFileSize", Message: "must not be negative"}
	}
	return nil
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}

package csv

import (
	"errors"

	"github.com/shapestone/shape-csvscan/internal/fastparser"
	"github.com/shapestone/shape-csvscan/internal/source"
)

// IOError reports a failure to open, stat, map or read the input file.
// It unwraps to the OS error, so errors.Is(err, fs.ErrNotExist) and
// errors.Is(err, fs.ErrPermission) work.
type IOError = source.IOError

var (
	// ErrOutOfMemory indicates the file or a row could not be held in memory
	// within the configured limits. It is fatal to the Parser.
	ErrOutOfMemory = source.ErrOutOfMemory

	// ErrFieldIndex indicates a field index outside the current row.
	ErrFieldIndex = fastparser.ErrFieldIndex

	// ErrClosed indicates the Parser was used after Close.
	ErrClosed = errors.New("csv: parser closed")
)

package fastparser

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrFieldIndex is returned when a field index is outside the current row.
var ErrFieldIndex = errors.New("field index out of range")

// span marks one field. Field bytes live either in the input (zero-copy) or,
// when the field contained escaped quotes, in the row's owned buffer.
type span struct {
	start, end int
	owned      bool

	// Input position of the field's first byte (the opening quote if quoted)
	offset int
	line   int
	column int
}

// Row is one logical record produced by RowScanner.
//
// The Row value and the slice returned by Fields are reused by the next call to
// Scan. The field bytes themselves are never overwritten: they alias the
// immutable input, or a per-row allocation for fields with escaped quotes, so
// individual fields may be kept after the next Scan.
//
// Field slices are capped at their length; appending to one copies instead of
// writing into a neighbouring field.
type Row struct {
	spans  []span
	fields [][]byte
	owned  []byte
	line   int
	offset int
}

func newRow() Row {
	return Row{
		spans:  make([]span, 0, 16),
		fields: make([][]byte, 0, 16),
	}
}

// reset prepares the row for a new scan starting at line and offset.
func (r *Row) reset(line, offset int) {
	r.spans = r.spans[:0]
	r.fields = r.fields[:0]
	r.owned = nil
	r.line = line
	r.offset = offset
}

// beginOwned returns the current end of the owned buffer, allocating it on
// first use within this row.
func (r *Row) beginOwned(hint int) int {
	if r.owned == nil {
		if hint < 16 {
			hint = 16
		}
		r.owned = make([]byte, 0, hint)
	}
	return len(r.owned)
}

// build resolves every span into a field slice once the row is complete, so
// growth of the owned buffer during the scan cannot invalidate earlier fields.
func (r *Row) build(data []byte) {
	for _, sp := range r.spans {
		src := data
		if sp.owned {
			src = r.owned
		}
		r.fields = append(r.fields, src[sp.start:sp.end:sp.end])
	}
}

// Len returns the number of fields in the row.
func (r *Row) Len() int {
	return len(r.fields)
}

// Field returns the i-th field without copying.
func (r *Row) Field(i int) ([]byte, error) {
	if err := r.check(i); err != nil {
		return nil, err
	}
	return r.fields[i], nil
}

// String returns the i-th field as a string without copying.
// The string shares memory with the input, which the scanner never modifies.
func (r *Row) String(i int) (string, error) {
	if err := r.check(i); err != nil {
		return "", err
	}
	return unsafeString(r.fields[i]), nil
}

// Fields returns all fields. The returned slice is reused by the next Scan.
func (r *Row) Fields() [][]byte {
	return r.fields
}

// Strings returns an owned copy of every field.
func (r *Row) Strings() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = string(f)
	}
	return out
}

// FieldPos returns the 1-based line and byte column where the i-th field starts.
// For a quoted field the position is that of the opening quote.
func (r *Row) FieldPos(i int) (line, column int, err error) {
	if err := r.check(i); err != nil {
		return 0, 0, err
	}
	return r.spans[i].line, r.spans[i].column, nil
}

// FieldOffset returns the input byte offset where the i-th field starts.
func (r *Row) FieldOffset(i int) (int, error) {
	if err := r.check(i); err != nil {
		return 0, err
	}
	return r.spans[i].offset, nil
}

// Line returns the 1-based line on which the row starts.
func (r *Row) Line() int {
	return r.line
}

// Offset returns the byte offset at which the row starts.
func (r *Row) Offset() int {
	return r.offset
}

func (r *Row) check(i int) error {
	if i < 0 || i >= len(r.fields) {
		return fmt.Errorf("%w: index %d, row has %d fields", ErrFieldIndex, i, len(r.fields))
	}
	return nil
}

// unsafeString converts a []byte to a string without allocation.
// Only valid for bytes that are never modified afterwards.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

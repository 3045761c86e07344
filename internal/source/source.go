// Package source loads a delimited-text file into an owned, fixed-size byte buffer.
//
// The whole file is resident before any parsing starts. The buffer length never
// changes after construction, and At provides a sentinel past the last byte so the
// tokenizer can look ahead without bounds checks of its own.
package source

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel is returned by At for offsets at or beyond the end of the buffer.
const Sentinel byte = 0

// ErrOutOfMemory indicates the file cannot be held in a single buffer.
var ErrOutOfMemory = errors.New("out of memory")

// IOError reports a failure to open, stat, map, or read the source file.
type IOError struct {
	Op   string // "open", "stat", "mmap" or "read"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying OS error so errors.Is(err, fs.ErrNotExist) works.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Options configures how a file is loaded.
type Options struct {
	// MaxSize rejects files larger than this many bytes with ErrOutOfMemory.
	// 0 means no limit beyond what the platform can address.
	MaxSize int64
}

// Buffer owns the complete contents of a file.
type Buffer struct {
	data   []byte
	closed bool
}

// New wraps data as a Buffer. The caller must not use data afterwards.
func New(data []byte) *Buffer {
	if data == nil {
		data = []byte{}
	}
	return &Buffer{data: data}
}

// Open reads the file at path into a new Buffer.
// A zero-length file yields an empty buffer, not an error.
func Open(path string, opts Options) (*Buffer, error) {
	data, err := load(path, opts)
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the backing slice. Bytes may be written in place but the
// slice must not be resized. Returns nil after Close.
func (b *Buffer) Bytes() []byte {
	if b.closed {
		return nil
	}
	return b.data
}

// At returns the byte at offset i, or Sentinel when i is outside the buffer.
func (b *Buffer) At(i int) byte {
	if i < 0 || i >= len(b.data) {
		return Sentinel
	}
	return b.data[i]
}

// Close releases the buffer. It is safe to call more than once.
func (b *Buffer) Close() error {
	b.closed = true
	b.data = nil
	return nil
}

// Closed reports whether Close has been called.
func (b *Buffer) Closed() bool {
	return b.closed
}

// checkSize validates that a file of size bytes can be loaded under opts.
func checkSize(size int64, opts Options) error {
	if size < 0 {
		return fmt.Errorf("negative file size %d: %w", size, ErrOutOfMemory)
	}
	if opts.MaxSize > 0 && size > opts.MaxSize {
		return fmt.Errorf("file size %d exceeds limit %d: %w", size, opts.MaxSize, ErrOutOfMemory)
	}
	if uint64(size) > uint64(math.MaxInt) {
		return fmt.Errorf("file size %d exceeds addressable memory: %w", size, ErrOutOfMemory)
	}
	return nil
}

//go:build unix

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// load maps the file, copies it into an owned slice and unmaps it again.
// The mapping and the descriptor are released before load returns.
func load(path string, opts Options) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}

	size := stat.Size()
	if err := checkSize(size, opts); err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}

	mapped, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, &IOError{Op: "mmap", Path: path, Err: err}
	}
	defer func() { _ = unix.Munmap(mapped) }()

	data := make([]byte, len(mapped))
	copy(data, mapped)
	return data, nil
}

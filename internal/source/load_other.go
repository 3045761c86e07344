//go:build !unix

package source

import "os"

// load reads the whole file on platforms without mmap support.
func load(path string, opts Options) ([]byte, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	if err := checkSize(stat.Size(), opts); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

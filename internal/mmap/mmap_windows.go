//go:build windows

package mmap

import (
	"io"
	"os"
)

// Windows lacks the unix mmap syscall surface we use; reading the whole file
// keeps the package portable at the cost of one copy.
func mmap(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func munmap([]byte) error { return nil }

// Package mmap provides read-only memory mapping of snapshot files.
package mmap

import (
	"fmt"
	"os"
)

// Mapping is a read-only view of a file. The byte slice returned by Bytes is
// valid until Close is called.
type Mapping struct {
	f    *os.File
	data []byte
}

// Open maps the file at path read-only. Empty files yield an empty mapping.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size := info.Size()
	if size == 0 {
		return &Mapping{f: f}, nil
	}

	data, err := mmap(f, int(size))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &Mapping{f: f, data: data}, nil
}

// Bytes returns the mapped content. The slice must not be written to.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Close unmaps the file and closes the underlying descriptor.
func (m *Mapping) Close() error {
	var unmapErr error
	if m.data != nil {
		unmapErr = munmap(m.data)
		m.data = nil
	}

	closeErr := m.f.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}

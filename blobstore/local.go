package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Compile-time check to ensure LocalStore satisfies the Store interface.
var _ Store = (*LocalStore)(nil)

// LocalStore implements Store using the local file system. Writes go to a
// temporary file in the same directory and are published with an atomic rename.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens a blob for reading.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, name))
}

// Create creates a blob; the content is published on Close.
func (s *LocalStore) Create(_ context.Context, name string) (Writer, error) {
	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}

	return &localBlob{f: tmp, path: path}, nil
}

// Delete removes a blob.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	return os.Remove(filepath.Join(s.root, name))
}

// List returns all blob names under root matching the prefix.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string

	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

type localBlob struct {
	f    *os.File
	path string
}

func (b *localBlob) Write(p []byte) (int, error) {
	return b.f.Write(p)
}

func (b *localBlob) Close() error {
	if err := b.f.Sync(); err != nil {
		_ = b.f.Close()
		_ = os.Remove(b.f.Name())
		return err
	}
	if err := b.f.Close(); err != nil {
		_ = os.Remove(b.f.Name())
		return err
	}
	return os.Rename(b.f.Name(), b.path)
}

func (b *localBlob) Abort() error {
	err := b.f.Close()
	if rmErr := os.Remove(b.f.Name()); err == nil {
		err = rmErr
	}
	return err
}

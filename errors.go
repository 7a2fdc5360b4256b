package pointbsp

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyIndex is returned when a query runs against a tree that has not
	// been built or was built over an empty point set.
	ErrEmptyIndex = errors.New("empty index")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRadius is returned when a ball query radius is negative.
	ErrInvalidRadius = errors.New("radius must be non-negative")

	// ErrNoPointSet is returned when the tree was created without a point set.
	ErrNoPointSet = errors.New("no point set")

	// ErrNotFound is returned when a query admits no point, e.g. because a
	// filter rejected every candidate.
	ErrNotFound = errors.New("not found")
)

// ErrInvalidBuildOption indicates an out-of-range build parameter.
type ErrInvalidBuildOption struct {
	Name  string
	Value int
}

func (e *ErrInvalidBuildOption) Error() string {
	return fmt.Sprintf("invalid build option %s: %d", e.Name, e.Value)
}

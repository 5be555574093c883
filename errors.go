package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyDataset is returned when no points are provided.
	ErrEmptyDataset = errors.New("empty dataset")
)

// ErrInvalidDimension indicates an invalid configured dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrRaggedData indicates a data length that is not a multiple of the
// dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrRaggedData struct {
	Len   int
	Dim   int
	cause error
}

func (e *ErrRaggedData) Error() string {
	return fmt.Sprintf("data length %d is not a multiple of dimension %d", e.Len, e.Dim)
}

func (e *ErrRaggedData) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a centroid matrix whose length does not
// match k*dim.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInsufficientPoints indicates fewer points than clusters.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInsufficientPoints struct {
	Points int
	K      int
	cause  error
}

func (e *ErrInsufficientPoints) Error() string {
	return fmt.Sprintf("need at least %d points for %d clusters, got %d", e.K, e.K, e.Points)
}

func (e *ErrInsufficientPoints) Unwrap() error { return e.cause }

package colorname

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSource is returned by Classify and Render when the source
	// image is nil, empty or not an *RGB.
	ErrUnsupportedSource = errors.New("unsupported source type")

	// ErrTableNotFound is returned when a table file cannot be opened.
	ErrTableNotFound = errors.New("color name table not found")

	// ErrInsufficientData is returned when a table file does not hold
	// exactly Buckets complete rows.
	ErrInsufficientData = errors.New("insufficient color name data")

	// ErrInvalidCategory is returned by Table.Validate when a bucket holds a
	// category id outside 1..NumCategories.
	ErrInvalidCategory = errors.New("invalid color category")

	// ErrNilTable is returned when a transform is called without a table.
	ErrNilTable = errors.New("color name table is nil")
)

// RowCountError reports a table file whose row count is not Buckets.
//
// It matches ErrInsufficientData with errors.Is. The token error that stopped
// reading, if any, can be accessed via errors.Unwrap.
type RowCountError struct {
	Rows  int
	Want  int
	cause error
}

func (e *RowCountError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%v: read %d rows, want %d: %v", ErrInsufficientData, e.Rows, e.Want, e.cause)
	}
	return fmt.Sprintf("%v: read %d rows, want %d", ErrInsufficientData, e.Rows, e.Want)
}

func (e *RowCountError) Is(target error) bool { return target == ErrInsufficientData }

func (e *RowCountError) Unwrap() error { return e.cause }

// Status is the numeric result code of a table or image operation.
type Status uint16

const (
	StatusOK               Status = 0x0000
	StatusInvalidInput     Status = 0x0001
	StatusInsufficientData Status = 0x0002
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidInput:
		return "invalid input"
	case StatusInsufficientData:
		return "insufficient data"
	default:
		return fmt.Sprintf("status(0x%04x)", uint16(s))
	}
}

// StatusOf maps err to its status code. Errors from outside this package
// that wrap none of its sentinels are reported as StatusInvalidInput.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInsufficientData):
		return StatusInsufficientData
	default:
		return StatusInvalidInput
	}
}

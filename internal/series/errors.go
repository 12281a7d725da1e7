package series

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a record collection or table is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrNotFound is returned when no gas record matches the requested province.
	ErrNotFound = errors.New("not found")
	// ErrNoReadings is returned when a year has zero temperature readings.
	ErrNoReadings = errors.New("no readings")
	// ErrInvalidYear is returned when a temperature table key is not an integer year.
	ErrInvalidYear = errors.New("invalid year")
	// ErrLengthMismatch is returned when the derived year axis and the value
	// axis differ in length.
	ErrLengthMismatch = errors.New("year axis and value axis length mismatch")
)

// NotFoundError reports a province absent from the gas records.
type NotFoundError struct {
	Province string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("province %q not found in gas records", e.Province)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NoReadingsError reports a year with an empty reading list.
type NoReadingsError struct {
	Year string
}

func (e *NoReadingsError) Error() string {
	return fmt.Sprintf("year %s has no temperature readings", e.Year)
}

func (e *NoReadingsError) Unwrap() error { return ErrNoReadings }

// YearKeyError reports a temperature table key that does not parse as a year.
type YearKeyError struct {
	Key string
	Err error
}

func (e *YearKeyError) Error() string {
	return fmt.Sprintf("temperature table key %q is not a year: %v", e.Key, e.Err)
}

func (e *YearKeyError) Unwrap() []error { return []error{ErrInvalidYear, e.Err} }

// LengthMismatchError reports a year axis that cannot be paired one-to-one
// with the value axis, which happens when source years have gaps or duplicates.
type LengthMismatchError struct {
	Years  int
	Values int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v: %d years vs %d values", ErrLengthMismatch, e.Years, e.Values)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// MisalignedYearError reports source years whose count matches the year axis
// but which do not occupy it one-to-one, such as a duplicate year offsetting a
// missing one.
type MisalignedYearError struct {
	Year     int
	Expected int
}

func (e *MisalignedYearError) Error() string {
	return fmt.Sprintf("%v: year %d found where %d was expected", ErrLengthMismatch, e.Year, e.Expected)
}

func (e *MisalignedYearError) Unwrap() error { return ErrLengthMismatch }

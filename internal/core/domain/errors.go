package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDatasetNotFound indicates no catalog entry carries the expected title.
	ErrDatasetNotFound = errors.New("DVF dataset not found")

	// ErrYearNotFound indicates the dataset has no resource for the requested year.
	ErrYearNotFound = errors.New("no data found for year")

	// ErrEmptyArchive indicates a downloaded archive holds no entries.
	ErrEmptyArchive = errors.New("archive is empty")

	// ErrColumnMismatch indicates column lengths within a table disagree.
	ErrColumnMismatch = errors.New("column length mismatch")

	// ErrUnsupportedType indicates an unknown semantic type or compression codec.
	ErrUnsupportedType = errors.New("unsupported type")
)

package store

import "errors"

var (
	// ErrNotFound: the workbook (or an item expected to exist) is missing.
	ErrNotFound = errors.New("not found")
	// ErrFormat: the workbook is readable but an expected sheet or column
	// layout is missing.
	ErrFormat = errors.New("bad workbook format")
)

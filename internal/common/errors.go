package common

import (
	"errors"
	"fmt"
	"strings"
)

// Caller-level usage errors. Everything else in this file is a per-file
// failure that the batch runner contains and reports.
var (
	ErrUnknownPayer = errors.New("no extractor registered for payer")
	ErrInvalidInput = errors.New("invalid input")
)

// SchemaMismatchError reports a file whose columns satisfy none of the
// candidate schemas for the selected payer. Missing lists the columns absent
// from the highest-priority candidate.
type SchemaMismatchError struct {
	File    string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: unrecognized layout, missing columns: %s", e.File, strings.Join(e.Missing, ", "))
}

// ParseError reports a cell or pattern capture that could not be coerced to
// the expected numeric or date value.
type ParseError struct {
	File   string
	Column string
	Value  string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: column %q: cannot parse %q: %v", e.File, e.Column, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: cannot parse %q: %v", e.File, e.Value, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ReadError reports a corrupt or unreadable source file.
type ReadError struct {
	File  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: cannot read source: %v", e.File, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// WrapError annotates err with a message, preserving the chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FormatError is returned when a file can't be interpreted as the expected array: a bundle without exactly
// one candidate variable, a malformed table or an array with the wrong shape.
//
// Use errors.As to check for it.
type FormatError struct {
	// Path of the offending file.
	Path string

	// Role of the file in the descriptor ("snp", "labels", "chrom_index").
	Role string

	// Candidates holds the non-metadata variable names found in a bundle, when the error is about
	// the ambiguous (or empty) set of variables. It is nil for other format issues.
	Candidates []string

	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Candidates != nil || e.Reason == "" {
		return fmt.Sprintf("insufficient/ambiguous header in %s file %q: found %d candidate variables %q, wanted exactly 1",
			e.Role, e.Path, len(e.Candidates), e.Candidates)
	}
	return fmt.Sprintf("invalid %s file %q: %s", e.Role, e.Path, e.Reason)
}

// UnsupportedFormatError is returned when a file extension is not one of the supported formats
// (".mat" or ".txt"), or when the features and labels files use different formats.
type UnsupportedFormatError struct {
	Path      string
	Extension string
	Reason    string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported format %q for %q: %s", e.Extension, e.Path, e.Reason)
	}
	return fmt.Sprintf("unsupported format %q for %q: only %s are supported",
		e.Extension, e.Path, strings.Join(supportedExtensions, ", "))
}

// MissingSourceError is returned when the descriptor, one of its required keys, or a file it points to
// is not available.
type MissingSourceError struct {
	// Key in the descriptor, empty if the descriptor itself is missing.
	Key string

	// Path that was looked for, if any.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *MissingSourceError) Error() string {
	var msg string
	switch {
	case e.Key == "":
		msg = fmt.Sprintf("dataset descriptor %q not found", e.Path)
	case e.Path == "":
		msg = fmt.Sprintf("dataset descriptor is missing required key %q", e.Key)
	default:
		msg = fmt.Sprintf("source %q for key %q not found", e.Path, e.Key)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *MissingSourceError) Unwrap() error { return e.Err }

// ErrIndexOutOfRange is returned (wrapped) when a row index given to Config.Indices is not a valid subject.
var ErrIndexOutOfRange = errors.New("subject index out of range")

func newFormatError(path, role, format string, args ...any) error {
	return errors.WithStack(&FormatError{Path: path, Role: role, Reason: fmt.Sprintf(format, args...)})
}

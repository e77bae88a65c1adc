// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/daniellowtw/matlab"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// MetadataKeys are the entries of a bundle that are never candidates when looking for its single data variable.
var MetadataKeys = []string{"__header__", "__globals__", "__version__"}

// Bundle is a MATLAB level 5 ".mat" file: a mapping from variable name to array.
type Bundle struct {
	// Path of the file read.
	Path string

	// Role of the file in the descriptor, used in error messages.
	Role string

	vars map[string]*matlab.Matrix
}

// ReadBundle reads the ".mat" file in path. The role ("snp", "labels", "chrom_index") is only used for error
// messages.
//
// The whole file is read into memory.
func ReadBundle(path, role string) (*Bundle, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s bundle %q", role, path)
	}
	matFile, err := matlab.NewFileFromReader(bytes.NewReader(contents))
	if err != nil {
		return nil, errors.WithStack(&FormatError{Path: path, Role: role,
			Reason: fmt.Sprintf("not a MATLAB level 5 file: %v", err)})
	}

	// The reader panics on contents it doesn't support (sparse or object arrays, unexpected top-level elements).
	b := &Bundle{Path: path, Role: role, vars: make(map[string]*matlab.Matrix)}
	exception := exceptions.Try(func() {
		for _, name := range matFile.GetVarsNames() {
			if m, found := matFile.GetVar(name); found {
				b.vars[name] = m
			}
		}
	})
	if exception != nil {
		return nil, errors.WithStack(&FormatError{Path: path, Role: role,
			Reason: fmt.Sprintf("unsupported bundle contents: %v", exception)})
	}
	return b, nil
}

// Candidates returns the sorted names of the variables in the bundle, excluding MetadataKeys.
func (b *Bundle) Candidates() []string {
	candidates := make([]string, 0, len(b.vars))
	for name := range b.vars {
		if slices.Contains(MetadataKeys, name) {
			continue
		}
		candidates = append(candidates, name)
	}
	slices.Sort(candidates)
	return candidates
}

// Single returns the only candidate variable of the bundle converted to float32.
//
// If there isn't exactly one candidate it returns a *FormatError listing the candidates found.
func (b *Bundle) Single() (*Array, error) {
	candidates := b.Candidates()
	if len(candidates) != 1 {
		return nil, errors.WithStack(&FormatError{Path: b.Path, Role: b.Role, Candidates: candidates})
	}
	return b.Array(candidates[0])
}

// Array returns the variable name converted to a row-major float32 Array.
func (b *Bundle) Array(name string) (*Array, error) {
	m, found := b.vars[name]
	if !found {
		return nil, newFormatError(b.Path, b.Role, "variable %q not found", name)
	}
	switch className := m.Class.String(); className {
	case "Cell array", "Structure", "Object", "Character array", "Sparse array", "unknown":
		return nil, newFormatError(b.Path, b.Role, "variable %q is a %s, not a numeric array", name, className)
	}
	dims := make([]int, len(m.Dimension))
	size := 1
	for ii, dim := range m.Dimension {
		dims[ii] = int(dim)
		size *= int(dim)
	}
	values := m.Value()
	if len(values) != size {
		return nil, newFormatError(b.Path, b.Role, "variable %q has %d values, but its dimensions %v require %d",
			name, len(values), dims, size)
	}

	// MATLAB may store the values with a smaller type than the class of the array, so convert value by value.
	converted := make([]float64, len(values))
	for ii, value := range values {
		switch v := value.(type) {
		case float64:
			converted[ii] = v
		case float32:
			converted[ii] = float64(v)
		case int8:
			converted[ii] = float64(v)
		case uint8:
			converted[ii] = float64(v)
		case int16:
			converted[ii] = float64(v)
		case uint16:
			converted[ii] = float64(v)
		case int32:
			converted[ii] = float64(v)
		case uint32:
			converted[ii] = float64(v)
		case int64:
			converted[ii] = float64(v)
		case uint64:
			converted[ii] = float64(v)
		default:
			return nil, newFormatError(b.Path, b.Role, "variable %q has non-numeric value of type %T at position %d",
				name, value, ii)
		}
	}
	return &Array{Dims: dims, Data: columnMajorToRowMajor(converted, dims)}, nil
}

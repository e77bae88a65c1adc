// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/pkg/errors"
)

// SelectionKind tags the variants of ChromosomeSelection.
type SelectionKind int

const (
	// NoFilter keeps all features.
	NoFilter SelectionKind = iota

	// SingleChromosome keeps the features of one chromosome.
	SingleChromosome

	// ChromosomeSet keeps the features of any of a list of chromosomes.
	ChromosomeSet
)

// String implements fmt.Stringer.
func (k SelectionKind) String() string {
	switch k {
	case NoFilter:
		return "NoFilter"
	case SingleChromosome:
		return "SingleChromosome"
	case ChromosomeSet:
		return "ChromosomeSet"
	default:
		return fmt.Sprintf("SelectionKind(%d)", int(k))
	}
}

// ChromosomeSelection selects which features (columns) to keep, based on the chromosome index of each feature.
//
// The zero value is NoFilter.
type ChromosomeSelection struct {
	Kind SelectionKind

	// IDs of the chromosomes selected: one for SingleChromosome, one or more for ChromosomeSet, none for NoFilter.
	IDs []int
}

// SelectAll returns the NoFilter selection.
func SelectAll() ChromosomeSelection { return ChromosomeSelection{} }

// SelectChromosome returns the selection of a single chromosome.
func SelectChromosome(id int) ChromosomeSelection {
	return ChromosomeSelection{Kind: SingleChromosome, IDs: []int{id}}
}

// SelectChromosomes returns the selection of a set of chromosomes, ignoring repeated ids.
// An empty list returns NoFilter.
func SelectChromosomes(ids ...int) ChromosomeSelection {
	if len(ids) == 0 {
		return SelectAll()
	}
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	return ChromosomeSelection{Kind: ChromosomeSet, IDs: unique}
}

// IsFilter returns whether the selection restricts the features at all.
func (s ChromosomeSelection) IsFilter() bool { return s.Kind != NoFilter }

// String implements fmt.Stringer.
func (s ChromosomeSelection) String() string {
	switch s.Kind {
	case NoFilter:
		return "all chromosomes"
	case SingleChromosome:
		return fmt.Sprintf("chromosome %d", s.IDs[0])
	default:
		return fmt.Sprintf("chromosomes %v", s.IDs)
	}
}

// Columns returns the indices of the features whose chromosome index matches the selection, in order.
// For NoFilter it returns all the indices.
func (s ChromosomeSelection) Columns(chromIndex []float32) []int {
	cols := make([]int, 0, len(chromIndex))
	for col, value := range chromIndex {
		if !s.IsFilter() || s.matches(value) {
			cols = append(cols, col)
		}
	}
	return cols
}

func (s ChromosomeSelection) matches(value float32) bool {
	for _, id := range s.IDs {
		if value == float32(id) {
			return true
		}
	}
	return false
}

// ErrInvalidSelection is returned (wrapped) by ParseChromosomeSelection for values that can't be interpreted.
var ErrInvalidSelection = errors.New("invalid chromosome selection")

// ParseChromosomeSelection interprets the raw "chromosomes" value of a descriptor:
//
//   - nil: NoFilter.
//   - an integer (or a float with an integral value, as decoded from JSON): SingleChromosome.
//   - a non-empty list of integers: ChromosomeSet.
//
// Anything else (an empty list, a list with non-integer elements, a string, ...) returns NoFilter along with
// an error wrapping ErrInvalidSelection describing the problem. Callers are expected to report it and
// carry on using all features.
func ParseChromosomeSelection(value any) (ChromosomeSelection, error) {
	if value == nil {
		return SelectAll(), nil
	}
	if id, ok := asInt(value); ok {
		return SelectChromosome(id), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return SelectAll(), errors.Wrapf(ErrInvalidSelection, "chromosomes %v (%T) is neither an integer nor a list", value, value)
	}
	if rv.Len() == 0 {
		return SelectAll(), errors.Wrap(ErrInvalidSelection, "chromosomes is an empty list")
	}
	ids := make([]int, rv.Len())
	for ii := range ids {
		elem := rv.Index(ii).Interface()
		id, ok := asInt(elem)
		if !ok {
			return SelectAll(), errors.Wrapf(ErrInvalidSelection, "chromosomes[%d]=%v (%T) is not an integer", ii, elem, elem)
		}
		ids[ii] = id
	}
	return SelectChromosomes(ids...), nil
}

// asInt converts any Go integer, or a float holding an integral value, to int.
func asInt(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

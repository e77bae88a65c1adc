// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Array is a dense n-dimensional float32 array stored in row-major order, as read from a bundle or a table.
type Array struct {
	Dims []int
	Data []float32
}

// Size is the number of elements given by Dims.
func (a *Array) Size() int {
	size := 1
	for _, dim := range a.Dims {
		size *= dim
	}
	return size
}

// String implements fmt.Stringer, printing only the shape.
func (a *Array) String() string {
	return fmt.Sprintf("Array%v", a.Dims)
}

// vectorLength returns the length of the array if it is a vector: 1-D, or 2-D with at most one
// non-singleton axis. It returns false otherwise, or if it is empty.
func (a *Array) vectorLength() (int, bool) {
	if len(a.Dims) == 0 || len(a.Dims) > 2 || a.Size() == 0 {
		return 0, false
	}
	length := 0
	nonSingleton := 0
	for _, dim := range a.Dims {
		if dim > 1 {
			nonSingleton++
		}
		length = max(length, dim)
	}
	if nonSingleton > 1 {
		return 0, false
	}
	return length, true
}

// columnMajorToRowMajor converts values stored in column-major (Fortran, MATLAB) order to a row-major
// float32 slice.
func columnMajorToRowMajor[T constraints.Integer | constraints.Float](values []T, dims []int) []float32 {
	out := make([]float32, len(values))
	if len(dims) <= 1 {
		for ii, v := range values {
			out[ii] = float32(v)
		}
		return out
	}
	// Column-major strides.
	strides := make([]int, len(dims))
	stride := 1
	for axis, dim := range dims {
		strides[axis] = stride
		stride *= dim
	}
	index := make([]int, len(dims))
	for flat := range out {
		offset := 0
		for axis, idx := range index {
			offset += idx * strides[axis]
		}
		out[flat] = float32(values[offset])

		// Increment the row-major multi-index: last axis moves fastest.
		for axis := len(index) - 1; axis >= 0; axis-- {
			index[axis]++
			if index[axis] < dims[axis] {
				break
			}
			index[axis] = 0
		}
	}
	return out
}

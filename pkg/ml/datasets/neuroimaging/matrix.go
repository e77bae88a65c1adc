// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"fmt"
	"math"
	"slices"
)

// Matrix is an immutable 2D float32 matrix shaped (subjects, features), stored in row-major order.
//
// All accessors return copies, so a Matrix can be shared freely.
type Matrix struct {
	rows, cols int
	data       []float32
}

// NewMatrix creates a Matrix from row-major data. The data is copied.
//
// It panics if len(data) != rows*cols.
func NewMatrix(rows, cols int, data []float32) *Matrix {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		panic(fmt.Sprintf("NewMatrix(%d, %d): data has %d elements, wanted %d", rows, cols, len(data), rows*cols))
	}
	return &Matrix{rows: rows, cols: cols, data: slices.Clone(data)}
}

// matrixFromArray takes ownership of the data of a 2D array.
func matrixFromArray(arr *Array) *Matrix {
	return &Matrix{rows: arr.Dims[0], cols: arr.Dims[1], data: arr.Data}
}

// Dims returns the number of rows (subjects) and columns (features).
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the value at the given row and column.
func (m *Matrix) At(row, col int) float32 {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("Matrix.At(%d, %d) out of bounds for matrix shaped (%d, %d)", row, col, m.rows, m.cols))
	}
	return m.data[row*m.cols+col]
}

// Row returns a copy of the given row.
func (m *Matrix) Row(row int) []float32 {
	return slices.Clone(m.data[row*m.cols : (row+1)*m.cols])
}

// Flat returns a copy of all the values in row-major order.
func (m *Matrix) Flat() []float32 {
	return slices.Clone(m.data)
}

// Equal returns whether both matrices have the same shape and bit-identical values.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for ii, v := range m.data {
		if math.Float32bits(v) != math.Float32bits(other.data[ii]) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(%d, %d)", m.rows, m.cols)
}

// SelectColumns returns a new matrix with only the given columns, in the given order.
func (m *Matrix) SelectColumns(cols []int) *Matrix {
	out := &Matrix{rows: m.rows, cols: len(cols), data: make([]float32, m.rows*len(cols))}
	for row := 0; row < m.rows; row++ {
		src := m.data[row*m.cols : (row+1)*m.cols]
		dst := out.data[row*out.cols : (row+1)*out.cols]
		for ii, col := range cols {
			dst[ii] = src[col]
		}
	}
	return out
}

// SelectRows returns a new matrix with only the given rows, in the given order. Rows can be repeated.
func (m *Matrix) SelectRows(rows []int) *Matrix {
	out := &Matrix{rows: len(rows), cols: m.cols, data: make([]float32, len(rows)*m.cols)}
	for ii, row := range rows {
		copy(out.data[ii*m.cols:(ii+1)*m.cols], m.data[row*m.cols:(row+1)*m.cols])
	}
	return out
}

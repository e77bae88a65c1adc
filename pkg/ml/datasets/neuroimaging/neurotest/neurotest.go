// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

// Package neurotest writes dataset fixtures for tests: MATLAB level 5 ".mat" bundles, plain ".txt" tables and
// YAML descriptors.
package neurotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Var is one variable of a ".mat" bundle.
type Var struct {
	Name string

	// Dims of the variable. MATLAB always uses at least 2, but any number is written.
	Dims []int

	// Values in row-major order. They are written in MATLAB column-major order.
	Values []float64

	// Single writes the variable as a single precision array, instead of double precision.
	Single bool
}

// Matrix returns a variable shaped (rows, cols) with value fn(row, col).
func Matrix(name string, rows, cols int, fn func(row, col int) float64) Var {
	values := make([]float64, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			values = append(values, fn(row, col))
		}
	}
	return Var{Name: name, Dims: []int{rows, cols}, Values: values}
}

// ColumnVector returns a variable shaped (N, 1).
func ColumnVector(name string, values ...float64) Var {
	return Var{Name: name, Dims: []int{len(values), 1}, Values: values}
}

// RowVector returns a variable shaped (1, N).
func RowVector(name string, values ...float64) Var {
	return Var{Name: name, Dims: []int{1, len(values)}, Values: values}
}

// MATLAB data types and array classes used.
const (
	miINT8   = 1
	miINT32  = 5
	miUINT32 = 6
	miSINGLE = 7
	miDOUBLE = 9
	miMATRIX = 14

	mxDOUBLE = 6
	mxSINGLE = 7
)

// MatBytes returns the contents of an uncompressed little-endian MATLAB level 5 file with the given variables.
func MatBytes(vars ...Var) []byte {
	buf := &bytes.Buffer{}
	text := "MATLAB 5.0 MAT-file, Platform: GLNXA64, Created on: Mon Jan  2 15:04:05 2006"
	buf.WriteString(text + strings.Repeat(" ", 116-len(text)))
	// Subsystem data offset, version and endian indicator.
	buf.Write(make([]byte, 8))
	buf.Write([]byte{0x00, 0x01, 'I', 'M'})
	for _, v := range vars {
		writeMatrix(buf, v)
	}
	return buf.Bytes()
}

func writeMatrix(w *bytes.Buffer, v Var) {
	body := &bytes.Buffer{}

	// Array flags.
	class := byte(mxDOUBLE)
	if v.Single {
		class = mxSINGLE
	}
	writeElement(body, miUINT32, []byte{class, 0, 0, 0, 0, 0, 0, 0})

	// Dimensions.
	dims := make([]byte, 4*len(v.Dims))
	for ii, dim := range v.Dims {
		binary.LittleEndian.PutUint32(dims[4*ii:], uint32(dim))
	}
	writeElement(body, miINT32, dims)

	// Name.
	writeElement(body, miINT8, []byte(v.Name))

	// Real part, in column-major order.
	columnMajor := toColumnMajor(v.Values, v.Dims)
	var data []byte
	if v.Single {
		data = make([]byte, 4*len(columnMajor))
		for ii, value := range columnMajor {
			binary.LittleEndian.PutUint32(data[4*ii:], math.Float32bits(float32(value)))
		}
		writeElement(body, miSINGLE, data)
	} else {
		data = make([]byte, 8*len(columnMajor))
		for ii, value := range columnMajor {
			binary.LittleEndian.PutUint64(data[8*ii:], math.Float64bits(value))
		}
		writeElement(body, miDOUBLE, data)
	}
	writeTag(w, miMATRIX, body.Len())
	w.Write(body.Bytes())
}

func writeTag(w *bytes.Buffer, dataType uint32, numBytes int) {
	tag := make([]byte, 8)
	binary.LittleEndian.PutUint32(tag[0:], dataType)
	binary.LittleEndian.PutUint32(tag[4:], uint32(numBytes))
	w.Write(tag)
}

// writeElement writes the tag and the data, padded to 8 bytes.
func writeElement(w *bytes.Buffer, dataType uint32, data []byte) {
	writeTag(w, dataType, len(data))
	w.Write(data)
	if pad := len(data) % 8; pad != 0 {
		w.Write(make([]byte, 8-pad))
	}
}

func toColumnMajor(values []float64, dims []int) []float64 {
	if len(dims) <= 1 {
		return values
	}
	out := make([]float64, len(values))
	rowStrides := make([]int, len(dims))
	stride := 1
	for axis := len(dims) - 1; axis >= 0; axis-- {
		rowStrides[axis] = stride
		stride *= dims[axis]
	}
	index := make([]int, len(dims))
	for flat := range out {
		offset := 0
		for axis, idx := range index {
			offset += idx * rowStrides[axis]
		}
		out[flat] = values[offset]

		// Column-major: first axis moves fastest.
		for axis := range index {
			index[axis]++
			if index[axis] < dims[axis] {
				break
			}
			index[axis] = 0
		}
	}
	return out
}

// WriteMat writes a ".mat" bundle with the given variables to dir/name and returns its path.
func WriteMat(t testing.TB, dir, name string, vars ...Var) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, MatBytes(vars...), 0644))
	return path
}

// WriteTable writes a ".txt" table, one row per line, values separated by spaces, to dir/name and returns its path.
func WriteTable(t testing.TB, dir, name string, rows [][]float64) string {
	t.Helper()
	var sb strings.Builder
	for _, row := range rows {
		for ii, value := range row {
			if ii > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
		}
		sb.WriteString("\n")
	}
	return WriteText(t, dir, name, sb.String())
}

// WriteText writes contents to dir/name and returns its path.
func WriteText(t testing.TB, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// WriteDescriptor writes the mapping as a YAML descriptor to dir/name and returns its path.
func WriteDescriptor(t testing.TB, dir, name string, mapping map[string]any) string {
	t.Helper()
	contents, err := yaml.Marshal(mapping)
	require.NoError(t, err)
	return WriteText(t, dir, name, string(contents))
}

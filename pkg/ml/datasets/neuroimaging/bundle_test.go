// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"testing"

	"github.com/neurogen/cortex/pkg/ml/datasets/neuroimaging/neurotest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleSingle(t *testing.T) {
	dir := t.TempDir()
	path := neurotest.WriteMat(t, dir, "x.mat",
		neurotest.Matrix("X", 2, 3, func(row, col int) float64 { return float64(10*row + col) }))
	bundle, err := ReadBundle(path, KeyFeatures)
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, bundle.Candidates())

	arr, err := bundle.Single()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, arr.Dims)
	// MATLAB stores column-major, Array is row-major.
	assert.Equal(t, []float32{0, 1, 2, 10, 11, 12}, arr.Data)
}

func TestBundleSinglePrecisionAndHigherRank(t *testing.T) {
	dir := t.TempDir()
	values := make([]float64, 2*3*4)
	for ii := range values {
		values[ii] = float64(ii)
	}
	path := neurotest.WriteMat(t, dir, "cube.mat",
		neurotest.Var{Name: "cube", Dims: []int{2, 3, 4}, Values: values, Single: true})
	bundle, err := ReadBundle(path, KeyFeatures)
	require.NoError(t, err)
	arr, err := bundle.Single()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, arr.Dims)
	for ii, v := range arr.Data {
		require.Equalf(t, float32(ii), v, "value at flat position %d", ii)
	}
}

func TestBundleMetadataKeysExcluded(t *testing.T) {
	dir := t.TempDir()
	path := neurotest.WriteMat(t, dir, "y.mat",
		neurotest.RowVector("__header__", 1),
		neurotest.RowVector("__version__", 1),
		neurotest.ColumnVector("diagnosis", 1, 2, 2, 1))
	bundle, err := ReadBundle(path, KeyLabels)
	require.NoError(t, err)
	assert.Equal(t, []string{"diagnosis"}, bundle.Candidates())
	arr, err := bundle.Single()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 2, 1}, arr.Data)
}

func TestBundleAmbiguous(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct {
		name string
		vars []neurotest.Var
		want []string
	}{
		{"empty", nil, []string{}},
		{"only_metadata", []neurotest.Var{neurotest.RowVector("__globals__", 1)}, []string{}},
		{"two", []neurotest.Var{neurotest.RowVector("b", 1), neurotest.RowVector("a", 2)}, []string{"a", "b"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := neurotest.WriteMat(t, dir, tc.name+".mat", tc.vars...)
			bundle, err := ReadBundle(path, KeyFeatures)
			require.NoError(t, err)
			_, err = bundle.Single()
			require.Error(t, err)
			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr), "expected *FormatError, got %T: %v", err, err)
			assert.Equal(t, tc.want, formatErr.Candidates)
			assert.Equal(t, path, formatErr.Path)
			assert.Equal(t, KeyFeatures, formatErr.Role)
			assert.Contains(t, err.Error(), "ambiguous")
		})
	}
}

func TestBundleInvalidContents(t *testing.T) {
	dir := t.TempDir()

	// Not a .mat file at all.
	path := neurotest.WriteText(t, dir, "bad.mat", "1 2 3\n4 5 6\n")
	_, err := ReadBundle(path, KeyFeatures)
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr), "expected *FormatError, got %T: %v", err, err)

	// Empty variable: the reader panics, and it should be converted to a FormatError.
	path = neurotest.WriteMat(t, dir, "empty_var.mat", neurotest.Var{Name: "X", Dims: []int{0, 0}})
	_, err = ReadBundle(path, KeyFeatures)
	require.True(t, errors.As(err, &formatErr), "expected *FormatError, got %T: %v", err, err)

	// Missing file is not a format error.
	_, err = ReadBundle(dir+"/missing.mat", KeyFeatures)
	require.Error(t, err)
	assert.False(t, errors.As(err, &formatErr))
}

func TestArrayVectorLength(t *testing.T) {
	for _, tc := range []struct {
		dims   []int
		length int
		ok     bool
	}{
		{[]int{5}, 5, true},
		{[]int{5, 1}, 5, true},
		{[]int{1, 5}, 5, true},
		{[]int{1, 1}, 1, true},
		{[]int{2, 5}, 0, false},
		{[]int{5, 1, 1}, 0, false},
		{[]int{0, 1}, 0, false},
		{[]int{}, 0, false},
	} {
		arr := &Array{Dims: tc.dims}
		length, ok := arr.vectorLength()
		assert.Equalf(t, tc.ok, ok, "dims=%v", tc.dims)
		assert.Equalf(t, tc.length, length, "dims=%v", tc.dims)
	}
}

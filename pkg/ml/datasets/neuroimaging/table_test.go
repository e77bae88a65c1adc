// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"testing"

	"github.com/neurogen/cortex/pkg/ml/datasets/neuroimaging/neurotest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	dir := t.TempDir()
	path := neurotest.WriteText(t, dir, "x.txt", "1  2\t3\n\n  4 5.5 -6e-1  \n")
	arr, err := ReadTable(path, KeyFeatures)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, arr.Dims)
	assert.Equal(t, []float32{1, 2, 3, 4, 5.5, -0.6}, arr.Data)

	// A single column.
	path = neurotest.WriteTable(t, dir, "y.txt", [][]float64{{1}, {2}, {1}})
	arr, err = ReadTable(path, KeyLabels)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, arr.Dims)
	assert.Equal(t, []float32{1, 2, 1}, arr.Data)

	// Values are parsed once, as float64, and converted to float32.
	path = neurotest.WriteText(t, dir, "z.txt", "0.1 1e-3\n-2.5E2 3\n")
	arr, err = ReadTable(path, KeyChromIndex)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, arr.Dims)
	assert.Equal(t, []float32{float32(0.1), float32(1e-3), -250, 3}, arr.Data)
}

func TestReadTableErrors(t *testing.T) {
	dir := t.TempDir()
	for name, contents := range map[string]string{
		"ragged.txt":  "1 2 3\n4 5\n",
		"letters.txt": "1 2\nA 3\n",
		"empty.txt":   "\n  \n",
	} {
		t.Run(name, func(t *testing.T) {
			path := neurotest.WriteText(t, dir, name, contents)
			_, err := ReadTable(path, KeyFeatures)
			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr), "expected *FormatError, got %T: %v", err, err)
			assert.Nil(t, formatErr.Candidates)
			assert.Contains(t, err.Error(), path)
		})
	}
}

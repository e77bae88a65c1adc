// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"io"
	"testing"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/ml/datasets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDataset(numSubjects, numFeatures int) *Dataset {
	data := make([]float32, numSubjects*numFeatures)
	for ii := range data {
		data[ii] = float32(ii)
	}
	labels := make([]float32, numSubjects)
	for ii := range labels {
		labels[ii] = float32(1 + ii%2)
	}
	return &Dataset{
		name:          DefaultName,
		mode:          Valid,
		features:      NewMatrix(numSubjects, numFeatures, data),
		labels:        labels,
		distributions: map[string]Distribution{DefaultName: Gaussian, LabelField: Multinomial},
	}
}

func TestBatcher(t *testing.T) {
	ds := newTestDataset(5, 2)
	batcher := ds.Batches(2, false)
	assert.Equal(t, "snp [valid]", batcher.Name())

	for epoch := 0; epoch < 2; epoch++ {
		var gotSizes []int
		var gotLabels []float32
		for {
			spec, inputs, labels, err := batcher.Yield()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			require.Same(t, ds, spec)
			require.Len(t, inputs, 1)
			require.Len(t, labels, 1)
			n := labels[0].Shape().Dimensions[0]
			assert.Equal(t, []int{n, 2}, inputs[0].Shape().Dimensions)
			features := tensors.MustCopyFlatData[float32](inputs[0])
			start := len(gotLabels)
			for ii, v := range features {
				require.Equal(t, float32(start*2+ii), v)
			}
			gotSizes = append(gotSizes, n)
			gotLabels = append(gotLabels, tensors.MustCopyFlatData[float32](labels[0])...)
		}
		assert.Equal(t, []int{2, 2, 1}, gotSizes, "epoch %d", epoch)
		assert.Equal(t, ds.Labels(), gotLabels, "epoch %d", epoch)
		batcher.Reset()
	}
}

func TestBatcherDropIncomplete(t *testing.T) {
	ds := newTestDataset(5, 3)
	batcher := ds.Batches(2, true)
	count := 0
	for {
		_, _, _, err := batcher.Yield()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 2, count)

	// Whole dataset in one batch.
	batcher = ds.Batches(0, true)
	_, inputs, labels, err := batcher.Yield()
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3}, inputs[0].Shape().Dimensions)
	assert.Equal(t, []int{5}, labels[0].Shape().Dimensions)
	_, _, _, err = batcher.Yield()
	assert.Equal(t, io.EOF, err)
}

func TestBatcherWithTake(t *testing.T) {
	ds := newTestDataset(10, 2)
	taken := datasets.Take(ds.Batches(3, false), 2)
	assert.Equal(t, "snp [valid] [Take 2]", taken.Name())
	for epoch := 0; epoch < 2; epoch++ {
		for ii := 0; ii < 2; ii++ {
			_, inputs, _, err := taken.Yield()
			require.NoError(t, err)
			assert.Equal(t, []int{3, 2}, inputs[0].Shape().Dimensions)
			assert.Equal(t, float32(ii*3*2), tensors.MustCopyFlatData[float32](inputs[0])[0])
		}
		_, _, _, err := taken.Yield()
		require.Equal(t, io.EOF, err)
		taken.Reset()
	}
}

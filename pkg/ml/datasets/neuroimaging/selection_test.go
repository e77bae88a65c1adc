// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChromosomeSelection(t *testing.T) {
	valid := []struct {
		value any
		want  ChromosomeSelection
	}{
		{nil, SelectAll()},
		{2, SelectChromosome(2)},
		{int64(7), SelectChromosome(7)},
		{float64(3), SelectChromosome(3)}, // JSON numbers.
		{[]int{2}, ChromosomeSelection{Kind: ChromosomeSet, IDs: []int{2}}},
		{[]any{1, 22, 1}, ChromosomeSelection{Kind: ChromosomeSet, IDs: []int{1, 22}}},
	}
	for _, tc := range valid {
		got, err := ParseChromosomeSelection(tc.value)
		require.NoErrorf(t, err, "value=%#v", tc.value)
		assert.Equalf(t, tc.want, got, "value=%#v", tc.value)
	}

	invalid := []any{
		[]int{},
		[]any{},
		"2",
		2.5,
		[]any{1, "x"},
		map[string]any{"a": 1},
		true,
	}
	for _, value := range invalid {
		got, err := ParseChromosomeSelection(value)
		require.Errorf(t, err, "value=%#v", value)
		assert.Truef(t, errors.Is(err, ErrInvalidSelection), "value=%#v", value)
		assert.Equalf(t, NoFilter, got.Kind, "value=%#v", value)
		assert.False(t, got.IsFilter())
	}
}

func TestSelectionColumns(t *testing.T) {
	index := []float32{1, 2, 2, 3, 1, 2}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, SelectAll().Columns(index))
	assert.Equal(t, []int{1, 2, 5}, SelectChromosome(2).Columns(index))
	assert.Equal(t, []int{0, 3, 4}, SelectChromosomes(3, 1).Columns(index))
	assert.Empty(t, SelectChromosome(9).Columns(index))
	assert.Equal(t, "chromosome 2", SelectChromosome(2).String())
	assert.Equal(t, "all chromosomes", SelectAll().String())
}

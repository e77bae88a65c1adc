// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"bytes"
	"testing"

	"github.com/neurogen/cortex/pkg/ml/datasets/neuroimaging/neurotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporters(t *testing.T) {
	dir := t.TempDir()
	writeSNPFixture(t, dir, 3, 4)
	mapping := map[string]any{"snp": "x.mat", "labels": "y.mat"}
	for _, reporter := range []Reporter{NopReporter{}, NewLogReporter()} {
		ds, err := buildMap(t, mapping).DataRoot(dir).Reporter(reporter).Done()
		require.NoErrorf(t, err, "reporter %T", reporter)
		assert.Equal(t, 3, ds.NumSubjects())
	}

	var buf bytes.Buffer
	reporter := NewProgressBarReporter(&buf)
	_, err := buildMap(t, mapping).DataRoot(dir).Name("genetic").Reporter(reporter).Done()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Forming genetic dataset")
	assert.Nil(t, reporter.bar)

	// A failed load still finishes the reporter.
	neurotest.WriteMat(t, dir, "x2.mat", neurotest.RowVector("a", 1), neurotest.RowVector("b", 2))
	buf.Reset()
	_, err = buildMap(t, map[string]any{"snp": "x2.mat", "labels": "y.mat"}).DataRoot(dir).Reporter(reporter).Done()
	require.Error(t, err)
	assert.Nil(t, reporter.bar)
}

// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"fmt"
	"io"
	"sync"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/ml/train"
)

// Batcher feeds a Dataset to a GoMLX training loop: it implements train.Dataset, yielding the subjects in order,
// in batches of features shaped (batchSize, numFeatures) and labels shaped (batchSize,), both float32.
//
// It returns io.EOF at the end of each epoch, call Reset to start over. It is safe for concurrent use.
type Batcher struct {
	ds                  *Dataset
	batchSize           int
	dropIncompleteBatch bool

	mu   sync.Mutex
	next int
}

var _ train.Dataset = &Batcher{}

// Batches creates a Batcher over the dataset. If batchSize <= 0 the whole dataset is yielded as one batch.
// If dropIncompleteBatch is true the last batch of the epoch is skipped if it is smaller than batchSize.
func (ds *Dataset) Batches(batchSize int, dropIncompleteBatch bool) *Batcher {
	if batchSize <= 0 {
		batchSize = ds.NumSubjects()
	}
	return &Batcher{ds: ds, batchSize: batchSize, dropIncompleteBatch: dropIncompleteBatch}
}

// Name implements train.Dataset.
func (b *Batcher) Name() string {
	return fmt.Sprintf("%s [%s]", b.ds.name, b.ds.mode)
}

// Reset implements train.Dataset, and restarts the epoch.
func (b *Batcher) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next = 0
}

// Yield implements train.Dataset. The spec returned is the underlying *Dataset.
func (b *Batcher) Yield() (spec any, inputs, labels []*tensors.Tensor, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	numSubjects, numFeatures := b.ds.features.Dims()
	remaining := numSubjects - b.next
	if remaining <= 0 || (b.dropIncompleteBatch && remaining < b.batchSize) {
		err = io.EOF
		return
	}
	n := min(b.batchSize, remaining)
	start := b.next
	b.next += n

	spec = b.ds
	features := b.ds.features.data[start*numFeatures : (start+n)*numFeatures]
	inputs = []*tensors.Tensor{tensors.FromFlatDataAndDimensions(features, n, numFeatures)}
	labels = []*tensors.Tensor{tensors.FromFlatDataAndDimensions(b.ds.labels[start:start+n], n)}
	return
}

// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"math"
	"math/rand"
	"slices"

	"github.com/pkg/errors"
)

// SplitIndices shuffles the subject indices [0, numSubjects) and splits them into train, validation and test
// sets, to be given to Config.Indices for each Mode.
//
// validFraction and testFraction are the fractions of the subjects (rounded down) in the validation and test sets,
// the train set gets the rest. Each returned set is sorted. The split is deterministic for a given seed.
func SplitIndices(numSubjects int, validFraction, testFraction float64, seed int64) (trainIdx, validIdx, testIdx []int, err error) {
	if numSubjects <= 0 {
		err = errors.Errorf("SplitIndices: numSubjects must be > 0, got %d", numSubjects)
		return
	}
	if validFraction < 0 || testFraction < 0 || validFraction+testFraction >= 1 {
		err = errors.Errorf("SplitIndices: fractions must be >= 0 and add to less than 1, got valid=%g, test=%g",
			validFraction, testFraction)
		return
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(numSubjects)
	numValid := int(math.Floor(validFraction * float64(numSubjects)))
	numTest := int(math.Floor(testFraction * float64(numSubjects)))

	validIdx = slices.Clone(perm[:numValid])
	testIdx = slices.Clone(perm[numValid : numValid+numTest])
	trainIdx = slices.Clone(perm[numValid+numTest:])
	slices.Sort(trainIdx)
	slices.Sort(validIdx)
	slices.Sort(testIdx)
	return
}

// IndicesFor returns the indices of the split for the given mode.
func IndicesFor(mode Mode, trainIdx, validIdx, testIdx []int) []int {
	switch mode {
	case Valid:
		return validIdx
	case Test:
		return testIdx
	default:
		return trainIdx
	}
}

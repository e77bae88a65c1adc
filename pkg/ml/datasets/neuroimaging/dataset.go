// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Mode is the split tag attached to a Dataset.
type Mode int

const (
	Train Mode = iota
	Valid
	Test
)

var modeNames = []string{"train", "valid", "test"}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts "train", "valid" or "test" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	idx := slices.Index(modeNames, strings.ToLower(s))
	if idx < 0 {
		return Train, errors.Errorf("invalid mode %q, valid values are %q", s, modeNames)
	}
	return Mode(idx), nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Mode can be read from YAML, JSON or flags.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Distribution is the statistical family a field of a Dataset is assumed to be drawn from. It's a contract for
// the model consuming the dataset, it is not checked here.
type Distribution string

const (
	Gaussian    Distribution = "gaussian"
	Multinomial Distribution = "multinomial"
)

// LabelField is the name of the labels field of every Dataset.
const LabelField = "label"

// Dataset is a loaded and preprocessed dataset: the feature matrix (under the dataset name) and the labels
// (under LabelField), the distribution of each field, and the split mode.
//
// It is immutable, all accessors return copies.
type Dataset struct {
	name          string
	mode          Mode
	features      *Matrix
	labels        []float32
	distributions map[string]Distribution
	chromosomes   ChromosomeSelection
	indices       []int
	source        string
}

// Name of the dataset, also the name of its features field.
func (ds *Dataset) Name() string { return ds.name }

// Mode returns the split tag of the dataset.
func (ds *Dataset) Mode() Mode { return ds.mode }

// Features returns the (subjects, features) matrix.
func (ds *Dataset) Features() *Matrix { return ds.features }

// Labels returns a copy of the labels, one per subject.
func (ds *Dataset) Labels() []float32 { return slices.Clone(ds.labels) }

// Distributions returns a copy of the distribution assumed for each field.
func (ds *Dataset) Distributions() map[string]Distribution { return maps.Clone(ds.distributions) }

// Chromosomes returns the chromosome selection actually applied to the features.
// It is NoFilter if the loader fell back to using all features.
func (ds *Dataset) Chromosomes() ChromosomeSelection { return ds.chromosomes }

// Indices returns a copy of the subject indices used to subset the dataset, or nil if all subjects are used.
func (ds *Dataset) Indices() []int { return slices.Clone(ds.indices) }

// Source returns a description of where the dataset was loaded from.
func (ds *Dataset) Source() string { return ds.source }

// NumSubjects is the number of rows (examples).
func (ds *Dataset) NumSubjects() int { return ds.features.rows }

// NumFeatures is the number of columns of the features.
func (ds *Dataset) NumFeatures() int { return ds.features.cols }

// LabelCounts returns the number of subjects for each label value.
func (ds *Dataset) LabelCounts() map[float32]int {
	counts := make(map[float32]int)
	for _, label := range ds.labels {
		counts[label]++
	}
	return counts
}

// String implements fmt.Stringer.
func (ds *Dataset) String() string {
	return fmt.Sprintf("Dataset %q (%s): %s=%s, %s=(%d), %s", ds.name, ds.mode, ds.name, ds.features,
		LabelField, len(ds.labels), ds.chromosomes)
}

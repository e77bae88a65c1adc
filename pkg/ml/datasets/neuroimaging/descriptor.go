// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Keys of a dataset descriptor.
const (
	KeyFeatures    = "snp"
	KeyLabels      = "labels"
	KeyLabel       = "label" // Alternative to KeyLabels.
	KeyChromIndex  = "chrom_index"
	KeyChromosomes = "chromosomes"
)

// Descriptor names the files that make up one dataset instance.
//
// It is usually read from a YAML file with ReadDescriptor, e.g.:
//
//	snp: $data/snp/subjects_x_snps.mat
//	labels: $data/snp/diagnosis.mat
//	chrom_index: $data/snp/chromosome_index.mat
//	chromosomes: [2, 7]
//
// Paths are logical: they are resolved (variables, "~", data root) only when the dataset is loaded.
type Descriptor struct {
	// Path of the descriptor file, empty if the descriptor was built from a literal mapping.
	Path string

	// Features is the path to the (subjects, features) matrix.
	Features string

	// Labels is the path to the labels vector.
	Labels string

	// ChromIndex is the optional path to the per-feature chromosome index.
	ChromIndex string

	// Chromosomes is the selection of chromosomes to keep. NoFilter if not given or invalid.
	Chromosomes ChromosomeSelection

	// ChromosomesErr holds the diagnostic for an invalid "chromosomes" value, if any. It's not a failure:
	// the loader reports it and uses all features.
	ChromosomesErr error
}

// ReadDescriptor reads a YAML descriptor file. A missing file returns a *MissingSourceError.
func ReadDescriptor(path string) (*Descriptor, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.WithStack(&MissingSourceError{Path: path, Err: err})
		}
		return nil, errors.Wrapf(err, "failed to read dataset descriptor %q", path)
	}
	var mapping map[string]any
	if err := yaml.Unmarshal(contents, &mapping); err != nil {
		return nil, errors.Wrapf(err, "failed to parse dataset descriptor %q", path)
	}
	if mapping == nil {
		return nil, errors.WithStack(&MissingSourceError{Key: KeyFeatures, Err: errors.Errorf("descriptor %q is empty", path)})
	}
	desc, err := DescriptorFromMap(mapping)
	if err != nil {
		return nil, errors.WithMessagef(err, "dataset descriptor %q", path)
	}
	desc.Path = path
	return desc, nil
}

// DescriptorFromMap creates a Descriptor from a literal mapping, with the same keys as the descriptor file.
func DescriptorFromMap(mapping map[string]any) (*Descriptor, error) {
	desc := &Descriptor{}
	var err error
	if desc.Features, err = stringValue(mapping, KeyFeatures, true); err != nil {
		return nil, err
	}
	// "labels" wins over "label", unless it is empty.
	if desc.Labels, err = stringValue(mapping, KeyLabels, false); err != nil {
		return nil, err
	}
	if desc.Labels == "" {
		if desc.Labels, err = stringValue(mapping, KeyLabel, false); err != nil {
			return nil, err
		}
	}
	if desc.Labels == "" {
		return nil, errors.WithStack(&MissingSourceError{Key: KeyLabels})
	}
	if desc.ChromIndex, err = stringValue(mapping, KeyChromIndex, false); err != nil {
		return nil, err
	}
	desc.Chromosomes, desc.ChromosomesErr = ParseChromosomeSelection(mapping[KeyChromosomes])
	return desc, nil
}

func stringValue(mapping map[string]any, key string, required bool) (string, error) {
	value, found := mapping[key]
	if !found || value == nil {
		if required {
			return "", errors.WithStack(&MissingSourceError{Key: key})
		}
		return "", nil
	}
	str, ok := value.(string)
	if !ok {
		return "", errors.Errorf("dataset descriptor key %q must be a path, got %v (%T)", key, value, value)
	}
	if str == "" && required {
		return "", errors.WithStack(&MissingSourceError{Key: key})
	}
	return str, nil
}

// Dir returns the directory of the descriptor file, or "" if it wasn't read from a file.
func (d *Descriptor) Dir() string {
	if d.Path == "" {
		return ""
	}
	return filepath.Dir(d.Path)
}

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	return fmt.Sprintf("{%s: %q, %s: %q, %s: %q, %s: %s}", KeyFeatures, d.Features, KeyLabels, d.Labels,
		KeyChromIndex, d.ChromIndex, KeyChromosomes, d.Chromosomes)
}

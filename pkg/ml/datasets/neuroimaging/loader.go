// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

// Package neuroimaging loads genetic (SNP) and neuroimaging datasets for the generative models.
//
// A dataset is described by a small YAML descriptor naming the features matrix (subjects x SNPs), the labels
// (diagnosis: patients are usually coded 1 and healthy controls 2) and, optionally, the chromosome of each SNP
// and the chromosomes to keep. Matrices are either MATLAB ".mat" files with exactly one variable each, or plain
// white-space separated ".txt" tables.
//
// Mostly one will use BuildFromFile, configure it and call Config.Done:
//
//	trainIdx, validIdx, _, err := neuroimaging.SplitIndices(numSubjects, 0.1, 0.1, seed)
//	...
//	train, err := neuroimaging.BuildFromFile(descriptorPath).Indices(trainIdx).Done()
//	valid, err := neuroimaging.BuildFromFile(descriptorPath).Mode(neuroimaging.Valid).Indices(validIdx).Done()
//
// The resulting Dataset can be fed to a GoMLX training loop with Dataset.Batches.
package neuroimaging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/neurogen/cortex/pkg/support/fsutil"
	"github.com/pkg/errors"
)

const (
	// DefaultName of a dataset, and of its features field.
	DefaultName = "snp"

	// DataRootEnv is the environment variable with the default data root, used when Config.DataRoot is not set.
	DataRootEnv = "CORTEX_DATA"

	// DataVar is the path variable ("$data/...") that always refers to the data root.
	DataVar = "data"
)

// Supported file extensions.
const (
	MatExtension = ".mat"
	TxtExtension = ".txt"
)

var supportedExtensions = []string{MatExtension, TxtExtension}

// numLoadSteps reported to the Reporter.
const numLoadSteps = 8

// Config for loading a Dataset. It is created with Build, BuildFromFile or BuildFromMap, configured with the
// various methods, and finally Config.Done loads the dataset.
//
// Example:
//
//	ds, err := neuroimaging.BuildFromFile("~/data/snp/vae_snp.yaml").
//		Name("snp").Mode(neuroimaging.Train).Indices(trainIdx).Done()
type Config struct {
	err error

	descriptor     *Descriptor
	descriptorPath string

	name     string
	mode     Mode
	indices  []int
	dataRoot string
	vars     map[string]string
	reporter Reporter
}

// Build a configuration to load the dataset described by descriptor. Call Config.Done to load it.
func Build(descriptor *Descriptor) *Config {
	c := newConfig()
	if descriptor == nil {
		c.setError(errors.WithStack(&MissingSourceError{}))
	}
	c.descriptor = descriptor
	return c
}

// BuildFromFile creates a configuration to load the dataset described by the YAML file in path.
// The file is only read by Config.Done.
func BuildFromFile(path string) *Config {
	c := newConfig()
	c.descriptorPath = path
	if path == "" {
		c.setError(errors.WithStack(&MissingSourceError{}))
	}
	return c
}

// BuildFromMap creates a configuration to load the dataset described by a literal mapping, with the same
// keys as a descriptor file.
func BuildFromMap(mapping map[string]any) *Config {
	c := newConfig()
	desc, err := DescriptorFromMap(mapping)
	if err != nil {
		c.setError(err)
	}
	c.descriptor = desc
	return c
}

func newConfig() *Config {
	return &Config{
		name:     DefaultName,
		mode:     Train,
		vars:     make(map[string]string),
		reporter: NewLogReporter(),
	}
}

func (c *Config) setError(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Name of the dataset, also used as the name of the features field. Default is "snp".
func (c *Config) Name(name string) *Config {
	if name == "" || name == LabelField {
		c.setError(errors.Errorf("invalid dataset name %q", name))
		return c
	}
	c.name = name
	return c
}

// Mode sets the split tag of the dataset. Default is Train.
func (c *Config) Mode(mode Mode) *Config {
	c.mode = mode
	return c
}

// Indices selects (and orders) the subjects to keep, after the dataset is loaded. Each index must be in
// the range [0, subjects). Indices can be repeated. If not set (or nil), all subjects are used.
func (c *Config) Indices(indices []int) *Config {
	if indices == nil {
		c.indices = nil
		return c
	}
	c.indices = append([]int{}, indices...)
	return c
}

// DataRoot sets the directory relative paths in the descriptor are resolved against. It's also the value of the
// "$data" path variable.
//
// If not set, the environment variable CORTEX_DATA is used, then the directory of the descriptor file,
// then the current directory.
func (c *Config) DataRoot(dir string) *Config {
	dir, err := fsutil.ReplaceTildeInDir(dir)
	if err != nil {
		c.setError(err)
		return c
	}
	c.dataRoot = dir
	return c
}

// Var defines a path variable that can be used as "$name" or "${name}" in the descriptor paths.
// Undefined variables are looked up in the environment.
func (c *Config) Var(name, value string) *Config {
	c.vars[name] = value
	return c
}

// Reporter sets where progress and status messages go. Default is a LogReporter.
// Use NopReporter{} to silence it.
func (c *Config) Reporter(reporter Reporter) *Config {
	if reporter == nil {
		reporter = NopReporter{}
	}
	c.reporter = reporter
	return c
}

// Done loads the dataset.
//
// It returns a *MissingSourceError if the descriptor, one of its required keys or one of its files is missing;
// a *UnsupportedFormatError if the files are not ".mat" or ".txt" files; a *FormatError if the
// features or labels can't be interpreted. Problems with the chromosome index or the chromosome selection are
// only reported, and all features are used instead.
//
// Each call is independent: the returned Dataset shares no memory with other loads.
func (c *Config) Done() (*Dataset, error) {
	if c.err != nil {
		return nil, c.err
	}
	l := &loader{Config: c, reporter: c.reporter}
	l.reporter.Start(c.name, numLoadSteps)
	defer l.reporter.Finish()
	return l.run()
}

// Load is a shortcut for Build(descriptor).Indices(indices).Reporter(reporter).Done().
func Load(descriptor *Descriptor, indices []int, reporter Reporter) (*Dataset, error) {
	return Build(descriptor).Indices(indices).Reporter(reporter).Done()
}

// loader holds the state of one load.
type loader struct {
	*Config
	reporter Reporter

	desc   *Descriptor
	root   string
	vars   map[string]string
	format string
}

func (l *loader) run() (*Dataset, error) {
	// 1. Descriptor and paths.
	if err := l.resolveDescriptor(); err != nil {
		return nil, err
	}
	featuresPath, err := l.resolvePath(KeyFeatures, l.desc.Features)
	if err != nil {
		return nil, err
	}
	labelsPath, err := l.resolvePath(KeyLabels, l.desc.Labels)
	if err != nil {
		return nil, err
	}
	// The format is checked before existence: an unsupported file is reported as such even if it is missing.
	if l.format, err = sourceFormat(featuresPath, labelsPath); err != nil {
		return nil, err
	}
	if err = checkExists(KeyFeatures, featuresPath); err != nil {
		return nil, err
	}
	if err = checkExists(KeyLabels, labelsPath); err != nil {
		return nil, err
	}
	l.reporter.Step("descriptor")

	// 2. Features.
	l.reporter.Infof("Loading genetic data from %s", featuresPath)
	featuresArr, err := readArray(featuresPath, KeyFeatures, l.format)
	if err != nil {
		return nil, err
	}
	if len(featuresArr.Dims) != 2 {
		return nil, newFormatError(featuresPath, KeyFeatures, "features must be a 2D (subjects, features) matrix, got shape %v",
			featuresArr.Dims)
	}
	features := matrixFromArray(featuresArr)
	l.reporter.Step("features")

	// 3. Labels.
	l.reporter.Infof("Loading labels from %s", labelsPath)
	labelsArr, err := readArray(labelsPath, KeyLabels, l.format)
	if err != nil {
		return nil, err
	}
	l.reporter.Step("labels")

	// 4 and 5. Optional restriction to a set of chromosomes.
	chromIndex := l.readChromIndex(features.cols)
	l.reporter.Step("chromosome index")
	features, selection := l.restrictColumns(features, chromIndex)
	l.reporter.Step("chromosome selection")

	// 6. Labels as a vector.
	labels, err := normalizeLabels(labelsArr, features.rows, labelsPath)
	if err != nil {
		return nil, err
	}
	l.reporter.Step("labels shape")

	// 7. Subset of subjects.
	if l.indices != nil {
		for pos, idx := range l.indices {
			if idx < 0 || idx >= features.rows {
				return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d (position %d) for dataset %q with %d subjects",
					idx, pos, l.name, features.rows)
			}
		}
		features = features.SelectRows(l.indices)
		subset := make([]float32, len(l.indices))
		for ii, idx := range l.indices {
			subset[ii] = labels[idx]
		}
		labels = subset
	}
	l.reporter.Step("subjects subset")

	// 8. Packaging.
	ds := &Dataset{
		name:     l.name,
		mode:     l.mode,
		features: features,
		labels:   labels,
		distributions: map[string]Distribution{
			l.name:     Gaussian,
			LabelField: Multinomial,
		},
		chromosomes: selection,
		indices:     l.indices,
		source:      featuresPath,
	}
	l.reporter.Step("dataset")
	l.reporter.Infof("Dataset %q (%s): %d subjects, %d features", ds.name, ds.mode, features.rows, features.cols)
	return ds, nil
}

// resolveDescriptor reads the descriptor if needed, and sets the data root and path variables.
func (l *loader) resolveDescriptor() error {
	l.desc = l.descriptor
	if l.desc == nil {
		path, err := fsutil.ReplaceTildeInDir(l.descriptorPath)
		if err != nil {
			return err
		}
		l.reporter.Infof("Loading file locations from %s", path)
		if l.desc, err = ReadDescriptor(path); err != nil {
			return err
		}
	}
	if l.desc.ChromosomesErr != nil {
		l.reporter.Warningf("Chromosome selection is not valid, using all chromosomes: %v", l.desc.ChromosomesErr)
	}

	l.root = l.dataRoot
	if l.root == "" {
		l.root = os.Getenv(DataRootEnv)
	}
	if l.root == "" {
		l.root = l.desc.Dir()
	}
	l.vars = make(map[string]string, len(l.Config.vars)+1)
	if l.root != "" {
		l.vars[DataVar] = l.root
	}
	for name, value := range l.Config.vars {
		l.vars[name] = value
	}
	return nil
}

// resolvePath resolves the logical path of a descriptor key, without checking that it exists.
func (l *loader) resolvePath(key, logicalPath string) (string, error) {
	path, err := fsutil.ResolvePath(logicalPath, l.root, l.vars)
	if err != nil {
		return "", errors.WithStack(&MissingSourceError{Key: key, Path: logicalPath, Err: err})
	}
	return path, nil
}

// checkExists returns a *MissingSourceError if path doesn't exist.
func checkExists(key, path string) error {
	exists, err := fsutil.FileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return errors.WithStack(&MissingSourceError{Key: key, Path: path})
	}
	return nil
}

// resolveSource resolves the logical path of a descriptor key and checks that it exists.
func (l *loader) resolveSource(key, logicalPath string) (string, error) {
	path, err := l.resolvePath(key, logicalPath)
	if err != nil {
		return "", err
	}
	if err = checkExists(key, path); err != nil {
		return "", err
	}
	return path, nil
}

// sourceFormat returns the extension shared by the features and the labels files.
func sourceFormat(featuresPath, labelsPath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(featuresPath))
	if ext != MatExtension && ext != TxtExtension {
		return "", errors.WithStack(&UnsupportedFormatError{Path: featuresPath, Extension: ext})
	}
	labelsExt := strings.ToLower(filepath.Ext(labelsPath))
	if labelsExt != ext {
		return "", errors.WithStack(&UnsupportedFormatError{Path: labelsPath, Extension: labelsExt,
			Reason: "labels must have the same format as the features (" + ext + ")"})
	}
	return ext, nil
}

// readArray reads the single array of a ".mat" bundle or a ".txt" table.
func readArray(path, role, format string) (*Array, error) {
	switch format {
	case MatExtension:
		bundle, err := ReadBundle(path, role)
		if err != nil {
			return nil, err
		}
		return bundle.Single()
	case TxtExtension:
		return ReadTable(path, role)
	default:
		return nil, errors.WithStack(&UnsupportedFormatError{Path: path, Extension: format})
	}
}

// readChromIndex returns the chromosome index of each feature, or nil if it is not given or can't be used.
// It never fails, problems are reported.
func (l *loader) readChromIndex(numFeatures int) []float32 {
	if l.desc.ChromIndex == "" {
		l.reporter.Infof("No chromosome index given, using all chromosomes")
		return nil
	}
	path, err := l.resolveSource(KeyChromIndex, l.desc.ChromIndex)
	if err != nil {
		l.reporter.Warningf("Chromosome index not found, using all chromosomes: %v", err)
		return nil
	}
	format := strings.ToLower(filepath.Ext(path))
	if format != MatExtension && format != TxtExtension {
		l.reporter.Warningf("Chromosome index %q has unsupported format %q, using all chromosomes", path, format)
		return nil
	}
	arr, err := readArray(path, KeyChromIndex, format)
	if err != nil {
		l.reporter.Warningf("Failed to read chromosome index, using all chromosomes: %v", err)
		return nil
	}
	length, ok := arr.vectorLength()
	if !ok || length != numFeatures {
		l.reporter.Warningf("Chromosome index %q shaped %v doesn't match the %d features, using all chromosomes",
			path, arr.Dims, numFeatures)
		return nil
	}
	return arr.Data
}

// restrictColumns applies the chromosome selection of the descriptor. It returns the selection actually applied.
func (l *loader) restrictColumns(features *Matrix, chromIndex []float32) (*Matrix, ChromosomeSelection) {
	selection := l.desc.Chromosomes
	if chromIndex == nil {
		return features, SelectAll()
	}
	if !selection.IsFilter() {
		l.reporter.Infof("No chromosome selection given, using all chromosomes")
		return features, SelectAll()
	}
	cols := selection.Columns(chromIndex)
	if len(cols) == 0 {
		l.reporter.Warningf("No features match %s, using all chromosomes", selection)
		return features, SelectAll()
	}
	l.reporter.Infof("Using %s: %d of %d features", selection, len(cols), features.cols)
	return features.SelectColumns(cols), selection
}

// normalizeLabels flattens labels shaped (N,), (N, 1) or (1, N) to a vector, and checks it has one
// label per subject.
func normalizeLabels(arr *Array, numSubjects int, path string) ([]float32, error) {
	length, ok := arr.vectorLength()
	if !ok {
		return nil, newFormatError(path, KeyLabels,
			"labels must be a non-empty vector shaped (N,), (N, 1) or (1, N), got shape %v", arr.Dims)
	}
	if length != numSubjects {
		return nil, newFormatError(path, KeyLabels, "got %d labels for %d subjects", length, numSubjects)
	}
	return arr.Data, nil
}

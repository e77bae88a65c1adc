// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

// snp_inspect loads a genetic (SNP) dataset from its YAML descriptor and prints a summary of it.
//
// Usage:
//
//	snp_inspect [flags] <descriptor.yaml>
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/janpfeifer/must"
	"github.com/neurogen/cortex/pkg/ml/datasets/neuroimaging"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagDataRoot = flag.String("data_root", "", "Directory relative paths of the descriptor are resolved against, "+
		"and value of \"$data\". If empty, $"+neuroimaging.DataRootEnv+" is used, and then the descriptor's directory.")
	flagName    = flag.String("name", neuroimaging.DefaultName, "Name of the dataset, also the name of its features field.")
	flagIndices = flag.String("indices", "", "Comma-separated list of subject indices to keep, in order. "+
		"Mutually exclusive with -split.")
	flagSplit = flag.String("split", "", "Validation and test fractions, e.g. \"0.1,0.1\": the subjects are "+
		"shuffled and split, and the split selected by -mode is loaded.")
	flagSeed     = flag.Int64("seed", 42, "Seed used to shuffle the subjects with -split.")
	flagProgress = flag.Bool("progress", false, "Display a progress bar while loading.")
	flagStats    = flag.Bool("stats", false, "Display statistics of the features.")

	flagMode = neuroimaging.Train
)

func init() {
	flag.TextVar(&flagMode, "mode", neuroimaging.Train, "Split to load: train, valid or test.")
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		klog.Errorf("Expected exactly one descriptor file to load, got %d arguments. See 'snp_inspect -help'.", len(args))
		os.Exit(1)
	}
	if *flagIndices != "" && *flagSplit != "" {
		klog.Errorf("Flags -indices and -split can't be used together.")
		os.Exit(1)
	}
	descriptorPath := args[0]

	var split *splitSizes
	indices := must.M1(parseIndices(*flagIndices))
	if *flagSplit != "" {
		validFraction, testFraction := must.M2(parseSplit(*flagSplit))
		full, err := newConfig(descriptorPath).Reporter(neuroimaging.NopReporter{}).Done()
		if err != nil {
			klog.Errorf("Failed to load %q: %+v", descriptorPath, err)
			os.Exit(1)
		}
		trainIdx, validIdx, testIdx := must.M3(
			neuroimaging.SplitIndices(full.NumSubjects(), validFraction, testFraction, *flagSeed))
		split = &splitSizes{Train: len(trainIdx), Valid: len(validIdx), Test: len(testIdx), Seed: *flagSeed}
		indices = neuroimaging.IndicesFor(flagMode, trainIdx, validIdx, testIdx)
	}

	config := newConfig(descriptorPath).Indices(indices)
	if *flagProgress {
		config.Reporter(neuroimaging.NewProgressBarReporter(os.Stderr))
	}
	ds, err := config.Done()
	if err != nil {
		klog.Errorf("Failed to load %q: %+v", descriptorPath, err)
		os.Exit(1)
	}
	fmt.Println(Summary(ds, split, *flagStats))
}

func newConfig(descriptorPath string) *neuroimaging.Config {
	config := neuroimaging.BuildFromFile(descriptorPath).Name(*flagName).Mode(flagMode)
	if *flagDataRoot != "" {
		config.DataRoot(*flagDataRoot)
	}
	return config
}

// parseIndices parses a comma-separated list of indices. An empty string returns nil, meaning all subjects.
func parseIndices(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid index %q in -indices=%q", part, value)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// parseSplit parses the "<valid>,<test>" fractions.
func parseSplit(value string) (validFraction, testFraction float64, err error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		err = errors.Errorf("-split=%q must be given as \"<valid_fraction>,<test_fraction>\"", value)
		return
	}
	if validFraction, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		err = errors.Wrapf(err, "invalid validation fraction in -split=%q", value)
		return
	}
	if testFraction, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		err = errors.Wrapf(err, "invalid test fraction in -split=%q", value)
	}
	return
}

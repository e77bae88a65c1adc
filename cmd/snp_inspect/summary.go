// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/neurogen/cortex/pkg/ml/datasets/neuroimaging"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// splitSizes of a -split run.
type splitSizes struct {
	Train, Valid, Test int
	Seed               int64
}

// Summary renders the tables describing the dataset: general information, label classes, the sizes of the
// split (if split is not nil) and the statistics of the features (if withStats).
func Summary(ds *neuroimaging.Dataset, split *splitSizes, withStats bool) string {
	var sb strings.Builder
	numSubjects, numFeatures := ds.NumSubjects(), ds.NumFeatures()

	sb.WriteString(titleStyle.Render("Summary"))
	sb.WriteString("\n")
	table := newPlainTable(lipgloss.Right, lipgloss.Left)
	table.Row("name", ds.Name())
	table.Row("mode", ds.Mode().String())
	table.Row("source", ds.Source())
	table.Row("# subjects", humanize.Comma(int64(numSubjects)))
	table.Row("# features", humanize.Comma(int64(numFeatures)))
	table.Row("chromosomes", ds.Chromosomes().String())
	if indices := ds.Indices(); indices != nil {
		table.Row("indices", formatIndices(indices, 10))
	}
	numBytes := 4 * uint64(numSubjects*numFeatures+numSubjects)
	table.Row("# bytes", humanize.Bytes(numBytes))
	distributions := ds.Distributions()
	for _, field := range slices.Sorted(maps.Keys(distributions)) {
		table.Row("distribution "+field, string(distributions[field]))
	}
	sb.WriteString(table.Render())
	sb.WriteString("\n")

	// Label classes.
	sb.WriteString(titleStyle.Render("Labels"))
	sb.WriteString("\n")
	table = newPlainTable(lipgloss.Right)
	table.Headers("Label", "Count", "Fraction")
	counts := ds.LabelCounts()
	for _, label := range slices.Sorted(maps.Keys(counts)) {
		table.Row(fmt.Sprintf("%g", label), humanize.Comma(int64(counts[label])),
			fmt.Sprintf("%.1f%%", 100*float64(counts[label])/float64(numSubjects)))
	}
	sb.WriteString(table.Render())
	sb.WriteString("\n")

	if split != nil {
		sb.WriteString(titleStyle.Render("Split"))
		sb.WriteString("\n")
		table = newPlainTable(lipgloss.Right)
		table.Headers("Train", "Valid", "Test", "Seed")
		table.Row(humanize.Comma(int64(split.Train)), humanize.Comma(int64(split.Valid)),
			humanize.Comma(int64(split.Test)), fmt.Sprintf("%d", split.Seed))
		sb.WriteString(table.Render())
		sb.WriteString("\n")
	}

	if withStats && numSubjects > 0 && numFeatures > 0 {
		sb.WriteString(titleStyle.Render("Features"))
		sb.WriteString("\n")
		stats := computeStats(ds.Features())
		table = newPlainTable(lipgloss.Right, lipgloss.Left)
		table.Row("mean", fmt.Sprintf("%.4g", stats.Mean))
		table.Row("std", fmt.Sprintf("%.4g", stats.StdDev))
		table.Row("min", fmt.Sprintf("%g", stats.Min))
		table.Row("max", fmt.Sprintf("%g", stats.Max))
		table.Row("feature means", fmt.Sprintf("[%.4g, %.4g]", stats.MinFeatureMean, stats.MaxFeatureMean))
		table.Row("constant features", humanize.Comma(int64(stats.ConstantFeatures)))
		table.Row("NaN values", humanize.Comma(int64(stats.NumNaN)))
		sb.WriteString(table.Render())
		sb.WriteString("\n")
	}
	return sb.String()
}

// featureStats over all the (non NaN) values of a feature matrix.
type featureStats struct {
	Mean, StdDev, Min, Max         float64
	MinFeatureMean, MaxFeatureMean float64
	ConstantFeatures, NumNaN       int
}

func computeStats(m *neuroimaging.Matrix) featureStats {
	rows, cols := m.Dims()
	var stats featureStats
	all := make([]float64, 0, rows*cols)
	columns := make([][]float64, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := float64(m.At(row, col))
			if math.IsNaN(v) {
				stats.NumNaN++
				continue
			}
			all = append(all, v)
			columns[col] = append(columns[col], v)
		}
	}
	if len(all) == 0 {
		stats.Mean, stats.StdDev, stats.Min, stats.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		stats.MinFeatureMean, stats.MaxFeatureMean = math.NaN(), math.NaN()
		return stats
	}
	stats.Mean, stats.StdDev = stat.MeanStdDev(all, nil)
	stats.Min, stats.Max = floats.Min(all), floats.Max(all)

	means := make([]float64, 0, cols)
	for _, column := range columns {
		if len(column) == 0 {
			continue
		}
		means = append(means, stat.Mean(column, nil))
		if floats.Min(column) == floats.Max(column) {
			stats.ConstantFeatures++
		}
	}
	stats.MinFeatureMean, stats.MaxFeatureMean = floats.Min(means), floats.Max(means)
	return stats
}

// formatIndices lists up to maxShown indices.
func formatIndices(indices []int, maxShown int) string {
	parts := make([]string, 0, min(len(indices), maxShown)+1)
	for ii, idx := range indices {
		if ii == maxShown {
			parts = append(parts, fmt.Sprintf("... (%s total)", humanize.Comma(int64(len(indices)))))
			break
		}
		parts = append(parts, fmt.Sprintf("%d", idx))
	}
	return strings.Join(parts, ", ")
}

// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// ReadTable reads a plain ".txt" numeric table: rows separated by new lines, values separated by
// any amount of white space, no header. Blank lines are skipped.
//
// It returns a 2D Array shaped (rows, columns). The role ("snp", "labels", "chrom_index") is only used for
// error messages.
func ReadTable(path, role string) (*Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s table %q", role, path)
	}
	defer func() { _ = f.Close() }()

	// Parse row by row: values are separated by any run of white space, and the rows must all have the
	// same number of values. The parsed values are then stored column by column in a dataframe.
	var columns [][]float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1<<30)
	lineNum, numRows := 0, 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if columns == nil {
			columns = make([][]float64, len(fields))
		} else if len(fields) != len(columns) {
			return nil, newFormatError(path, role, "line %d has %d values, but previous lines have %d",
				lineNum, len(fields), len(columns))
		}
		for col, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, newFormatError(path, role, "line %d: invalid number %q", lineNum, field)
			}
			columns[col] = append(columns[col], value)
		}
		numRows++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s table %q", role, path)
	}
	if numRows == 0 {
		return nil, newFormatError(path, role, "empty table")
	}

	colSeries := make([]series.Series, len(columns))
	for col, values := range columns {
		colSeries[col] = series.New(values, series.Float, fmt.Sprintf("X%d", col))
	}
	df := dataframe.New(colSeries...)
	if df.Err != nil {
		return nil, errors.WithStack(&FormatError{Path: path, Role: role, Reason: df.Err.Error()})
	}
	numRows, numCols := df.Dims()
	arr := &Array{Dims: []int{numRows, numCols}, Data: make([]float32, numRows*numCols)}
	for row := 0; row < numRows; row++ {
		for col := 0; col < numCols; col++ {
			arr.Data[row*numCols+col] = float32(df.Elem(row, col).Float())
		}
	}
	return arr, nil
}

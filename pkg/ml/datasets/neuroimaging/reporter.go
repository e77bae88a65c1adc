// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package neuroimaging

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// Reporter receives the progress and status messages of a load. It is passed to the loader with Config.Reporter,
// there is no package level logging state.
//
// A Reporter is used by one load at a time.
type Reporter interface {
	// Start is called once, before the first step.
	Start(name string, numSteps int)

	// Step is called after each step of the load completes.
	Step(description string)

	// Infof reports a status message.
	Infof(format string, args ...any)

	// Warningf reports a recoverable problem: the load carries on with a fallback.
	Warningf(format string, args ...any)

	// Finish is called once at the end of the load, whether it succeeded or not.
	Finish()
}

// NopReporter discards everything.
type NopReporter struct{}

var _ Reporter = NopReporter{}

// Start implements Reporter.
func (NopReporter) Start(string, int) {}

// Step implements Reporter.
func (NopReporter) Step(string) {}

// Infof implements Reporter.
func (NopReporter) Infof(string, ...any) {}

// Warningf implements Reporter.
func (NopReporter) Warningf(string, ...any) {}

// Finish implements Reporter.
func (NopReporter) Finish() {}

// LogReporter reports to klog. Steps are only logged with verbosity level 1 or higher.
type LogReporter struct {
	name      string
	numSteps  int
	step      int
	startTime time.Time
}

var _ Reporter = &LogReporter{}

// NewLogReporter returns a Reporter that logs with klog. It is the default Reporter.
func NewLogReporter() *LogReporter { return &LogReporter{} }

// Start implements Reporter, logging the start of the load.
func (r *LogReporter) Start(name string, numSteps int) {
	r.name, r.numSteps, r.step = name, numSteps, 0
	r.startTime = time.Now()
	klog.Infof("Forming %s dataset", name)
}

// Step implements Reporter. Steps are logged with verbosity 1.
func (r *LogReporter) Step(description string) {
	r.step++
	klog.V(1).Infof("%s dataset [%d/%d]: %s", r.name, r.step, r.numSteps, description)
}

// Infof implements Reporter.
func (r *LogReporter) Infof(format string, args ...any) {
	klog.InfoDepth(1, fmt.Sprintf(format, args...))
}

// Warningf implements Reporter.
func (r *LogReporter) Warningf(format string, args ...any) {
	klog.WarningDepth(1, fmt.Sprintf(format, args...))
}

// Finish implements Reporter, logging the elapsed time with verbosity 1.
func (r *LogReporter) Finish() {
	klog.V(1).Infof("%s dataset: %d/%d steps in %s", r.name, r.step, r.numSteps, time.Since(r.startTime))
}

// ProgressBarReporter displays the steps of the load in a progress bar, and logs the messages with klog.
type ProgressBarReporter struct {
	LogReporter
	w   io.Writer
	bar *progressbar.ProgressBar
}

var _ Reporter = &ProgressBarReporter{}

// ProgressbarStyle used by ProgressBarReporter. Defaults to the ASCII version.
var ProgressbarStyle = progressbar.ThemeASCII

// NewProgressBarReporter creates a Reporter that draws a progress bar into w (usually os.Stderr).
func NewProgressBarReporter(w io.Writer) *ProgressBarReporter {
	return &ProgressBarReporter{w: w}
}

// Start implements Reporter, creating the progress bar.
func (r *ProgressBarReporter) Start(name string, numSteps int) {
	r.LogReporter.Start(name, numSteps)
	r.bar = progressbar.NewOptions(numSteps,
		progressbar.OptionSetDescription(fmt.Sprintf("Forming %s dataset: ", name)),
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetTheme(ProgressbarStyle),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
	)
}

// Step implements Reporter, advancing the progress bar.
func (r *ProgressBarReporter) Step(description string) {
	r.LogReporter.Step(description)
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

// Finish implements Reporter, closing the progress bar.
func (r *ProgressBarReporter) Finish() {
	r.LogReporter.Finish()
	if r.bar != nil {
		_ = r.bar.Close()
		_, _ = fmt.Fprintln(r.w)
		r.bar = nil
	}
}

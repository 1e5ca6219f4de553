// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bpstat

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/cva6-bp/bpstats/bpfmt"
)

// A Metric selects one of the two measured quantities.
type Metric int

const (
	// IPC is throughput in instructions per cycle.
	IPC Metric = iota
	// MissRate is the percentage of mispredicted branches.
	MissRate
)

// Metrics lists every Metric in rendering order.
var Metrics = []Metric{IPC, MissRate}

func (m Metric) String() string {
	switch m {
	case IPC:
		return "IPC"
	case MissRate:
		return "MissRate"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Label returns the axis label of m.
func (m Metric) Label() string {
	if m == MissRate {
		return "Miss Rate (%)"
	}
	return "IPC"
}

// Stem returns the file name stem used for figures of m.
func (m Metric) Stem() string {
	if m == MissRate {
		return "miss_rate"
	}
	return "ipc"
}

// MeanLabel names the mean used for m, e.g. "Harmonic Mean".
func (m Metric) MeanLabel() string {
	if m == IPC {
		return "Harmonic Mean"
	}
	return "Arithmetic Mean"
}

// Get returns the m component of v.
func (m Metric) Get(v bpfmt.Value) float64 {
	if m == MissRate {
		return v.MissRate
	}
	return v.IPC
}

// Mean returns the mean of xs appropriate to m: the harmonic mean
// for IPC and the arithmetic mean for MissRate.
func (m Metric) Mean(xs []float64) float64 {
	if m == IPC {
		return HarmonicMean(xs)
	}
	return ArithmeticMean(xs)
}

// HarmonicMean returns the harmonic mean of the positive values in
// xs. Zero, negative and NaN values are left out. If no value is
// positive, it returns 0.
func HarmonicMean(xs []float64) float64 {
	pos := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x > 0 {
			pos = append(pos, x)
		}
	}
	if len(pos) == 0 {
		return 0
	}
	return 1 / stats.Mean(vec.Map(recip, pos))
}

func recip(x float64) float64 { return 1 / x }

// ArithmeticMean returns the mean of xs, or 0 if xs is empty.
func ArithmeticMean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stats.Mean(xs)
}

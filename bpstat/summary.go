// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bpstat aggregates a parsed branch-predictor log into the
// summaries the charts and tables are drawn from.
//
// Throughput (IPC) is always combined with the harmonic mean and
// miss rate with the arithmetic mean. Only the storage budgets in
// Sizes take part in aggregation.
package bpstat

import (
	"github.com/cva6-bp/bpstats/bpfmt"
)

// Sizes are the nominal storage budgets under study, in kilobits,
// in ascending order.
var Sizes = []string{"32", "64", "128", "256", "512"}

// IsSize reports whether label is one of Sizes.
func IsSize(label string) bool {
	for _, s := range Sizes {
		if s == label {
			return true
		}
	}
	return false
}

// A Summary is the aggregated view of a bpfmt.Model. It is built by
// Aggregate and must not be modified.
//
// Every map is fully populated for the implementations and
// benchmarks of the model, so lookups never need presence checks:
// a combination without data holds the zero Value.
type Summary struct {
	// ImplSizeMean[impl][size] is the mean over benchmarks of
	// impl's measurements at size.
	ImplSizeMean map[string]map[string]bpfmt.Value

	// BenchSize[bench][size][impl] is the raw measurement.
	// Missing measurements are absent.
	BenchSize map[string]map[string]map[string]bpfmt.Value

	// ImplOverall[impl] is the mean over every (benchmark, size)
	// pair measured for impl.
	ImplOverall map[string]bpfmt.Value

	// ImplBenchMean[impl][bench] is the mean over sizes of impl's
	// measurements of bench.
	ImplBenchMean map[string]map[string]bpfmt.Value

	// Counts[impl][size] is the number of benchmarks that
	// contributed to ImplSizeMean[impl][size].
	Counts map[string]map[string]int

	impls, benches []string
}

// Implementations returns the implementation names in ascending
// order.
func (s *Summary) Implementations() []string { return s.impls }

// Benchmarks returns the benchmark names in ascending order.
func (s *Summary) Benchmarks() []string { return s.benches }

// Lookup returns the raw measurement of impl on bench at size.
func (s *Summary) Lookup(bench, size, impl string) (bpfmt.Value, bool) {
	v, ok := s.BenchSize[bench][size][impl]
	return v, ok
}

// HasSizes reports whether impl has data at any of Sizes.
func (s *Summary) HasSizes(impl string) bool {
	for _, size := range Sizes {
		if s.Counts[impl][size] > 0 {
			return true
		}
	}
	return false
}

// sampler accumulates the two metrics of a set of measurements.
type sampler struct {
	ipc, miss []float64
}

func (sp *sampler) add(v bpfmt.Value) {
	sp.ipc = append(sp.ipc, v.IPC)
	sp.miss = append(sp.miss, v.MissRate)
}

func (sp *sampler) mean() bpfmt.Value {
	return bpfmt.Value{
		IPC:      IPC.Mean(sp.ipc),
		MissRate: MissRate.Mean(sp.miss),
	}
}

// Aggregate computes the Summary of m. Size labels outside Sizes,
// including bpfmt.NoSize, are ignored.
func Aggregate(m *bpfmt.Model) *Summary {
	s := &Summary{
		ImplSizeMean:  make(map[string]map[string]bpfmt.Value),
		BenchSize:     make(map[string]map[string]map[string]bpfmt.Value),
		ImplOverall:   make(map[string]bpfmt.Value),
		ImplBenchMean: make(map[string]map[string]bpfmt.Value),
		Counts:        make(map[string]map[string]int),
		impls:         m.Implementations(),
		benches:       m.Benchmarks(),
	}

	for _, bench := range s.benches {
		bySize := make(map[string]map[string]bpfmt.Value)
		for _, size := range Sizes {
			byImpl := make(map[string]bpfmt.Value)
			for _, impl := range s.impls {
				if v, ok := m.Get(bench, impl, size); ok {
					byImpl[impl] = v
				}
			}
			bySize[size] = byImpl
		}
		s.BenchSize[bench] = bySize
	}

	for _, impl := range s.impls {
		var overall sampler
		sizeMeans := make(map[string]bpfmt.Value)
		counts := make(map[string]int)
		for _, size := range Sizes {
			var sp sampler
			for _, bench := range s.benches {
				if v, ok := m.Get(bench, impl, size); ok {
					sp.add(v)
					overall.add(v)
				}
			}
			sizeMeans[size] = sp.mean()
			counts[size] = len(sp.ipc)
		}
		s.ImplSizeMean[impl] = sizeMeans
		s.Counts[impl] = counts
		s.ImplOverall[impl] = overall.mean()

		benchMeans := make(map[string]bpfmt.Value)
		for _, bench := range s.benches {
			var sp sampler
			for _, size := range Sizes {
				if v, ok := m.Get(bench, impl, size); ok {
					sp.add(v)
				}
			}
			benchMeans[bench] = sp.mean()
		}
		s.ImplBenchMean[impl] = benchMeans
	}
	return s
}

// SizeMeans returns, for one size, the mean of each implementation
// over benchmarks, in the order of Implementations.
func (s *Summary) SizeMeans(size string, metric Metric) []float64 {
	out := make([]float64, len(s.impls))
	for i, impl := range s.impls {
		out[i] = metric.Get(s.ImplSizeMean[impl][size])
	}
	return out
}

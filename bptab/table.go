// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bptab builds per-implementation tables of branch-predictor
// results and formats them as LaTeX, plain text or HTML.
package bptab

import (
	"fmt"

	"github.com/cva6-bp/bpstats/bpstat"
)

// DefaultBenchmarks are the table columns used when the caller does
// not choose any: the Parboil suite, in its usual order.
var DefaultBenchmarks = []string{
	"bfs", "cutcp", "histo", "lbm", "mri-gridding", "mri-q",
	"sad", "sgemm", "spmv", "stencil", "tpacf",
}

// A Cell is one numeric table entry. Cells without data print as "-".
type Cell struct {
	Value float64
	OK    bool
}

func (c Cell) String() string {
	if !c.OK {
		return "-"
	}
	return fmt.Sprintf("%.2f", c.Value)
}

// A Row holds one size's values, one Cell per benchmark column.
type Row struct {
	Size  string
	Cells []Cell
}

// A Table reports one metric of one implementation: a row per
// measured size and a column per benchmark.
type Table struct {
	Implementation string
	Metric         bpstat.Metric
	Benchmarks     []string
	Rows           []Row

	// Mean holds each benchmark's mean over the rows, computed with
	// the metric's mean.
	Mean []Cell
}

// Tables returns the tables of every implementation in sum that has
// data at one of bpstat.Sizes, ordered by implementation. Each
// implementation gets a miss rate table followed by an IPC table.
// If benchmarks is empty, DefaultBenchmarks is used.
//
// Sizes at which an implementation has no data get no row.
func Tables(sum *bpstat.Summary, benchmarks []string) []*Table {
	if len(benchmarks) == 0 {
		benchmarks = DefaultBenchmarks
	}
	var out []*Table
	for _, impl := range sum.Implementations() {
		if !sum.HasSizes(impl) {
			continue
		}
		for _, metric := range []bpstat.Metric{bpstat.MissRate, bpstat.IPC} {
			out = append(out, build(sum, impl, metric, benchmarks))
		}
	}
	return out
}

func build(sum *bpstat.Summary, impl string, metric bpstat.Metric, benchmarks []string) *Table {
	t := &Table{
		Implementation: impl,
		Metric:         metric,
		Benchmarks:     benchmarks,
		Mean:           make([]Cell, len(benchmarks)),
	}
	for _, size := range bpstat.Sizes {
		if sum.Counts[impl][size] == 0 {
			continue
		}
		row := Row{Size: size, Cells: make([]Cell, len(benchmarks))}
		for i, bench := range benchmarks {
			if v, ok := sum.Lookup(bench, size, impl); ok {
				row.Cells[i] = Cell{metric.Get(v), true}
				t.Mean[i].OK = true
			}
		}
		t.Rows = append(t.Rows, row)
	}
	for i, bench := range benchmarks {
		if t.Mean[i].OK {
			t.Mean[i].Value = metric.Get(sum.ImplBenchMean[impl][bench])
		}
	}
	return t
}

// Title returns the column group heading of t.
func (t *Table) Title() string {
	if t.Metric == bpstat.MissRate {
		return "Miss rate (%)"
	}
	return "IPC"
}

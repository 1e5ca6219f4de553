// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bpfmt reads the text log written by the branch-predictor
// simulator and collects it into a Model.
//
// A log is a sequence of implementation blocks separated by
// Delimiter:
//
//	Implementation: Gshare (64 Kbits)
//	bfs IPC: 1.20 Ratio of branch misses: 5.00 %
//	sgemm IPC: 2.31 Ratio of branch misses: 0.41 %
//	----------------------------
//	Implementation: Bimodal ( Kbits)
//	...
//
// Blocks whose header is not recognized are reported by Reader as
// *SyntaxError records and contribute nothing to the Model.
package bpfmt

import (
	"bytes"
	"os"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
)

// A Value holds the two metrics measured for one simulation run.
type Value struct {
	IPC      float64 // instructions per cycle
	MissRate float64 // branch misses, in percent
}

// A Measurement is one benchmark run of one implementation at one
// size.
type Measurement struct {
	Benchmark      string
	Implementation string
	Size           string // kilobits as decimal text, or NoSize
	Value
}

// A Model maps benchmark → implementation → size label → Value.
//
// A Model is built once by Add and is not modified afterward.
type Model struct {
	data map[string]map[string]map[string]Value
	n    int
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{data: make(map[string]map[string]map[string]Value)}
}

// Add records ms. A later measurement of the same benchmark,
// implementation and size replaces the earlier one.
func (m *Model) Add(ms Measurement) {
	impls := m.data[ms.Benchmark]
	if impls == nil {
		impls = make(map[string]map[string]Value)
		m.data[ms.Benchmark] = impls
	}
	sizes := impls[ms.Implementation]
	if sizes == nil {
		sizes = make(map[string]Value)
		impls[ms.Implementation] = sizes
	}
	if _, ok := sizes[ms.Size]; !ok {
		m.n++
	}
	sizes[ms.Size] = ms.Value
}

// AddBlock records every measurement of b.
func (m *Model) AddBlock(b *Block) {
	for _, ms := range b.Measurements {
		m.Add(ms)
	}
}

// Get returns the value recorded for (bench, impl, size).
func (m *Model) Get(bench, impl, size string) (Value, bool) {
	v, ok := m.data[bench][impl][size]
	return v, ok
}

// Has reports whether bench has any data for impl.
func (m *Model) Has(bench, impl string) bool {
	return len(m.data[bench][impl]) > 0
}

// Len returns the number of distinct measurements in m.
func (m *Model) Len() int {
	return m.n
}

// Benchmarks returns the benchmark names in ascending order.
func (m *Model) Benchmarks() []string {
	out := make([]string, 0, len(m.data))
	for bench := range m.data {
		out = append(out, bench)
	}
	sort.Strings(out)
	return out
}

// Implementations returns the names of all implementations measured
// by any benchmark, in ascending order.
func (m *Model) Implementations() []string {
	var all []string
	for _, impls := range m.data {
		for impl := range impls {
			all = append(all, impl)
		}
	}
	if len(all) == 0 {
		return nil
	}
	out := slice.Nub(all).([]string)
	slice.Sort(out)
	return out
}

// Sizes returns the size labels recorded for impl by any benchmark,
// in ascending order of their text.
func (m *Model) Sizes(impl string) []string {
	var all []string
	for _, impls := range m.data {
		for size := range impls[impl] {
			all = append(all, size)
		}
	}
	if len(all) == 0 {
		return nil
	}
	out := slice.Nub(all).([]string)
	slice.Sort(out)
	return out
}

// Measurements returns every measurement in m ordered by benchmark,
// implementation and size label.
func (m *Model) Measurements() []Measurement {
	out := make([]Measurement, 0, m.n)
	for bench, impls := range m.data {
		for impl, sizes := range impls {
			for size, v := range sizes {
				out = append(out, Measurement{bench, impl, size, v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if a.Benchmark != b.Benchmark {
			return a.Benchmark < b.Benchmark
		}
		if a.Implementation != b.Implementation {
			return a.Implementation < b.Implementation
		}
		return a.Size < b.Size
	})
	return out
}

// Parse parses a complete simulator log. Unrecognized blocks are
// dropped silently.
func Parse(text []byte) *Model {
	m, _ := read(NewReader(bytes.NewReader(text), ""), nil)
	return m
}

// ParseFile reads and parses the log at path. warn, if non-nil, is
// called for every dropped block. The only errors are I/O errors.
func ParseFile(path string, warn func(*SyntaxError)) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(NewReader(f, path), warn)
}

func read(r *Reader, warn func(*SyntaxError)) (*Model, error) {
	m := NewModel()
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *Block:
			m.AddBlock(rec)
		case *SyntaxError:
			if warn != nil {
				warn(rec)
			}
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bpstat

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cva6-bp/bpstats/bpfmt"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Abs(b))
}

func TestHarmonicMean(t *testing.T) {
	check := func(xs []float64, want float64) {
		t.Helper()
		if got := HarmonicMean(xs); !near(got, want) {
			t.Errorf("HarmonicMean(%v) = %v, want %v", xs, got, want)
		}
	}
	check([]float64{1, 2, 4}, 3/(1+0.5+0.25))
	check([]float64{1, 0, 2, 4}, 3/(1+0.5+0.25)) // zero is left out, not a zero term
	check([]float64{1.20, 1.50}, 2/(1/1.20+1/1.50))
	check([]float64{2.5}, 2.5)
	check(nil, 0)
	check([]float64{0, 0}, 0)
}

func TestArithmeticMean(t *testing.T) {
	if got := ArithmeticMean([]float64{5, 3, 0, 4}); !near(got, 3) {
		t.Errorf("ArithmeticMean = %v, want 3", got)
	}
	if got := ArithmeticMean(nil); got != 0 {
		t.Errorf("ArithmeticMean(nil) = %v, want 0", got)
	}
}

func TestMetricMean(t *testing.T) {
	xs := []float64{1, 2, 4}
	if got := IPC.Mean(xs); !near(got, HarmonicMean(xs)) {
		t.Errorf("IPC.Mean = %v", got)
	}
	if got := MissRate.Mean(xs); !near(got, 7.0/3) {
		t.Errorf("MissRate.Mean = %v", got)
	}
	v := bpfmt.Value{IPC: 1.5, MissRate: 4}
	if IPC.Get(v) != 1.5 || MissRate.Get(v) != 4 {
		t.Errorf("Get returned wrong components")
	}
}

func model(ms ...bpfmt.Measurement) *bpfmt.Model {
	m := bpfmt.NewModel()
	for _, x := range ms {
		m.Add(x)
	}
	return m
}

func TestAggregateTwoBlocks(t *testing.T) {
	s := Aggregate(model(
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "Bimodal", Size: "32", Value: bpfmt.Value{IPC: 1.20, MissRate: 5.00}},
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "Bimodal", Size: "64", Value: bpfmt.Value{IPC: 1.50, MissRate: 3.00}},
	))
	overall := s.ImplOverall["Bimodal"]
	if want := 2 / (1/1.20 + 1/1.50); !near(overall.IPC, want) || !near(overall.IPC, 4.0/3) {
		t.Errorf("overall IPC = %v, want %v", overall.IPC, want)
	}
	if !near(overall.MissRate, 4) {
		t.Errorf("overall miss rate = %v, want 4", overall.MissRate)
	}
	if got := s.ImplSizeMean["Bimodal"]["32"]; !near(got.IPC, 1.20) || !near(got.MissRate, 5.00) {
		t.Errorf("ImplSizeMean[Bimodal][32] = %v", got)
	}
	if v, ok := s.Lookup("bfs", "64", "Bimodal"); !ok || v.IPC != 1.50 {
		t.Errorf("Lookup(bfs, 64, Bimodal) = %v, %v", v, ok)
	}
}

func TestAggregateMissing(t *testing.T) {
	s := Aggregate(model(
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "X", Size: "32", Value: bpfmt.Value{IPC: 1, MissRate: 2}},
		bpfmt.Measurement{Benchmark: "sad", Implementation: "X", Size: "64", Value: bpfmt.Value{IPC: 2, MissRate: 1}},
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "Y", Size: "128", Value: bpfmt.Value{IPC: 3, MissRate: 1}},
	))
	v, ok := s.ImplSizeMean["X"]["128"]
	if !ok {
		t.Fatalf("ImplSizeMean[X][128] missing, want zero aggregate")
	}
	if v != (bpfmt.Value{}) {
		t.Errorf("ImplSizeMean[X][128] = %v, want zero", v)
	}
	if n := s.Counts["X"]["128"]; n != 0 {
		t.Errorf("Counts[X][128] = %d, want 0", n)
	}
	if n := s.Counts["X"]["32"]; n != 1 {
		t.Errorf("Counts[X][32] = %d, want 1", n)
	}
	if _, ok := s.Lookup("sad", "32", "X"); ok {
		t.Errorf("Lookup(sad, 32, X) found data")
	}
	if got, want := s.SizeMeans("128", IPC), []float64{0, 3}; !cmp.Equal(got, want, cmp.Comparer(near)) {
		t.Errorf("SizeMeans(128, IPC) = %v, want %v", got, want)
	}
}

func TestAggregateIgnoresOtherSizes(t *testing.T) {
	s := Aggregate(model(
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "Perfect", Size: bpfmt.NoSize, Value: bpfmt.Value{IPC: 2, MissRate: 0}},
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "Gshare", Size: "48", Value: bpfmt.Value{IPC: 2, MissRate: 1}},
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "Gshare", Size: "64", Value: bpfmt.Value{IPC: 1, MissRate: 3}},
	))
	if s.HasSizes("Perfect") {
		t.Errorf("HasSizes(Perfect) = true, want false")
	}
	if !s.HasSizes("Gshare") {
		t.Errorf("HasSizes(Gshare) = false, want true")
	}
	if got := s.ImplOverall["Gshare"]; got != (bpfmt.Value{IPC: 1, MissRate: 3}) {
		t.Errorf("ImplOverall[Gshare] = %v, want only the 64 Kbits run", got)
	}
	if got := s.ImplOverall["Perfect"]; got != (bpfmt.Value{}) {
		t.Errorf("ImplOverall[Perfect] = %v, want zero", got)
	}
}

func TestAggregateBenchMean(t *testing.T) {
	s := Aggregate(model(
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "TAGE", Size: "32", Value: bpfmt.Value{IPC: 1, MissRate: 6}},
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "TAGE", Size: "64", Value: bpfmt.Value{IPC: 2, MissRate: 4}},
		bpfmt.Measurement{Benchmark: "bfs", Implementation: "TAGE", Size: "128", Value: bpfmt.Value{IPC: 4, MissRate: 2}},
	))
	got := s.ImplBenchMean["TAGE"]["bfs"]
	if !near(got.IPC, 3/(1+0.5+0.25)) || !near(got.MissRate, 4) {
		t.Errorf("ImplBenchMean[TAGE][bfs] = %v", got)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	m, err := bpfmt.ParseFile("../bpfmt/testdata/stats_bp.txt", nil)
	if err != nil {
		t.Fatal(err)
	}
	a, b := Aggregate(m), Aggregate(m)
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Summary{})); diff != "" {
		t.Errorf("Aggregate is not deterministic (-first +second):\n%s", diff)
	}
	if got, want := a.Implementations(), []string{"Bimodal", "Gshare", "Perfect"}; !cmp.Equal(got, want) {
		t.Errorf("Implementations() = %q, want %q", got, want)
	}
}

func TestIsSize(t *testing.T) {
	for _, s := range Sizes {
		if !IsSize(s) {
			t.Errorf("IsSize(%q) = false", s)
		}
	}
	for _, s := range []string{bpfmt.NoSize, "16", "1024", ""} {
		if IsSize(s) {
			t.Errorf("IsSize(%q) = true", s)
		}
	}
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bpfmt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const twoBlocks = "Implementation: Bimodal (32 Kbits)\n" +
	"bfs IPC: 1.20 Ratio of branch misses: 5.00 %\n" +
	Delimiter + "\n" +
	"Implementation: Bimodal (64 Kbits)\n" +
	"bfs IPC: 1.50 Ratio of branch misses: 3.00 %\n"

func TestParseTwoBlocks(t *testing.T) {
	m := Parse([]byte(twoBlocks))
	want := []Measurement{
		{"bfs", "Bimodal", "32", Value{1.20, 5.00}},
		{"bfs", "Bimodal", "64", Value{1.50, 3.00}},
	}
	if diff := cmp.Diff(want, m.Measurements()); diff != "" {
		t.Errorf("measurements mismatch (-want +got):\n%s", diff)
	}
	if got := m.Benchmarks(); !cmp.Equal(got, []string{"bfs"}) {
		t.Errorf("Benchmarks() = %q", got)
	}
	if got := m.Implementations(); !cmp.Equal(got, []string{"Bimodal"}) {
		t.Errorf("Implementations() = %q", got)
	}
}

func TestModelLastWriteWins(t *testing.T) {
	m := Parse([]byte(twoBlocks + Delimiter + "\nImplementation: Bimodal (32 Kbits)\nbfs IPC: 0.90 Ratio of branch misses: 7.00 %\n"))
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	v, ok := m.Get("bfs", "Bimodal", "32")
	if !ok || v != (Value{0.90, 7.00}) {
		t.Errorf("Get(bfs, Bimodal, 32) = %v, %v; want {0.9 7}, true", v, ok)
	}
}

func TestModelNames(t *testing.T) {
	m := NewModel()
	for _, ms := range []Measurement{
		{"sgemm", "TAGE", "512", Value{2, 1}},
		{"bfs", "Gshare", "64", Value{1, 2}},
		{"bfs", "TAGE", "32", Value{1, 3}},
		{"sgemm", "Bimodal", NoSize, Value{1, 4}},
		{"bfs", "TAGE", "128", Value{1, 3}},
	} {
		m.Add(ms)
	}
	if got, want := m.Benchmarks(), []string{"bfs", "sgemm"}; !cmp.Equal(got, want) {
		t.Errorf("Benchmarks() = %q, want %q", got, want)
	}
	if got, want := m.Implementations(), []string{"Bimodal", "Gshare", "TAGE"}; !cmp.Equal(got, want) {
		t.Errorf("Implementations() = %q, want %q", got, want)
	}
	if got, want := m.Sizes("TAGE"), []string{"128", "32", "512"}; !cmp.Equal(got, want) {
		t.Errorf("Sizes(TAGE) = %q, want %q", got, want)
	}
	if got := m.Sizes("Local"); got != nil {
		t.Errorf("Sizes(Local) = %q, want nil", got)
	}
	if !m.Has("sgemm", "Bimodal") || m.Has("sgemm", "Gshare") {
		t.Errorf("Has reports wrong presence")
	}
}

func TestEmptyModel(t *testing.T) {
	m := Parse(nil)
	if m.Len() != 0 || m.Implementations() != nil || len(m.Benchmarks()) != 0 {
		t.Errorf("empty input produced %+v", m.Measurements())
	}
}

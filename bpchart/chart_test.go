// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bpchart

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot/vg"

	"github.com/cva6-bp/bpstats/bpfmt"
	"github.com/cva6-bp/bpstats/bpsize"
	"github.com/cva6-bp/bpstats/bpstat"
)

func summary(ms ...bpfmt.Measurement) *bpstat.Summary {
	m := bpfmt.NewModel()
	for _, x := range ms {
		m.Add(x)
	}
	return bpstat.Aggregate(m)
}

func meas(bench, impl, size string, ipc, miss float64) bpfmt.Measurement {
	return bpfmt.Measurement{Benchmark: bench, Implementation: impl, Size: size, Value: bpfmt.Value{IPC: ipc, MissRate: miss}}
}

var testSummary = summary(
	meas("bfs", "X", "32", 1, 4),
	meas("sad", "X", "32", 2, 2),
	meas("bfs", "X", "64", 2, 1),
	meas("bfs", "Gshare", "32", 1.5, 3),
	meas("bfs", "Gshare", "128", 1.8, 1),
	meas("sad", "Gshare", "512", 2.5, 0.5),
	meas("bfs", "Perfect", bpfmt.NoSize, 3, 0),
)

func TestMeanBars(t *testing.T) {
	figs := MeanBars(testSummary, DefaultStyle())
	if len(figs) != 2 {
		t.Fatalf("got %d figures, want 2", len(figs))
	}
	f := figs[0]
	if f.Base != "ipc_mean_comparison" || figs[1].Base != "miss_rate_mean_comparison" {
		t.Errorf("figure names %q, %q", f.Base, figs[1].Base)
	}
	wantGroups := []string{"32", "64", "128", "256", "512", "Average"}
	if !cmp.Equal(f.Groups, wantGroups) {
		t.Errorf("groups = %q, want %q", f.Groups, wantGroups)
	}
	var labels []string
	for _, s := range f.Series {
		labels = append(labels, s.Label)
		if len(s.Y) != len(wantGroups) {
			t.Errorf("series %s has %d bars, want %d", s.Label, len(s.Y), len(wantGroups))
		}
	}
	if want := []string{"Gshare", "Perfect", "X"}; !cmp.Equal(labels, want) {
		t.Errorf("series = %q, want %q", labels, want)
	}

	// X has no data at 128 Kbits: a zero-height bar, not a gap.
	x := f.Series[2]
	if x.Y[2] != 0 {
		t.Errorf("X at 128 = %v, want 0", x.Y[2])
	}
	if want := 2 / (1.0 + 1/2.0); math.Abs(x.Y[0]-want) > 1e-12 {
		t.Errorf("X at 32 = %v, want %v", x.Y[0], want)
	}
	if want := testSummary.ImplOverall["X"].IPC; x.Y[5] != want {
		t.Errorf("X average = %v, want %v", x.Y[5], want)
	}
	// Sentinel-size data never reaches the bar groups.
	for i, y := range f.Series[1].Y {
		if y != 0 {
			t.Errorf("Perfect bar %d = %v, want 0", i, y)
		}
	}
	if miss := figs[1].Series[2].Y; miss[0] != 3 || miss[1] != 1 {
		t.Errorf("X miss rates = %v", miss)
	}
}

func TestSizeBars(t *testing.T) {
	figs := SizeBars(testSummary, DefaultStyle())
	if len(figs) != 2*len(bpstat.Sizes) {
		t.Fatalf("got %d figures, want %d", len(figs), 2*len(bpstat.Sizes))
	}
	f := figs[0]
	if f.Base != "ipc_32K" || f.Dir != "size_comparison_plots" {
		t.Errorf("first figure is %s/%s", f.Dir, f.Base)
	}
	if want := []string{"bfs", "sad", "Average"}; !cmp.Equal(f.Groups, want) {
		t.Errorf("groups = %q, want %q", f.Groups, want)
	}
	// Gshare has bfs but not sad at 32 Kbits.
	if got, want := f.Series[0].Y, []float64{1.5, 0, 1.5}; !cmp.Equal(got, want, cmp.Comparer(near)) {
		t.Errorf("Gshare at 32 = %v, want %v", got, want)
	}
	if figs[1].Base != "miss_rate_32K" {
		t.Errorf("second figure is %s", figs[1].Base)
	}
	if f.Width <= DefaultStyle().Width {
		t.Errorf("per-size figures are not wider than the default")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12
}

func TestSizeSweep(t *testing.T) {
	figs, err := SizeSweep(testSummary, DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	if len(figs) != 4 {
		t.Fatalf("got %d figures, want 4", len(figs))
	}
	var names []string
	for _, f := range figs {
		names = append(names, f.Base)
	}
	if want := []string{"bfs_ipc", "bfs_miss_rate", "sad_ipc", "sad_miss_rate"}; !cmp.Equal(names, want) {
		t.Errorf("figures = %q, want %q", names, want)
	}

	bfs := figs[0]
	var labels []string
	for _, s := range bfs.Series {
		labels = append(labels, s.Label)
	}
	// Perfect has only sentinel-size data and draws no line.
	if want := []string{"Gshare", "X"}; !cmp.Equal(labels, want) {
		t.Errorf("bfs lines = %q, want %q", labels, want)
	}
	g := bfs.Series[0]
	x32, _ := bpsize.EffectiveSize("Gshare", 32)
	x128, _ := bpsize.EffectiveSize("Gshare", 128)
	if want := []float64{x32, x128}; !cmp.Equal(g.X, want) {
		t.Errorf("Gshare X = %v, want %v", g.X, want)
	}
	if want := []float64{1.5, 1.8}; !cmp.Equal(g.Y, want) {
		t.Errorf("Gshare Y = %v, want %v", g.Y, want)
	}
	if want := []float64{32, 64}; !cmp.Equal(bfs.Series[1].X, want) {
		t.Errorf("X positions = %v, want nominal %v", bfs.Series[1].X, want)
	}

	// Tick labels show nominal sizes at nominal positions.
	ticks := bfs.Plot.X.Tick.Marker.Ticks(0, 600)
	var tickLabels []string
	for _, tk := range ticks {
		tickLabels = append(tickLabels, tk.Label)
		if want := map[string]float64{"32": 32, "64": 64, "128": 128, "256": 256, "512": 512}[tk.Label]; tk.Value != want {
			t.Errorf("tick %q at %v, want %v", tk.Label, tk.Value, want)
		}
	}
	if !cmp.Equal(tickLabels, bpstat.Sizes) {
		t.Errorf("ticks = %q, want %q", tickLabels, bpstat.Sizes)
	}

	sad := figs[2]
	if len(sad.Series) != 2 || sad.Series[1].Label != "X" || len(sad.Series[1].X) != 1 {
		t.Errorf("sad lines = %+v", sad.Series)
	}
}

func TestStyleDefaults(t *testing.T) {
	st := Style{Palette: "Set1", BarWidth: vg.Points(4)}.withDefaults()
	def := DefaultStyle()
	if st.Width != def.Width || st.DPI != def.DPI || st.LineWidth != def.LineWidth {
		t.Errorf("zero fields not defaulted: %+v", st)
	}
	if st.Palette != "Set1" || st.BarWidth != vg.Points(4) {
		t.Errorf("set fields overwritten: %+v", st)
	}
	if cs := st.colors(20); len(cs) != 20 {
		t.Errorf("colors(20) returned %d colors", len(cs))
	}
	bad := Style{Palette: "NoSuchPalette"}
	if cs := bad.colors(2); len(cs) != 2 || cs[0] == nil {
		t.Errorf("fallback colors = %v", cs)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats("png, EPS,svg,,pdf")
	if err != nil {
		t.Fatal(err)
	}
	if want := []Format{PNG, EPS, SVG, PDF}; !cmp.Equal(got, want) {
		t.Errorf("ParseFormats = %v, want %v", got, want)
	}
	if _, err := ParseFormats("png,gif"); err == nil {
		t.Errorf("ParseFormats accepted gif")
	}
}

func TestWrite(t *testing.T) {
	st := DefaultStyle()
	st.Width, st.Height, st.DPI = 4*vg.Inch, 3*vg.Inch, 50
	figs := MeanBars(testSummary, st)
	sweep, err := SizeSweep(testSummary, st)
	if err != nil {
		t.Fatal(err)
	}
	figs = append(figs, sweep...)

	root := t.TempDir()
	formats := []Format{PNG, EPS, SVG, PDF}
	if err := WriteAll(root, figs, formats); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"mean_comparison_plots/png/ipc_mean_comparison.png",
		"mean_comparison_plots/eps/ipc_mean_comparison.eps",
		"mean_comparison_plots/svg/miss_rate_mean_comparison.svg",
		"mean_comparison_plots/pdf/miss_rate_mean_comparison.pdf",
		"benchmark_plots/png/bfs_ipc.png",
		"benchmark_plots/eps/sad_miss_rate.eps",
	} {
		fi, err := os.Stat(filepath.Join(root, want))
		if err != nil {
			t.Errorf("missing output: %v", err)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", want)
		}
	}
}

func TestWriteUnwritable(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(root, nil, 0666); err != nil {
		t.Fatal(err)
	}
	figs := MeanBars(testSummary, DefaultStyle())
	if err := figs[0].Write(root, DefaultFormats); err == nil {
		t.Errorf("Write under a regular file succeeded")
	}
}

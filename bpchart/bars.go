// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bpchart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cva6-bp/bpstats/bpstat"
)

// averageGroup labels the trailing group of every bar figure.
const averageGroup = "Average"

// MeanBars renders one figure per metric comparing implementations
// across storage budgets. Each budget in bpstat.Sizes is a group
// holding one bar per implementation: the mean over benchmarks. A
// trailing "Average" group holds each implementation's overall mean.
// Missing data draws a zero-height bar.
func MeanBars(sum *bpstat.Summary, st Style) []*Figure {
	st = st.withDefaults()
	impls := sum.Implementations()
	groups := append(append([]string(nil), bpstat.Sizes...), averageGroup)

	var figs []*Figure
	for _, metric := range bpstat.Metrics {
		series := make([]Series, len(impls))
		for i, impl := range impls {
			series[i] = Series{Label: impl, Y: make([]float64, 0, len(groups))}
		}
		for _, size := range bpstat.Sizes {
			for i, y := range sum.SizeMeans(size, metric) {
				series[i].Y = append(series[i].Y, y)
			}
		}
		for i, impl := range impls {
			series[i].Y = append(series[i].Y, metric.Get(sum.ImplOverall[impl]))
		}

		title := metric.MeanLabel() + " IPC Across All Benchmarks"
		yLabel := metric.MeanLabel() + " IPC"
		if metric == bpstat.MissRate {
			title = metric.MeanLabel() + " Miss Rate Across All Benchmarks"
			yLabel = "Mean Miss Rate (%)"
		}
		f := &Figure{
			Dir:    "mean_comparison_plots",
			Base:   metric.Stem() + "_mean_comparison",
			Groups: groups,
			Series: series,
			Width:  st.Width,
			Height: st.Height,
			DPI:    st.DPI,
		}
		f.Plot = groupedBars(&st, title, "Predictor Size (Kbits)", yLabel, f)
		figs = append(figs, f)
	}
	return figs
}

// SizeBars renders one figure per (metric, size) comparing
// implementations on each benchmark at that budget. A trailing
// "Average" group holds each implementation's mean over benchmarks.
func SizeBars(sum *bpstat.Summary, st Style) []*Figure {
	st = st.withDefaults()
	impls := sum.Implementations()
	benches := sum.Benchmarks()
	groups := append(append([]string(nil), benches...), averageGroup)

	// Wider figures leave room for one group per benchmark.
	width := st.Width * 1.4

	var figs []*Figure
	for _, size := range bpstat.Sizes {
		for _, metric := range bpstat.Metrics {
			series := make([]Series, len(impls))
			for i, impl := range impls {
				ys := make([]float64, 0, len(groups))
				for _, bench := range benches {
					v, _ := sum.Lookup(bench, size, impl)
					ys = append(ys, metric.Get(v))
				}
				ys = append(ys, metric.Get(sum.ImplSizeMean[impl][size]))
				series[i] = Series{Label: impl, Y: ys}
			}

			what := "IPC"
			if metric == bpstat.MissRate {
				what = "Branch Miss Rate"
			}
			title := fmt.Sprintf("%s Comparison (%sKbits) with %s", what, size, metric.MeanLabel())
			f := &Figure{
				Dir:    "size_comparison_plots",
				Base:   fmt.Sprintf("%s_%sK", metric.Stem(), size),
				Groups: groups,
				Series: series,
				Width:  width,
				Height: st.Height,
				DPI:    st.DPI,
			}
			f.Plot = groupedBars(&st, title, "Benchmarks", metric.Label(), f)
			f.Plot.X.Tick.Label.Rotation = -math.Pi / 8
			f.Plot.X.Tick.Label.XAlign = draw.XLeft
			f.Plot.X.Tick.Label.YAlign = draw.YTop
			figs = append(figs, f)
		}
	}
	return figs
}

// barSpacing separates adjacent bars of one group.
const barSpacing = 1

// groupedBars plots f's bar series side by side within each group,
// centered on the group's nominal X position.
func groupedBars(st *Style, title, xLabel, yLabel string, f *Figure) *plot.Plot {
	p := st.newPlot(title, xLabel, yLabel)
	colors := st.colors(len(f.Series))

	spacing := vg.Points(barSpacing)
	groupWidth := (st.BarWidth + spacing) * vg.Length(len(f.Series)-1)
	for i, s := range f.Series {
		bc, err := plotter.NewBarChart(finite(s.Y), st.BarWidth)
		if err != nil {
			// finite leaves nothing for NewBarChart to reject.
			panic(fmt.Sprintf("bar series %q: %v", s.Label, err))
		}
		bc.Offset = (st.BarWidth+spacing)*vg.Length(i) - groupWidth/2
		bc.Color = colors[i]
		bc.LineStyle.Width = 0
		p.Add(bc)
		p.Legend.Add(s.Label, bc)
	}
	p.NominalX(f.Groups...)
	p.Y.Min = 0
	return p
}

// finite returns ys with NaN and infinite values drawn as zero.
func finite(ys []float64) plotter.Values {
	out := make(plotter.Values, len(ys))
	for i, y := range ys {
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			out[i] = y
		}
	}
	return out
}

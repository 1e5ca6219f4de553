// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bpchart

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/cva6-bp/bpstats/bpsize"
	"github.com/cva6-bp/bpstats/bpstat"
)

// SizeSweep renders one figure per (benchmark, metric) showing how
// each implementation scales with its storage budget.
//
// Points are placed at the implementation's effective size (see
// bpsize.EffectiveSize), but the X axis is labeled with the nominal
// budgets. An implementation with no data for a benchmark draws no
// line on that benchmark's figures. Colors and markers are assigned
// per implementation and are the same on every figure.
//
// SizeSweep fails if an effective size cannot be computed.
func SizeSweep(sum *bpstat.Summary, st Style) ([]*Figure, error) {
	st = st.withDefaults()
	impls := sum.Implementations()
	colors := st.colors(len(impls))

	ticks := make([]plot.Tick, len(bpstat.Sizes))
	for i, size := range bpstat.Sizes {
		n, err := bpsize.ParseNominal(size)
		if err != nil {
			return nil, err
		}
		ticks[i] = plot.Tick{Value: float64(n), Label: size}
	}

	var figs []*Figure
	for _, bench := range sum.Benchmarks() {
		for _, metric := range bpstat.Metrics {
			title := fmt.Sprintf("IPC of %s", strings.ToUpper(bench))
			yLabel := "IPC"
			if metric == bpstat.MissRate {
				title = fmt.Sprintf("Miss Rate of %s", strings.ToUpper(bench))
				yLabel = "Miss Rate (%)"
			}
			p := st.newPlot(title, "Budget (Kbits)", yLabel)
			p.X.Tick.Marker = plot.ConstantTicks(ticks)
			p.Legend.Left = true

			f := &Figure{
				Dir:    "benchmark_plots",
				Base:   bench + "_" + metric.Stem(),
				Plot:   p,
				Width:  st.Width,
				Height: st.Height,
				DPI:    st.DPI,
			}
			for i, impl := range impls {
				var s Series
				s.Label = impl
				for _, size := range bpstat.Sizes {
					v, ok := sum.Lookup(bench, size, impl)
					if !ok {
						continue
					}
					n, err := bpsize.ParseNominal(size)
					if err != nil {
						return nil, err
					}
					x, err := bpsize.EffectiveSize(impl, n)
					if err != nil {
						return nil, fmt.Errorf("%s: %w", impl, err)
					}
					s.X = append(s.X, x)
					s.Y = append(s.Y, metric.Get(v))
				}
				if len(s.X) == 0 {
					continue
				}
				xys := make(plotter.XYs, len(s.X))
				for j := range xys {
					xys[j].X, xys[j].Y = s.X[j], s.Y[j]
				}
				line, points, err := plotter.NewLinePoints(xys)
				if err != nil {
					return nil, fmt.Errorf("%s on %s: %w", impl, bench, err)
				}
				line.Color = colors[i]
				line.Width = st.LineWidth
				points.GlyphStyle.Color = colors[i]
				points.GlyphStyle.Shape = plotutil.Shape(i)
				points.GlyphStyle.Radius = st.GlyphRadius
				p.Add(line, points)
				p.Legend.Add(impl, line, points)
				f.Series = append(f.Series, s)
			}
			figs = append(figs, f)
		}
	}
	return figs, nil
}

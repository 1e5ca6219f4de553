// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bpchart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// A Style configures the appearance of rendered figures. It is
// passed to every renderer; there is no package-level style state.
//
// Lengths are in points. A Style may be decoded from YAML.
type Style struct {
	Width     vg.Length `yaml:"width"`
	Height    vg.Length `yaml:"height"`
	DPI       int       `yaml:"dpi"` // raster formats only
	TitleSize vg.Length `yaml:"title_size"`
	LabelSize vg.Length `yaml:"label_size"`
	TickSize  vg.Length `yaml:"tick_size"`

	// Palette is the name of a qualitative ColorBrewer palette,
	// such as "Paired" or "Set1".
	Palette string `yaml:"palette"`

	BarWidth    vg.Length `yaml:"bar_width"`
	LineWidth   vg.Length `yaml:"line_width"`
	GlyphRadius vg.Length `yaml:"glyph_radius"`
	Grid        bool      `yaml:"grid"`
}

// DefaultStyle returns the publication style: 10×6 inch figures at
// 300 DPI with a light horizontal grid.
func DefaultStyle() Style {
	return Style{
		Width:       10 * vg.Inch,
		Height:      6 * vg.Inch,
		DPI:         300,
		TitleSize:   vg.Points(14),
		LabelSize:   vg.Points(12),
		TickSize:    vg.Points(10),
		Palette:     "Paired",
		BarWidth:    vg.Points(10),
		LineWidth:   vg.Points(2),
		GlyphRadius: vg.Points(3),
		Grid:        true,
	}
}

// withDefaults returns st with every unset field taken from
// DefaultStyle.
func (st Style) withDefaults() Style {
	def := DefaultStyle()
	if st.Width <= 0 {
		st.Width = def.Width
	}
	if st.Height <= 0 {
		st.Height = def.Height
	}
	if st.DPI <= 0 {
		st.DPI = def.DPI
	}
	if st.TitleSize <= 0 {
		st.TitleSize = def.TitleSize
	}
	if st.LabelSize <= 0 {
		st.LabelSize = def.LabelSize
	}
	if st.TickSize <= 0 {
		st.TickSize = def.TickSize
	}
	if st.Palette == "" {
		st.Palette = def.Palette
	}
	if st.BarWidth <= 0 {
		st.BarWidth = def.BarWidth
	}
	if st.LineWidth <= 0 {
		st.LineWidth = def.LineWidth
	}
	if st.GlyphRadius <= 0 {
		st.GlyphRadius = def.GlyphRadius
	}
	return st
}

// newPlot returns an empty plot with st's text sizes and grid.
func (st *Style) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = st.TitleSize
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = st.LabelSize
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = st.LabelSize
	p.X.Tick.Label.Font.Size = st.TickSize
	p.Y.Tick.Label.Font.Size = st.TickSize
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = st.TickSize
	p.Legend.Padding = vg.Millimeter

	if st.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = nil
		grid.Horizontal.Color = color.Gray{200}
		grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(grid)
	}
	return p
}

// colors returns n distinct series colors from st.Palette. Unknown
// palettes fall back to plotutil's default colors.
func (st *Style) colors(n int) []color.Color {
	out := make([]color.Color, n)
	k := n
	if k < 3 {
		k = 3 // smallest ColorBrewer palette
	}
	if k > 12 {
		k = 12
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, st.Palette, k)
	if err != nil {
		for i := range out {
			out[i] = plotutil.Color(i)
		}
		return out
	}
	cs := pal.Colors()
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out
}

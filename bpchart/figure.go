// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bpchart renders branch-predictor summaries as figures.
//
// Renderers are pure functions of a *bpstat.Summary and a Style.
// They return Figures, which hold both the plot and the data drawn
// on it; writing a Figure to disk is a separate step.
package bpchart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// A Series is one labeled data series of a Figure. Bar series have
// one Y per group and no X.
type Series struct {
	Label string
	X, Y  []float64
}

// A Figure is a rendered chart.
type Figure struct {
	// Dir and Base determine where the figure is written:
	// <root>/<Dir>/<format>/<Base>.<format>.
	Dir, Base string

	// Groups are the bar group labels, in order. Empty for line
	// figures.
	Groups []string
	Series []Series

	Plot          *plot.Plot
	Width, Height vg.Length
	DPI           int
}

// A Format is an image file format.
type Format string

const (
	PNG Format = "png"
	EPS Format = "eps"
	SVG Format = "svg"
	PDF Format = "pdf"
)

// DefaultFormats is the raster and vector pair written for each
// figure.
var DefaultFormats = []Format{PNG, EPS}

// ParseFormats parses a comma-separated list of formats.
func ParseFormats(list string) ([]Format, error) {
	var out []Format
	for _, f := range strings.Split(list, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		switch Format(f) {
		case PNG, EPS, SVG, PDF:
			out = append(out, Format(f))
		case "":
		default:
			return nil, fmt.Errorf("unknown image format %q", f)
		}
	}
	return out, nil
}

// Path returns the file path of f in format under root.
func (f *Figure) Path(root string, format Format) string {
	return filepath.Join(root, f.Dir, string(format), f.Base+"."+string(format))
}

func (f *Figure) canvas(format Format) (vg.CanvasWriterTo, error) {
	switch format {
	case PNG:
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(f.Width, f.Height),
			vgimg.UseDPI(f.DPI),
			vgimg.UseBackgroundColor(color.White))}, nil
	case EPS:
		return vgeps.New(f.Width, f.Height), nil
	case SVG:
		return vgsvg.New(f.Width, f.Height), nil
	case PDF:
		return vgpdf.New(f.Width, f.Height), nil
	}
	return nil, fmt.Errorf("unknown image format %q", format)
}

// Write writes f in each of formats under root, creating
// directories as needed.
func (f *Figure) Write(root string, formats []Format) error {
	for _, format := range formats {
		can, err := f.canvas(format)
		if err != nil {
			return err
		}
		path := f.Path(root, format)
		if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
			return err
		}
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		f.Plot.Draw(draw.New(can))
		if _, err := can.WriteTo(file); err != nil {
			file.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll writes every figure in figs. It stops at the first error.
func WriteAll(root string, figs []*Figure, formats []Format) error {
	for _, f := range figs {
		if err := f.Write(root, formats); err != nil {
			return err
		}
	}
	return nil
}

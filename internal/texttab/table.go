// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out column-aligned plain text tables.
package texttab

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// An Align is the horizontal alignment of a column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

// pad returns s padded with spaces to w runes.
func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Center:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	case Right:
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// A Table accumulates rows of cells and writes them with every
// column padded to its widest cell.
//
// The zero Table is empty and ready to use. Columns are left-aligned
// unless set otherwise.
type Table struct {
	// Sep separates adjacent columns. The zero value means two
	// spaces.
	Sep string

	rows  [][]string // nil row is a rule
	align []Align
	cols  int
}

// SetAlign sets the alignment of column col, numbered from 0.
func (t *Table) SetAlign(col int, a Align) {
	for len(t.align) <= col {
		t.align = append(t.align, Left)
	}
	t.align[col] = a
}

// Row appends a row. Rows may have fewer cells than the table has
// columns; the missing cells are blank.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, append([]string{}, cells...))
	if len(cells) > t.cols {
		t.cols = len(cells)
	}
	return t
}

// Rule appends a horizontal line spanning the table.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, nil)
	return t
}

func (t *Table) alignOf(col int) Align {
	if col < len(t.align) {
		return t.align[col]
	}
	return Left
}

// Format writes t to w. Trailing spaces are trimmed from each line.
func (t *Table) Format(w io.Writer) error {
	sep := t.Sep
	if sep == "" {
		sep = "  "
	}

	widths := make([]int, t.cols)
	for _, row := range t.rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	total := 0
	for i, n := range widths {
		if i > 0 {
			total += utf8.RuneCountInString(sep)
		}
		total += n
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		if row == nil {
			line.WriteString(strings.Repeat("-", total))
		}
		for i, c := range row {
			if i > 0 {
				line.WriteString(sep)
			}
			line.WriteString(t.alignOf(i).pad(c, widths[i]))
		}
		if _, err := fmt.Fprintln(bw, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

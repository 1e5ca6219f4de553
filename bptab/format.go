// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bptab

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/cva6-bp/bpstats/bpstat"
	"github.com/cva6-bp/bpstats/internal/texttab"
)

// LaTeX braces collide with the default template delimiters.
var latexTemplate = template.Must(template.New("latex").Delims("<<", ">>").Funcs(template.FuncMap{
	"tex":     texEscape,
	"label":   texLabel,
	"colspec": func(n int) string { return "|" + strings.Repeat("c|", n+1) },
	"last":    func(n int) int { return n + 1 },
	"caption": texCaption,
}).Parse(`<<range .>>\begin{table}[H]
    \centering
    \resizebox{\linewidth}{!}{
        \begin{tabular}{<<colspec (len .Benchmarks)>>}
            \hline
            \rowcolor{gray!60}
            \textbf{Size} & \multicolumn{<<len .Benchmarks>>}{|c|}{\textbf{<<tex .Title>>}} \\
            \cline{2-<<last (len .Benchmarks)>>}
            \rowcolor{gray!60}
            \textbf{(Kbits)}<<range .Benchmarks>> & \textbf{<<tex .>>}<<end>> \\
            \hline
<<- range .Rows>>
            \textbf{<<.Size>>}<<range .Cells>> & <<.>><<end>> \\
            \hline
<<- end>>
            \cellcolor{gray!60} \textbf{Mean}<<range .Mean>> & <<.>><<end>> \\
            \hline
        \end{tabular}
    }
    \caption{<<caption .>> for implementation \textbf{<<tex .Implementation>>}}
    \label{<<label .>>}
\end{table}

<<end>>`))

// texCaption and texLabel name a table the way the LaTeX documents
// that include these tables refer to them.
func texCaption(t *Table) string {
	if t.Metric == bpstat.MissRate {
		return "Branch miss rate at each size"
	}
	return "IPC at each size"
}

func texLabel(t *Table) string {
	prefix := "ipc-"
	if t.Metric == bpstat.MissRate {
		prefix = "branch-misses-"
	}
	return prefix + strings.ReplaceAll(strings.ToLower(t.Implementation), " ", "-")
}

var texReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func texEscape(s string) string {
	return texReplacer.Replace(s)
}

// FormatLaTeX writes tables to w as LaTeX table floats. The output
// needs the float, graphicx, xcolor (with the table option) packages.
func FormatLaTeX(w io.Writer, tables []*Table) error {
	return latexTemplate.Execute(w, tables)
}

// FormatText writes tables to w as aligned plain text, separated by
// blank lines.
func FormatText(w io.Writer, tables []*Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", t.Implementation, t.Title()); err != nil {
			return err
		}
		var tab texttab.Table
		head := append([]string{"Kbits"}, t.Benchmarks...)
		for col := 1; col < len(head); col++ {
			tab.SetAlign(col, texttab.Right)
		}
		tab.Row(head...).Rule()
		for _, row := range t.Rows {
			tab.Row(cells(row.Size, row.Cells)...)
		}
		tab.Rule().Row(cells("Mean", t.Mean)...)
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

func cells(first string, cs []Cell) []string {
	out := make([]string, 0, len(cs)+1)
	out = append(out, first)
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Bpstats summarizes branch-predictor simulation results as figures
// and tables.
//
// Usage:
//
//	bpstats [flags] stats_bp.txt
//	bpstats -db driver:dsn -load id [flags]
//
// The input is a log of blocks separated by lines of 28 dashes. Each
// block starts with a header naming a predictor implementation and
// its storage budget,
//
//	Implementation: Gshare (64 Kbits)
//
// or "Implementation: Perfect ( Kbits)" for a predictor without one,
// followed by one record per benchmark:
//
//	bfs IPC: 1.23 Ratio of branch misses: 4.56 %
//
// Blocks whose header cannot be read are skipped; -v reports them.
//
// Bpstats writes three families of figures under the -o directory,
// each in every format listed by -format:
//
//	mean_comparison_plots/<format>/{ipc,miss_rate}_mean_comparison.<format>
//	size_comparison_plots/<format>/{ipc,miss_rate}_<size>K.<format>
//	benchmark_plots/<format>/<benchmark>_{ipc,miss_rate}.<format>
//
// The -charts flag selects among them by the names mean, size and
// sweep. IPC is averaged with the harmonic mean and miss rate with
// the arithmetic mean.
//
// It then prints one table per implementation and metric to standard
// output, as LaTeX by default. The -table flag selects text or html
// instead, or none.
//
// The -config flag names a YAML file that adjusts figure style and
// the table columns:
//
//	style:
//	  width: 540      # points
//	  height: 324
//	  dpi: 150
//	  palette: Set1
//	benchmarks: [bfs, sad, sgemm]
//
// With -db, the parsed measurements are archived in a SQL database
// (sqlite3 or mysql) and the new upload ID is printed to standard
// error. With -db and -load, the input is read back from the archive
// instead of a log file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/cva6-bp/bpstats/bpchart"
	"github.com/cva6-bp/bpstats/bpfmt"
	"github.com/cva6-bp/bpstats/bpstat"
	"github.com/cva6-bp/bpstats/bpstore"
	_ "github.com/cva6-bp/bpstats/bpstore/sqlite3"
	"github.com/cva6-bp/bpstats/bptab"
)

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "usage: bpstats [flags] stats_bp.txt\n")
	fmt.Fprintf(w, "       bpstats -db driver:dsn -load id [flags]\n")
	fmt.Fprintf(w, "flags:\n")
	fs.PrintDefaults()
}

// A usageError is a command-line error. It exits with status 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func main() {
	log.SetPrefix("bpstats: ")
	log.SetFlags(0)
	if err := bpstats(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if _, ok := err.(*usageError); ok {
			if err.Error() != "" {
				log.Print(err)
			}
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

var chartNames = map[string]func(*bpstat.Summary, bpchart.Style) ([]*bpchart.Figure, error){
	"mean": func(s *bpstat.Summary, st bpchart.Style) ([]*bpchart.Figure, error) {
		return bpchart.MeanBars(s, st), nil
	},
	"size": func(s *bpstat.Summary, st bpchart.Style) ([]*bpchart.Figure, error) {
		return bpchart.SizeBars(s, st), nil
	},
	"sweep": bpchart.SizeSweep,
}

var chartOrder = []string{"mean", "size", "sweep"}

var tableFormats = map[string]func(io.Writer, []*bptab.Table) error{
	"latex": bptab.FormatLaTeX,
	"text":  bptab.FormatText,
	"html":  formatHTMLPage,
	"none":  nil,
}

func bpstats(w, wErr io.Writer, args []string) error {
	fs := flag.NewFlagSet("bpstats", flag.ContinueOnError)
	fs.SetOutput(wErr)
	fs.Usage = func() { usage(wErr, fs) }
	flagOut := fs.String("o", ".", "write figures under `dir`")
	flagFormat := fs.String("format", "png,eps", "comma-separated image `formats`: png, eps, svg, pdf")
	flagCharts := fs.String("charts", "mean,size,sweep", "comma-separated `charts` to draw: mean, size, sweep, or none")
	flagTable := fs.String("table", "latex", "print tables as `fmt`: latex, text, html, or none")
	flagConfig := fs.String("config", "", "read style and table columns from YAML `file`")
	flagDB := fs.String("db", "", "archive measurements in the database `driver:dsn`")
	flagLoad := fs.String("load", "", "read measurements from archive upload `id` instead of a log")
	flagV := fs.Bool("v", false, "report unreadable log blocks")
	if err := fs.Parse(args); err != nil {
		return &usageError{}
	}

	formats, err := bpchart.ParseFormats(*flagFormat)
	if err != nil {
		return &usageError{err.Error()}
	}
	charts, err := parseCharts(*flagCharts)
	if err != nil {
		return &usageError{err.Error()}
	}
	formatTables, ok := tableFormats[strings.ToLower(*flagTable)]
	if !ok {
		return &usageError{fmt.Sprintf("unknown table format %q", *flagTable)}
	}
	switch {
	case *flagLoad != "" && *flagDB == "":
		return &usageError{"-load requires -db"}
	case *flagLoad != "" && fs.NArg() != 0, *flagLoad == "" && fs.NArg() != 1:
		fs.Usage()
		return &usageError{}
	}

	cfg := defaultConfig()
	if *flagConfig != "" {
		if cfg, err = loadConfig(*flagConfig); err != nil {
			return err
		}
	}

	ctx := context.Background()
	var db *bpstore.DB
	if *flagDB != "" {
		driver, dsn, ok := strings.Cut(*flagDB, ":")
		if !ok {
			return &usageError{fmt.Sprintf("-db %q is not of the form driver:dsn", *flagDB)}
		}
		if db, err = bpstore.OpenSQL(driver, dsn); err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer db.Close()
	}

	var m *bpfmt.Model
	if *flagLoad != "" {
		if m, err = db.LoadModel(ctx, *flagLoad); err != nil {
			return fmt.Errorf("upload %s: %w", *flagLoad, err)
		}
	} else {
		warn := func(err *bpfmt.SyntaxError) {
			if *flagV {
				fmt.Fprintf(wErr, "%v\n", err)
			}
		}
		if m, err = bpfmt.ParseFile(fs.Arg(0), warn); err != nil {
			return err
		}
		if db != nil {
			u, err := db.NewUpload(ctx)
			if err != nil {
				return err
			}
			if err := u.InsertModel(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(wErr, "archived as upload %s\n", u.ID)
		}
	}

	sum := bpstat.Aggregate(m)
	for _, name := range charts {
		figs, err := chartNames[name](sum, cfg.Style)
		if err != nil {
			return err
		}
		if err := bpchart.WriteAll(*flagOut, figs, formats); err != nil {
			return err
		}
	}
	if formatTables != nil {
		if err := formatTables(w, bptab.Tables(sum, cfg.Benchmarks)); err != nil {
			return err
		}
	}
	return nil
}

// parseCharts parses the -charts list into names of chartNames, in
// drawing order.
func parseCharts(list string) ([]string, error) {
	want := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		switch {
		case name == "" || name == "none":
		case chartNames[name] != nil:
			want[name] = true
		default:
			return nil, fmt.Errorf("unknown chart %q", name)
		}
	}
	var out []string
	for _, name := range chartOrder {
		if want[name] {
			out = append(out, name)
		}
	}
	return out, nil
}

func formatHTMLPage(w io.Writer, tables []*bptab.Table) error {
	if _, err := io.WriteString(w, htmlHeader); err != nil {
		return err
	}
	if err := bptab.FormatHTML(w, tables); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFooter)
	return err
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Branch Predictor Results</title>
<style>
.bpstats { border-collapse: collapse; }
.bpstats th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
.bpstats td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.bpstats .mean { font-weight: bold; }
</style>
</head>
<body>
`
var htmlFooter = `</body>
</html>
`

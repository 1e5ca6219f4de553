// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bptab

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("").Parse(`
<table class='bpstats'>
{{- range .}}
<tbody>
<tr><th>{{.Implementation}}<th>{{.Title}}
<tr><th>Kbits{{range .Benchmarks}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr><td>{{.Size}}{{range .Cells}}<td>{{.String}}{{end}}
{{end -}}
<tr class='mean'><td>Mean{{range .Mean}}<td>{{.String}}{{end}}
</tbody>
{{- end}}
</table>
`))

// FormatHTML writes tables to w as one HTML table with a tbody per
// Table.
func FormatHTML(w io.Writer, tables []*Table) error {
	return htmlTemplate.Execute(w, tables)
}

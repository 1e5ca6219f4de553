// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bpfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Delimiter is the line of dashes that separates implementation
// blocks in a simulator log.
const Delimiter = "----------------------------"

// NoSize is the size label of a block whose header declares no
// storage budget, as in "Implementation: Bimodal ( Kbits)".
const NoSize = "N/A"

// maxBlock bounds the size of a single implementation block.
const maxBlock = 16 << 20

var (
	delimiter = []byte(Delimiter)
	newline   = []byte("\n")
)

// headerPatterns are tried in order against each block. The first
// pattern that matches names the implementation. A pattern without a
// size group yields NoSize.
var headerPatterns = []struct {
	re    *regexp.Regexp
	sized bool
}{
	{regexp.MustCompile(`Implementation: (.+?) \((\d+) Kbits\)`), true},
	{regexp.MustCompile(`Implementation: (.+?) \( Kbits\)`), false},
}

// recordPattern matches one benchmark measurement. It may match
// anywhere in a block, including across line breaks.
var recordPattern = regexp.MustCompile(`([a-zA-Z\-]+)\s*IPC:\s*([\d.]+)\s*Ratio of branch misses:\s*([\d.]+)\s*%`)

// A Reader reads implementation blocks from a simulator log.
//
// Its API is modeled on bufio.Scanner. Each call to Scan yields one
// Record: either a *Block or a *SyntaxError for a block whose header
// could not be recognized. Syntax errors are not fatal; the caller
// may keep scanning.
type Reader struct {
	s        *bufio.Scanner
	err      error
	fileName string

	// line is the 1-based line number at which the next block
	// begins.
	line int

	rec Record
}

// A SyntaxError reports a non-blank block whose header matched none
// of the recognized Implementation patterns. The whole block is
// dropped.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// A Record is a single record read from a log. It is a *Block or a
// *SyntaxError.
type Record interface {
	// Pos returns the file name and the 1-based line number
	// where this record begins.
	Pos() (fileName string, line int)
}

var _ Record = (*Block)(nil)
var _ Record = (*SyntaxError)(nil)

// A Block is one implementation block: the header's implementation
// name and size label, followed by every measurement found in the
// block.
type Block struct {
	Implementation string
	Size           string
	Measurements   []Measurement

	fileName string
	line     int
}

// Pos returns the position of the block's header.
func (b *Block) Pos() (fileName string, line int) {
	return b.fileName, b.line
}

// NewReader returns a Reader that reads the simulator log from r.
// fileName is used in error messages only.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	s := bufio.NewScanner(r)
	s.Buffer(nil, maxBlock)
	s.Split(splitBlocks)
	return &Reader{s: s, fileName: fileName, line: 1}
}

// splitBlocks is a bufio.SplitFunc that splits its input on
// Delimiter. Delimiter may occur anywhere, not only on a line of its
// own.
func splitBlocks(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.Index(data, delimiter); i >= 0 {
		return i + len(delimiter), data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Scan advances to the next non-blank block and reports whether one
// was read. At EOF or on an I/O error it returns false and the caller
// should check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		block := r.s.Bytes()
		start := r.line
		r.line += bytes.Count(block, newline)
		if len(bytes.TrimSpace(block)) == 0 {
			continue
		}
		r.rec = r.parseBlock(block, start)
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// parseBlock parses a single block beginning at line.
func (r *Reader) parseBlock(block []byte, line int) Record {
	for _, h := range headerPatterns {
		m := h.re.FindSubmatchIndex(block)
		if m == nil {
			continue
		}
		b := &Block{
			Implementation: strings.TrimSpace(string(block[m[2]:m[3]])),
			Size:           NoSize,
			fileName:       r.fileName,
			line:           line + bytes.Count(block[:m[0]], newline),
		}
		if h.sized {
			b.Size = string(block[m[4]:m[5]])
		}
		for _, rm := range recordPattern.FindAllSubmatch(block, -1) {
			ipc, err := strconv.ParseFloat(string(rm[2]), 64)
			if err != nil {
				continue
			}
			miss, err := strconv.ParseFloat(string(rm[3]), 64)
			if err != nil {
				continue
			}
			b.Measurements = append(b.Measurements, Measurement{
				Benchmark:      string(rm[1]),
				Implementation: b.Implementation,
				Size:           b.Size,
				Value:          Value{IPC: ipc, MissRate: miss},
			})
		}
		return b
	}

	// Report the error at the first non-blank line.
	lead := len(block) - len(bytes.TrimLeft(block, " \t\r\n"))
	line += bytes.Count(block[:lead], newline)
	return &SyntaxError{r.fileName, line, "block header matches no Implementation pattern"}
}

// Result returns the record read by the last call to Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

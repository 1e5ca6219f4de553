// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bpsize computes the effective storage budget of a branch
// predictor.
//
// The nominal budget of a table-based predictor counts only its
// tables. The effective budget adds the history register that
// indexes them, which gives a fair "Kbits" axis when predictors of
// different families are compared.
package bpsize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Family is a class of predictor designs that share a storage
// correction rule.
type Family int

const (
	// Plain predictors (Bimodal, Local, ...) carry no state beyond
	// their nominal budget.
	Plain Family = iota
	// Gshare keeps a global history as wide as its table index.
	Gshare
	// Tournament keeps a global history as wide as its global
	// predictor's index.
	Tournament
	// TAGE keeps a fixed 256-bit global history.
	TAGE
)

func (f Family) String() string {
	switch f {
	case Plain:
		return "Plain"
	case Gshare:
		return "Gshare"
	case Tournament:
		return "Tournament"
	case TAGE:
		return "TAGE"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// familyMarkers are checked in order; the first marker contained in
// an implementation name decides its family. Matching is
// case-sensitive.
var familyMarkers = []struct {
	marker string
	family Family
}{
	{"Gshare", Gshare},
	{"Tournament", Tournament},
	{"TAGE", TAGE},
}

// FamilyOf returns the Family of the implementation named impl.
// Names that carry no known marker are Plain.
func FamilyOf(impl string) Family {
	for _, fm := range familyMarkers {
		if strings.Contains(impl, fm.marker) {
			return fm.family
		}
	}
	return Plain
}

// tageHistoryBits is the length of TAGE's global history register.
const tageHistoryBits = 256

// entries maps a nominal budget in kilobits to the number of entries
// of the table indexed by the global history.
var entries = map[Family]map[int]int{
	Gshare: {
		32:  16384,
		64:  32768,
		128: 65536,
		256: 131072,
		512: 262144,
	},
	Tournament: {
		32:  4096,
		64:  16384,
		128: 8192,
		256: 16384,
		512: 32768,
	},
}

// An UnknownSizeError reports a nominal budget for which a family has
// no table geometry.
type UnknownSizeError struct {
	Family  Family
	Nominal int
}

func (e *UnknownSizeError) Error() string {
	return fmt.Sprintf("no %s table geometry for %d Kbits", e.Family, e.Nominal)
}

// EffectiveSize returns the effective budget in kilobits of a
// predictor of family f with the given nominal budget.
func (f Family) EffectiveSize(nominal int) (float64, error) {
	switch f {
	case Gshare, Tournament:
		n, ok := entries[f][nominal]
		if !ok {
			return 0, &UnknownSizeError{f, nominal}
		}
		return float64(nominal) + math.Log2(float64(n))/1024, nil
	case TAGE:
		return float64(nominal) + tageHistoryBits/1024.0, nil
	}
	return float64(nominal), nil
}

// EffectiveSize returns the effective budget in kilobits of the
// implementation named impl at the given nominal budget.
func EffectiveSize(impl string, nominal int) (float64, error) {
	return FamilyOf(impl).EffectiveSize(nominal)
}

// ParseNominal converts a size label such as "128" into kilobits.
func ParseNominal(label string) (int, error) {
	n, err := strconv.Atoi(label)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size label %q", label)
	}
	return n, nil
}

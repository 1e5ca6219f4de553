// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cva6-bp/bpstats/bpchart"
)

// A config holds the settings read from a -config file.
type config struct {
	Style      bpchart.Style `yaml:"style"`
	Benchmarks []string      `yaml:"benchmarks"`
}

func defaultConfig() config {
	return config{Style: bpchart.DefaultStyle()}
}

// loadConfig reads a YAML config file. Settings the file leaves out
// keep their defaults; unknown keys are an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

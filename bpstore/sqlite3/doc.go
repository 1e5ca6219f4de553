// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for bpstore.DB. It
// must be imported for its side effects to open SQLite archives.
package sqlite3

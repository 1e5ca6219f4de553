// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storetest opens scratch archives for tests.
package storetest

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/cva6-bp/bpstats/bpstore"
	_ "github.com/cva6-bp/bpstats/bpstore/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "run archive tests in a scratch database on the MySQL server at `dsn` (user:pass@tcp(host)/) instead of SQLite")

// createEmptyMySQL makes a new, empty database for the test and
// drops it when the test ends.
func createEmptyMySQL(t *testing.T) (dsn string) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	name := "bpstats_test_" + hex.EncodeToString(buf)

	db, err := sql.Open("mysql", *mysqlDSN)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}
	t.Logf("Using database %q", name)
	t.Cleanup(func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	})
	return *mysqlDSN + name
}

// NewDB opens an empty archive, in SQLite under t.TempDir or in
// MySQL if the -mysql flag is set. The archive is closed when the
// test ends.
func NewDB(t *testing.T) *bpstore.DB {
	t.Helper()
	driverName := "sqlite3"
	dataSourceName := filepath.Join(t.TempDir(), "archive.db")
	if *mysqlDSN != "" {
		driverName = "mysql"
		dataSourceName = createEmptyMySQL(t)
	}
	d, err := bpstore.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	// Make sure the database really is empty.
	uploads, err := d.CountUploads()
	if err != nil {
		t.Fatal(err)
	}
	if uploads != 0 {
		t.Fatalf("found %d row(s) in Uploads, want 0", uploads)
	}
	return d
}

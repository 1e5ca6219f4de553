// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bpstore archives parsed branch-predictor measurements in a
// SQL database so later runs can render them without the
// log file.
package bpstore

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/net/context"

	"github.com/cva6-bp/bpstats/bpfmt"
)

// ErrNotFound is returned by LoadModel for an unknown upload ID.
var ErrNotFound = errors.New("upload not found")

// DB is an archive of uploads. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB
	// prepared statements
	insertUpload      *sql.Stmt
	insertMeasurement *sql.Stmt
}

// OpenSQL opens an archive backed by a SQL database, creating its
// tables if needed. The parameters are the same as the parameters
// for sql.Open. Only mysql and sqlite3 are supported; other engines
// receive MySQL syntax.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
CREATE TABLE IF NOT EXISTS Measurements (
	UploadID BIGINT UNSIGNED,
	Benchmark VARCHAR(128),
	Implementation VARCHAR(128),
	Size VARCHAR(32),
	IPC DOUBLE,
	MissRate DOUBLE,
	PRIMARY KEY (UploadID, Benchmark, Implementation, Size),
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables. driverName selects the
// SQL dialect.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements(driverName string) error {
	var err error
	q := "INSERT INTO Uploads() VALUES ()"
	if driverName == "sqlite3" {
		q = "INSERT INTO Uploads DEFAULT VALUES"
	}
	db.insertUpload, err = db.sql.Prepare(q)
	if err != nil {
		return err
	}
	// REPLACE keeps the last value written for a key, as the
	// parser does.
	db.insertMeasurement, err = db.sql.Prepare("REPLACE INTO Measurements(UploadID, Benchmark, Implementation, Size, IPC, MissRate) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// An Upload is a set of measurements that share an upload ID.
type Upload struct {
	// ID identifies the upload to LoadModel.
	ID string

	id int64
	db *DB
}

// NewUpload returns a new, empty upload.
func (db *DB) NewUpload(ctx context.Context) (*Upload, error) {
	res, err := db.insertUpload.ExecContext(ctx)
	if err != nil {
		return nil, err
	}
	i, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Upload{
		ID: strconv.FormatInt(i, 10),
		id: i,
		db: db,
	}, nil
}

// InsertModel adds every measurement of m to u in a single
// transaction. Measurements already in u with the same key are
// replaced.
func (u *Upload) InsertModel(ctx context.Context, m *bpfmt.Model) (err error) {
	tx, err := u.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, u.db.insertMeasurement)
	for _, x := range m.Measurements() {
		if _, err = stmt.ExecContext(ctx, u.id, x.Benchmark, x.Implementation, x.Size, x.IPC, x.MissRate); err != nil {
			return fmt.Errorf("insert %s/%s/%s: %w", x.Benchmark, x.Implementation, x.Size, err)
		}
	}
	return nil
}

// LoadModel returns the measurements of the upload with the given ID.
// It returns ErrNotFound if there is no such upload.
func (db *DB) LoadModel(ctx context.Context, uploadID string) (*bpfmt.Model, error) {
	id, err := strconv.ParseInt(uploadID, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	var n int
	if err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Uploads WHERE UploadID = ?", id).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT Benchmark, Implementation, Size, IPC, MissRate FROM Measurements WHERE UploadID = ? ORDER BY Benchmark, Implementation, Size", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := bpfmt.NewModel()
	for rows.Next() {
		var x bpfmt.Measurement
		if err := rows.Scan(&x.Benchmark, &x.Implementation, &x.Size, &x.IPC, &x.MissRate); err != nil {
			return nil, err
		}
		m.Add(x)
	}
	return m, rows.Err()
}

// CountUploads returns the number of uploads in the archive.
func (db *DB) CountUploads() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Uploads").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertUpload.Close(); err != nil {
		return err
	}
	if err := db.insertMeasurement.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}

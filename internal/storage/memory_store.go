/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"demowin/internal/imui"
	applog "demowin/internal/log"
	"demowin/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	MemoryFileName = "memory.sqlite"

	// memorySchemaVersion is the schema the code expects. Bump it together
	// with a new step in runMigrations.
	memorySchemaVersion = 2
)

// MemoryStore keeps imui.Memory in SQLite.
type MemoryStore struct {
	db   *sql.DB
	path string
}

// MemoryPath returns the database location inside dir.
func MemoryPath(dir string) string { return filepath.Join(dir, MemoryFileName) }

// OpenMemoryStore opens or creates <dir>/memory.sqlite and migrates it to
// the current schema. A database that cannot be opened or fails its
// integrity check is moved into the backups folder and recreated empty.
func OpenMemoryStore(dir string) (*MemoryStore, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "memory_open").With(slog.String("dir", dir))
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	path := MemoryPath(dir)
	db, err := openMemoryDB(path)
	if err != nil {
		l.Warn("memory database unusable, recreating", slog.Any("err", err))
		backupFile(path, filepath.Join(dir, BackupsDirName))
		_ = os.Remove(path)
		_ = os.Remove(path + "-wal")
		_ = os.Remove(path + "-shm")
		if db, err = openMemoryDB(path); err != nil {
			l.Error("recreate memory database failed", slog.Any("err", err))
			return nil, err
		}
	}
	l.Debug("memory store ready", slog.String("path", path))
	return &MemoryStore{db: db, path: path}, nil
}

func openMemoryDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var chk string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check;`).Scan(&chk); err != nil || !strings.EqualFold(strings.TrimSpace(chk), "ok") {
		_ = db.Close()
		if err == nil {
			err = fmt.Errorf("quick_check: %s", chk)
		}
		return nil, fmt.Errorf("check sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureMemorySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// New databases start at schema 1 and walk the migrations like old ones.
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, 1, ?, ?, ?)`, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// ensureMemorySchema creates the schema 1 tables.
func ensureMemorySchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS areas (
			title  TEXT    PRIMARY KEY,
			ord    INTEGER NOT NULL,
			pos_x  REAL    NOT NULL,
			pos_y  REAL    NOT NULL,
			width  REAL    NOT NULL,
			height REAL    NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scroll_offsets (
			id TEXT PRIMARY KEY,
			dy REAL NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure memory schema: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema steps up to memorySchemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for cur < memorySchemaVersion {
		next := cur + 1
		var stmts []string
		switch next {
		case 2:
			stmts = []string{
				`CREATE TABLE IF NOT EXISTS expanded (
					id       TEXT    PRIMARY KEY,
					expanded INTEGER NOT NULL
				);`,
			}
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", next, err)
		}
		for _, q := range stmts {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d stmt failed: %w", next, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d update version: %w", next, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d commit: %w", next, err)
		}
		cur = next
	}
	return nil
}

// SchemaVersion reports the schema recorded in the database.
func (s *MemoryStore) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// Load reads the stored memory. An empty database yields empty memory.
func (s *MemoryStore) Load(ctx context.Context) (*imui.Memory, error) {
	m := imui.NewMemory()

	rows, err := s.db.QueryContext(ctx, `SELECT title, pos_x, pos_y, width, height FROM areas ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("query areas: %w", err)
	}
	for rows.Next() {
		var title string
		var a imui.Area
		if err := rows.Scan(&title, &a.Pos[0], &a.Pos[1], &a.Size[0], &a.Size[1]); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan area: %w", err)
		}
		m.Areas[title] = a
		m.Order = append(m.Order, title)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read areas: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, dy FROM scroll_offsets`)
	if err != nil {
		return nil, fmt.Errorf("query scroll offsets: %w", err)
	}
	for rows.Next() {
		var id string
		var dy float32
		if err := rows.Scan(&id, &dy); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan scroll offset: %w", err)
		}
		m.Scroll[id] = dy
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read scroll offsets: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, expanded FROM expanded`)
	if err != nil {
		return nil, fmt.Errorf("query expanded: %w", err)
	}
	for rows.Next() {
		var id string
		var open bool
		if err := rows.Scan(&id, &open); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan expanded: %w", err)
		}
		m.Expanded[id] = open
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read expanded: %w", err)
	}
	return m, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}

// Save replaces the stored memory with m in one transaction.
func (s *MemoryStore) Save(ctx context.Context, m *imui.Memory) error {
	if m == nil {
		return errors.New("nil memory")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	fail := func(what string, err error) error {
		_ = tx.Rollback()
		return fmt.Errorf("%s: %w", what, err)
	}
	for _, q := range []string{`DELETE FROM areas`, `DELETE FROM scroll_offsets`, `DELETE FROM expanded`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fail("clear memory", err)
		}
	}
	ord := 0
	seen := map[string]bool{}
	insertArea := func(title string) error {
		a, ok := m.Areas[title]
		if !ok || seen[title] {
			return nil
		}
		seen[title] = true
		ord++
		_, err := tx.ExecContext(ctx, `INSERT INTO areas (title, ord, pos_x, pos_y, width, height) VALUES (?, ?, ?, ?, ?, ?)`,
			title, ord, float64(a.Pos[0]), float64(a.Pos[1]), float64(a.Size[0]), float64(a.Size[1]))
		return err
	}
	for _, title := range m.Order {
		if err := insertArea(title); err != nil {
			return fail("insert area", err)
		}
	}
	for title := range m.Areas {
		if err := insertArea(title); err != nil {
			return fail("insert area", err)
		}
	}
	for id, dy := range m.Scroll {
		if _, err := tx.ExecContext(ctx, `INSERT INTO scroll_offsets (id, dy) VALUES (?, ?)`, id, float64(dy)); err != nil {
			return fail("insert scroll offset", err)
		}
	}
	for id, open := range m.Expanded {
		if _, err := tx.ExecContext(ctx, `INSERT INTO expanded (id, expanded) VALUES (?, ?)`, id, boolInt(open)); err != nil {
			return fail("insert expanded", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('saved_at', ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fail("update meta", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit memory: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *MemoryStore) Path() string { return s.path }

func (s *MemoryStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// backupFile copies path into bdir with a timestamp suffix. Missing files
// are ignored.
func backupFile(path, bdir string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	stamp := time.Now().Format("20060102-150405.000")
	_ = copyFile(path, filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(path), stamp)))
}

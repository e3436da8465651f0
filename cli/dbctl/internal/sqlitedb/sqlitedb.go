// Package sqlitedb implements the in-process seed and health handlers for
// file-backed sqlite engines, which have no container to exec into.
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// CollectSQLFiles expands paths into a sorted list of .sql files. Files are
// taken as given when they end in .sql; directories are walked recursively.
// Paths that do not exist are skipped.
func CollectSQLFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		st, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("sql path %s does not exist; skipping", p)
			continue
		}
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			if st.Mode().IsRegular() && filepath.Ext(p) == ".sql" {
				files = append(files, p)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && filepath.Ext(path) == ".sql" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Seed executes each file against the database at dbPath, creating the
// database and its parent directory when missing. Execution stops at the
// first failing file.
func Seed(ctx context.Context, dbPath string, files []string, out io.Writer) error {
	if len(files) == 0 {
		fmt.Fprintln(out, "No .sql files found to execute.")
		return nil
	}
	fmt.Fprintf(out, "Connecting to SQLite DB: %s\n", dbPath)
	db, err := open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	defer db.Close()
	for _, f := range files {
		fmt.Fprintf(out, "Executing: %s\n", f)
		script, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		log.Debugf("seeded %s from %s", dbPath, f)
	}
	fmt.Fprintln(out, "Execution complete.")
	return nil
}

// Health opens the database and reports the sqlite library version.
func Health(ctx context.Context, dbPath string, out io.Writer) error {
	db, err := open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	defer db.Close()
	var version string
	if err := db.QueryRowContext(ctx, "select sqlite_version()").Scan(&version); err != nil {
		return fmt.Errorf("query %s: %w", dbPath, err)
	}
	fmt.Fprintf(out, "sqlite %s ok: %s\n", version, dbPath)
	return nil
}

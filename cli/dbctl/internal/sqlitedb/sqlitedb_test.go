package sqlitedb

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestCollectSQLFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "seed", "b.sql"), "")
	write(t, filepath.Join(dir, "seed", "nested", "a.sql"), "")
	write(t, filepath.Join(dir, "seed", "notes.txt"), "")
	write(t, filepath.Join(dir, "extra.sql"), "")
	write(t, filepath.Join(dir, "readme.md"), "")

	got, err := CollectSQLFiles([]string{filepath.Join(dir, "seed"), filepath.Join(dir, "extra.sql"), filepath.Join(dir, "readme.md")})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "extra.sql"),
		filepath.Join(dir, "seed", "b.sql"),
		filepath.Join(dir, "seed", "nested", "a.sql"),
	}, got)
}

func TestCollectSQLFilesSkipsMissingPath(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.sql"), "select 1;")
	files, err := CollectSQLFiles([]string{filepath.Join(dir, "nope"), dir})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.sql")}, files)

	files, err = CollectSQLFiles([]string{filepath.Join(dir, "nope")})
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestSeedAndHealth(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "01_schema.sql"), "create table users (id integer primary key, name text);")
	write(t, filepath.Join(dir, "02_data.sql"), "insert into users (name) values ('ada'); insert into users (name) values ('linus');")
	dbPath := filepath.Join(dir, "data", "dev.db")

	files, err := CollectSQLFiles([]string{dir})
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, Seed(context.Background(), dbPath, files, &out))
	require.Contains(t, out.String(), "Executing: "+filepath.Join(dir, "01_schema.sql"))
	require.Contains(t, out.String(), "Execution complete.")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow("select count(*) from users").Scan(&n))
	require.Equal(t, 2, n)

	out.Reset()
	require.NoError(t, Health(context.Background(), dbPath, &out))
	require.Contains(t, out.String(), "ok: "+dbPath)
}

func TestSeedNoFiles(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Seed(context.Background(), filepath.Join(t.TempDir(), "x.db"), nil, &out))
	require.Equal(t, "No .sql files found to execute.\n", out.String())
}

func TestSeedReportsFailingFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.sql")
	write(t, bad, "this is not sql;")
	err := Seed(context.Background(), filepath.Join(dir, "x.db"), []string{bad}, &bytes.Buffer{})
	require.ErrorContains(t, err, bad)
}

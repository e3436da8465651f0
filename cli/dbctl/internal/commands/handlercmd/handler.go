package handlercmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"dblab/cli/dbctl/internal/cmdregistry"
	"dblab/cli/dbctl/internal/config"
	"dblab/cli/dbctl/internal/exitcode"
	"dblab/cli/dbctl/internal/resolve"
	"dblab/cli/dbctl/internal/sqlitedb"
)

// SQLiteDBPathKey names the env key holding the sqlite database file.
const SQLiteDBPathKey = "SQLITE_DB_PATH"

// Register adds the resolved actions to the registry.
func Register(r *cmdregistry.Registry) {
	for _, a := range []cmdregistry.Action{cmdregistry.CLI, cmdregistry.Seed, cmdregistry.Health, cmdregistry.ConnInfo} {
		r.Register(a, cmdregistry.HandlerFunc(dispatch))
	}
}

func dispatch(ctx context.Context, c *cmdregistry.Context) error {
	h, err := Pick(c)
	if err != nil {
		return err
	}
	return h.Run(ctx, c)
}

// Pick selects the concrete handler for c.Engine and c.Action.
func Pick(c *cmdregistry.Context) (cmdregistry.Handler, error) {
	engine, action := c.Engine.Name, c.Action.String()
	path, err := resolve.Command(c.Paths.Engines, engine, action)
	if err == nil {
		return Exec{Path: path}, nil
	}
	if !errors.Is(err, resolve.ErrNotFound) {
		return nil, err
	}
	if name, ok := c.Engine.Builtin(action); ok {
		log.Debugf("%s %s: builtin %s", engine, action, name)
		switch {
		case name == config.BuiltinSQLite && c.Action == cmdregistry.Seed:
			return SQLiteSeed{}, nil
		case name == config.BuiltinSQLite && c.Action == cmdregistry.Health:
			return SQLiteHealth{}, nil
		}
		return nil, exitcode.Unresolved("builtin %s does not implement %s", name, action)
	}
	if c.Action == cmdregistry.ConnInfo && len(c.Engine.ConnInfo) > 0 {
		return ConnInfo{}, nil
	}
	return nil, exitcode.Unresolved("no %s handler for engine %s (looked in %s and %s)",
		action, engine,
		filepath.Join(c.Paths.Engines, engine, "cmd"),
		filepath.Join(c.Paths.Engines, "common", "cmd"))
}

// Exec runs a handler executable with the trailing args and merged env.
type Exec struct {
	Path string
}

func (e Exec) Run(ctx context.Context, c *cmdregistry.Context) error {
	return c.Runner.Exec(ctx, e.Path, c.Args...)
}

// SQLiteSeed executes .sql files (args, or <engine dir>/seed by default)
// against SQLITE_DB_PATH.
type SQLiteSeed struct{}

func (SQLiteSeed) Run(ctx context.Context, c *cmdregistry.Context) error {
	db, err := sqlitePath(c)
	if err != nil {
		return err
	}
	sources := c.Args
	if len(sources) == 0 {
		sources = []string{filepath.Join(c.Paths.EngineDir(c.Engine.Name), "seed")}
	}
	if c.DryRun {
		fmt.Fprintf(c.Stderr, "+ sqlite seed %s %s\n", db, strings.Join(sources, " "))
		return nil
	}
	files, err := sqlitedb.CollectSQLFiles(sources)
	if err != nil {
		return err
	}
	return sqlitedb.Seed(ctx, db, files, c.Stdout)
}

// SQLiteHealth opens SQLITE_DB_PATH and reports its sqlite version.
type SQLiteHealth struct{}

func (SQLiteHealth) Run(ctx context.Context, c *cmdregistry.Context) error {
	db, err := sqlitePath(c)
	if err != nil {
		return err
	}
	if c.DryRun {
		fmt.Fprintf(c.Stderr, "+ sqlite health %s\n", db)
		return nil
	}
	return sqlitedb.Health(ctx, db, c.Stdout)
}

func sqlitePath(c *cmdregistry.Context) (string, error) {
	db := strings.TrimSpace(c.Env.Get(SQLiteDBPathKey))
	if db == "" {
		return "", exitcode.MissingArg("%s is not set for engine %s", SQLiteDBPathKey, c.Engine.Name)
	}
	return c.Paths.Abs(db), nil
}

// ConnInfo prints the manifest's connection keys from the merged env.
type ConnInfo struct{}

func (ConnInfo) Run(_ context.Context, c *cmdregistry.Context) error {
	for _, k := range c.Engine.ConnInfo {
		fmt.Fprintf(c.Stdout, "%s=%s\n", k, c.Env.Get(k))
	}
	return nil
}

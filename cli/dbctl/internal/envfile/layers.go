package envfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"dblab/cli/dbctl/internal/paths"
)

// Source is one layer: a file, or a directory whose *.env files load in
// lexicographic order.
type Source struct {
	Name string
	Path string
}

// Layers returns the sources for engine in precedence order, lowest first:
// common default, engine default, user common, user engine, then extras as
// given.
func Layers(p paths.Paths, engine string, extras []string) []Source {
	out := []Source{
		{Name: "common default", Path: filepath.Join(p.Root, paths.CommonEnvFile)},
		{Name: "engine default", Path: filepath.Join(p.EngineDir(engine), paths.EngineEnvFile)},
	}
	if p.ConfigHome != "" {
		out = append(out,
			Source{Name: "user common", Path: filepath.Join(p.ConfigHome, paths.CommonEnvFile)},
			Source{Name: "user engine", Path: filepath.Join(p.ConfigHome, engine+".env")},
		)
	}
	for _, x := range extras {
		out = append(out, Source{Name: "extra", Path: x})
	}
	return out
}

// Load folds sources in order into an Env. Missing sources are skipped.
func Load(sources []Source) (Env, error) {
	vars := map[string]string{}
	for _, s := range sources {
		st, err := os.Stat(s.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Debugf("env layer %s: %s absent, skipped", s.Name, s.Path)
				continue
			}
			return Env{}, fmt.Errorf("env layer %s: %w", s.Name, err)
		}
		if !st.IsDir() {
			if _, err := LoadFile(s.Path, vars); err != nil {
				return Env{}, fmt.Errorf("env layer %s: %w", s.Name, err)
			}
			continue
		}
		files, err := dirEnvFiles(s.Path)
		if err != nil {
			return Env{}, fmt.Errorf("env layer %s: %w", s.Name, err)
		}
		for _, f := range files {
			if _, err := LoadFile(f, vars); err != nil {
				return Env{}, fmt.Errorf("env layer %s: %w", s.Name, err)
			}
		}
	}
	return Env{vars: vars}, nil
}

// LoadFile applies the assignments in path to vars. A missing file reports
// false with no error.
func LoadFile(path string, vars map[string]string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	keys, err := parseInto(f, vars)
	if err != nil {
		return true, fmt.Errorf("read %s: %w", path, err)
	}
	log.Debugf("env file %s: %d keys", path, len(keys))
	return true, nil
}

func dirEnvFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".env" {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dblab/cli/dbctl/internal/paths"
)

// BuiltinSQLite names the in-process sqlite seed/health implementation.
const BuiltinSQLite = "sqlite"

var ErrUnknownBuiltin = errors.New("unknown builtin")

//go:embed default_engines.yaml
var defaultManifest []byte

type Engine struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	// Compose overrides engines/<name>/compose.yml; relative to the root.
	Compose string `yaml:"compose"`
	// Project is the compose project name (default: engine name).
	Project string `yaml:"project"`
	// ConnInfo lists env keys printed by the builtin conninfo action.
	ConnInfo []string `yaml:"conninfo"`
	// Builtins binds actions to in-process handlers, e.g. seed: sqlite.
	Builtins map[string]string `yaml:"builtins"`
}

type Manifest struct {
	Engines []Engine `yaml:"engines"`
	// Source is the file the manifest came from, or "" for the embedded default.
	Source string `yaml:"-"`
}

// ReadManifest parses <root>/engines.yaml, falling back to the embedded
// default when the file does not exist.
func ReadManifest(p paths.Paths) (Manifest, error) {
	path := p.Manifest()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ParseManifest(defaultManifest)
		}
		return Manifest{}, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	m.Source = path
	return m, nil
}

// ParseManifest decodes and validates manifest YAML. Unknown fields are errors.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, err
	}
	for i, e := range m.Engines {
		if strings.TrimSpace(e.Name) == "" {
			return Manifest{}, fmt.Errorf("engines[%d]: name is required", i)
		}
		for action, name := range e.Builtins {
			if name != BuiltinSQLite {
				return Manifest{}, fmt.Errorf("engine %s: %s: %w %q", e.Name, action, ErrUnknownBuiltin, name)
			}
		}
	}
	return m, nil
}

// RegisterAliases feeds every alias to reg in declaration order, so a later
// declaration of the same alias wins.
func (m Manifest) RegisterAliases(reg interface{ RegisterAlias(alias, canonical string) }) {
	for _, e := range m.Engines {
		for _, a := range e.Aliases {
			if a = strings.TrimSpace(a); a != "" {
				reg.RegisterAlias(a, e.Name)
			}
		}
	}
}

// Engine returns the last entry named name. Unknown engines get a bare
// entry so they still resolve through the conventional directory layout.
func (m Manifest) Engine(name string) Engine {
	found := Engine{Name: name}
	for _, e := range m.Engines {
		if e.Name == name {
			found = e
		}
	}
	return found
}

// Known reports whether name is declared.
func (m Manifest) Known(name string) bool {
	for _, e := range m.Engines {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Names lists declared engines in order.
func (m Manifest) Names() []string {
	out := make([]string, 0, len(m.Engines))
	for _, e := range m.Engines {
		out = append(out, e.Name)
	}
	return out
}

func (e Engine) ComposeFile(p paths.Paths) string {
	if c := strings.TrimSpace(e.Compose); c != "" {
		return p.Abs(c)
	}
	return filepath.Join(p.EngineDir(e.Name), "compose.yml")
}

func (e Engine) ProjectName() string {
	if v := strings.TrimSpace(e.Project); v != "" {
		return v
	}
	return e.Name
}

func (e Engine) Builtin(action string) (string, bool) {
	name, ok := e.Builtins[action]
	return name, ok
}

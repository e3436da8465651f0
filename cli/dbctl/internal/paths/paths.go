package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
)

const (
	// EnginesDir holds one directory per engine plus the shared "common" one.
	EnginesDir = "engines"
	// CommonEngine is the fallback directory consulted after an engine's own.
	CommonEngine = "common"
	// ManifestFile lists engines, aliases and builtin bindings.
	ManifestFile = "engines.yaml"
	// CommonEnvFile is the root-level default layer and the user-level override.
	CommonEnvFile = "common.env"
	// EngineEnvFile is the per-engine default layer.
	EngineEnvFile = "default.env"
)

// Paths are the directories every later step derives file locations from.
type Paths struct {
	Root       string
	Engines    string
	ConfigHome string
}

// Detect resolves the root from DBLAB_ROOT, then from the binary location
// (expected under <root>/bin/dbctl), then the working directory.
func Detect(exePath string) Paths {
	root := strings.TrimSpace(os.Getenv("DBLAB_ROOT"))
	if root == "" && exePath != "" {
		candidate := filepath.Clean(filepath.Join(filepath.Dir(exePath), ".."))
		if isDir(filepath.Join(candidate, EnginesDir)) {
			root = candidate
		}
	}
	if root == "" {
		if wd, err := os.Getwd(); err == nil {
			root = wd
		} else {
			root = "."
		}
	}
	root = filepath.Clean(root)
	return Paths{
		Root:       root,
		Engines:    filepath.Join(root, EnginesDir),
		ConfigHome: ConfigHome(),
	}
}

// ConfigHome is DBLAB_CONFIG_HOME when set, else $XDG_CONFIG_HOME/dblab.
func ConfigHome() string {
	if v := strings.TrimSpace(os.Getenv("DBLAB_CONFIG_HOME")); v != "" {
		if exp, err := homedir.Expand(v); err == nil {
			return filepath.Clean(exp)
		}
		return filepath.Clean(v)
	}
	return filepath.Join(xdg.ConfigHome, "dblab")
}

func (p Paths) EngineDir(engine string) string { return filepath.Join(p.Engines, engine) }

func (p Paths) Manifest() string { return filepath.Join(p.Root, ManifestFile) }

// Abs resolves a root-relative path; absolute paths pass through.
func (p Paths) Abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// SplitSources splits a PathListSeparator-separated list, dropping blanks.
func SplitSources(list string) []string {
	parts := strings.Split(list, string(os.PathListSeparator))
	out := make([]string, 0, len(parts))
	for _, raw := range parts {
		if v := strings.TrimSpace(raw); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ExpandSources expands a leading ~ in each source path and cleans it.
func ExpandSources(sources []string) ([]string, error) {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		exp, err := homedir.Expand(s)
		if err != nil {
			return nil, err
		}
		out = append(out, filepath.Clean(exp))
	}
	return out, nil
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// Package resolve locates handler executables for an engine/action pair.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"dblab/cli/dbctl/internal/paths"
)

var ErrNotFound = errors.New("no handler found")

// Command returns <engines>/<engine>/cmd/<action> when it is an executable
// file, else <engines>/common/cmd/<action>, else ErrNotFound. Nothing is
// cached between calls.
func Command(enginesDir, engine, action string) (string, error) {
	for _, dir := range []string{engine, paths.CommonEngine} {
		candidate := filepath.Join(enginesDir, dir, "cmd", action)
		if isExecutable(candidate) {
			log.Debugf("resolve %s/%s: %s", engine, action, candidate)
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s %s: %w", engine, action, ErrNotFound)
}

func isExecutable(path string) bool {
	st, err := os.Stat(path)
	if err != nil || !st.Mode().IsRegular() {
		return false
	}
	return st.Mode().Perm()&0o111 != 0
}

package envfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const bom = "\ufeff"

// Parse reads assignments from r into a new map. References like $VAR and
// ${VAR} expand against earlier keys of the same input, then the process
// environment.
func Parse(r io.Reader) (map[string]string, error) {
	vars := map[string]string{}
	if _, err := parseInto(r, vars); err != nil {
		return nil, err
	}
	return vars, nil
}

// parseInto applies each assignment in r to vars and returns the keys it set,
// in first-seen order.
func parseInto(r io.Reader, vars map[string]string) ([]string, error) {
	var order []string
	seen := map[string]bool{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, bom)
		}
		line = strings.ReplaceAll(line, "\r", "")
		key, val, ok := parseLine(line, vars)
		if !ok {
			if t := strings.TrimSpace(line); t != "" && !strings.HasPrefix(t, "#") {
				log.Debugf("envfile: line %d ignored: no assignment", lineNo)
			}
			continue
		}
		vars[key] = val
		if !seen[key] {
			seen[key] = true
			order = append(order, key)
		}
	}
	return order, sc.Err()
}

func parseLine(line string, vars map[string]string) (string, string, bool) {
	t := strings.TrimSpace(line)
	if t == "" || strings.HasPrefix(t, "#") {
		return "", "", false
	}
	t = strings.TrimPrefix(t, "export ")
	k, v, found := strings.Cut(t, "=")
	if !found {
		return "", "", false
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return "", "", false
	}
	return k, unquote(strings.TrimSpace(v), vars), true
}

// unquote strips one pair of surrounding quotes. A quoted value may be
// followed by a # comment; anything else after the closing quote leaves the
// value as written.
func unquote(v string, vars map[string]string) string {
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') {
		if end := strings.IndexByte(v[1:], v[0]); end >= 0 {
			inner, rest := v[1:1+end], strings.TrimSpace(v[2+end:])
			if rest == "" || strings.HasPrefix(rest, "#") {
				if v[0] == '\'' {
					return inner
				}
				return expand(inner, vars)
			}
		}
	}
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return expand(v, vars)
}

func expand(v string, vars map[string]string) string {
	if !strings.Contains(v, "$") {
		return v
	}
	return os.Expand(v, func(name string) string {
		if val, ok := vars[name]; ok {
			return val
		}
		return os.Getenv(name)
	})
}

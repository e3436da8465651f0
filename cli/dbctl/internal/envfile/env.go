package envfile

import (
	"sort"
	"strings"
)

// Env is the merged result of all layers. It is never mutated after Load
// returns; With produces a modified copy.
type Env struct {
	vars map[string]string
}

// FromMap copies m into a new Env.
func FromMap(m map[string]string) Env {
	vars := make(map[string]string, len(m))
	for k, v := range m {
		vars[k] = v
	}
	return Env{vars: vars}
}

func (e Env) Get(key string) string { return e.vars[key] }

func (e Env) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

func (e Env) Len() int { return len(e.vars) }

// Keys returns the defined keys in sorted order.
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// With returns a copy of e with key set to val.
func (e Env) With(key, val string) Env {
	out := FromMap(e.vars)
	out.vars[key] = val
	return out
}

// Environ overlays e on top of base (KEY=VALUE entries, usually
// os.Environ()) and returns the list handed to child processes.
func (e Env) Environ(base []string) []string {
	out := make([]string, 0, len(base)+len(e.vars))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if _, override := e.vars[k]; override {
			continue
		}
		out = append(out, kv)
	}
	for _, k := range e.Keys() {
		out = append(out, k+"="+e.vars[k])
	}
	return out
}

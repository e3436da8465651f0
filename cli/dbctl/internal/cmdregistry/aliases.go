package cmdregistry

// Aliases maps short engine names to canonical ones.
type Aliases struct {
	m map[string]string
}

func NewAliases() *Aliases {
	return &Aliases{m: make(map[string]string)}
}

// RegisterAlias inserts or overwrites alias; the last registration wins.
func (a *Aliases) RegisterAlias(alias, canonical string) {
	a.m[alias] = canonical
}

// ResolveAlias returns the canonical name for name, or name itself when it
// is not an alias.
func (a *Aliases) ResolveAlias(name string) string {
	if canonical, ok := a.m[name]; ok {
		return canonical
	}
	return name
}

func (a *Aliases) Len() int { return len(a.m) }

package cmdregistry

// Action is a verb applied to an engine.
type Action string

const (
	Up       Action = "up"
	Down     Action = "down"
	Logs     Action = "logs"
	PS       Action = "ps"
	Restart  Action = "restart"
	CLI      Action = "cli"
	Seed     Action = "seed"
	Health   Action = "health"
	ConnInfo Action = "conninfo"
)

// Actions lists every action in usage order.
var Actions = []Action{Up, Down, Logs, PS, Restart, CLI, Seed, Health, ConnInfo}

// ParseAction maps s to a known action.
func ParseAction(s string) (Action, bool) {
	for _, a := range Actions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Lifecycle reports whether a is served by the engine's compose file rather
// than a resolved handler.
func (a Action) Lifecycle() bool {
	switch a {
	case Up, Down, Logs, PS, Restart:
		return true
	}
	return false
}

func (a Action) String() string { return string(a) }

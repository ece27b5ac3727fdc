package game

import (
	"fmt"
	"sort"
)

// Command is a host roster command, usually bound to a key or button.
type Command int

const (
	CmdNone Command = iota
	CmdAddFish
	CmdRemoveFish
	CmdReset
	CmdChangeColors
	CmdLogStats
)

var commandNames = [...]string{"none", "add", "remove", "reset", "colors", "stats"}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// CommandForKey maps the dev keys a/r/c/x/s to commands.
func CommandForKey(r rune) Command {
	switch r {
	case 'a', 'A':
		return CmdAddFish
	case 'r', 'R':
		return CmdRemoveFish
	case 'c', 'C':
		return CmdReset
	case 'x', 'X':
		return CmdChangeColors
	case 's', 'S':
		return CmdLogStats
	}
	return CmdNone
}

// Apply runs a host command. Roster errors are returned after being
// logged; the tank is unchanged in that case.
func (t *Tank) Apply(cmd Command) error {
	switch cmd {
	case CmdAddFish:
		_, err := t.AddFish()
		return err
	case CmdRemoveFish:
		_, err := t.RemoveFish()
		return err
	case CmdReset:
		t.ResetAll()
	case CmdChangeColors:
		t.ChangeAllColors()
	case CmdLogStats:
		t.LogRoster()
	}
	return nil
}

// LogRoster logs one line per fish plus the colour distribution.
func (t *Tank) LogRoster() {
	colors := make(map[string]int)
	for i, f := range t.Snapshot() {
		colors[f.Color.Name]++
		t.logger.Info("fish",
			"index", i+1,
			"fish", f.ID.Short(),
			"x", int(f.Pos.X),
			"y", int(f.Pos.Y),
			"speed", f.Speed,
			"personality", f.Personality,
			"energy", f.Energy,
			"state", f.State.String(),
			"escaping", f.Escaping,
			"color", f.Color.Name,
		)
	}

	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)
	args := []any{"count", t.roster.Len()}
	for _, name := range names {
		args = append(args, name, colors[name])
	}
	t.logger.Info("roster", args...)
}

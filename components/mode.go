package components

// Mode is a named path-shape family.
type Mode uint8

const (
	ModeNone Mode = iota
	ModePatrol
	ModeForaging
	ModeResting
	ModeExploring
	ModeEscape
)

var modeNames = [...]string{
	ModeNone:      "none",
	ModePatrol:    "patrol",
	ModeForaging:  "foraging",
	ModeResting:   "resting",
	ModeExploring: "exploring",
	ModeEscape:    "escape",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return ModeNone, false
}

// SwimModes lists the modes the path generator can select.
var SwimModes = []Mode{ModePatrol, ModeForaging, ModeResting, ModeExploring}

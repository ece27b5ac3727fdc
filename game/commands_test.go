package game

import (
	"errors"
	"testing"
)

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		key  rune
		want Command
	}{
		{'a', CmdAddFish},
		{'R', CmdRemoveFish},
		{'c', CmdReset},
		{'x', CmdChangeColors},
		{'s', CmdLogStats},
		{'q', CmdNone},
	}
	for _, tt := range tests {
		if got := CommandForKey(tt.key); got != tt.want {
			t.Errorf("CommandForKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	tank, _, _ := newTestTank(t, StrategyPursuit, func(o *Options) { o.InitialCount = 1 })

	if err := tank.Apply(CmdAddFish); err != nil {
		t.Fatalf("add: %v", err)
	}
	if tank.Count() != 2 {
		t.Fatalf("count = %d, want 2", tank.Count())
	}
	if err := tank.Apply(CmdRemoveFish); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := tank.Apply(CmdRemoveFish); !errors.Is(err, ErrRosterMinimum) {
		t.Errorf("remove at minimum = %v, want ErrRosterMinimum", err)
	}
	if err := tank.Apply(CmdLogStats); err != nil {
		t.Errorf("stats: %v", err)
	}
	if err := tank.Apply(CmdNone); err != nil {
		t.Errorf("none: %v", err)
	}
}

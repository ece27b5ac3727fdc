package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfish/game"
)

// ControlPanel renders the roster buttons and fish count.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a control panel anchored at x, y.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition moves the panel, e.g. after a window resize.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlPanel) Contains(p rl.Vector2) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(p, c.bounds())
}

func (c *ControlPanel) height() int32 {
	t := c.renderer.Theme
	return t.Padding*3 + t.LineHeight + (t.ButtonHeight+4)*2
}

func (c *ControlPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height())}
}

// Draw renders the panel and returns the command of the pressed button.
func (c *ControlPanel) Draw(count, maxFish int) game.Command {
	if !c.visible {
		return game.CmdNone
	}
	r := c.renderer
	t := r.Theme
	r.DrawPanel(c.x, c.y, c.width, c.height())

	y := c.y + t.Padding
	rl.DrawText(fmt.Sprintf("Fish: %d / %d", count, maxFish), c.x+t.Padding, y, 14, rl.White)
	y += t.LineHeight + t.Padding

	half := float32(c.width-t.Padding*3) / 2
	left := float32(c.x + t.Padding)
	right := left + half + float32(t.Padding)
	bh := float32(t.ButtonHeight)

	cmd := game.CmdNone
	if gui.Button(rl.Rectangle{X: left, Y: float32(y), Width: half, Height: bh}, "Add") {
		cmd = game.CmdAddFish
	}
	if gui.Button(rl.Rectangle{X: right, Y: float32(y), Width: half, Height: bh}, "Remove") {
		cmd = game.CmdRemoveFish
	}
	y += t.ButtonHeight + 4
	if gui.Button(rl.Rectangle{X: left, Y: float32(y), Width: half, Height: bh}, "Reset") {
		cmd = game.CmdReset
	}
	if gui.Button(rl.Rectangle{X: right, Y: float32(y), Width: half, Height: bh}, "Colors") {
		cmd = game.CmdChangeColors
	}
	return cmd
}

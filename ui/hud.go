package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfish/game"
)

// HUDData holds the values shown by the dev HUD.
type HUDData struct {
	Strategy string
	Preset   string
	Stats    game.TankStats
	FPS      int32
	Elapsed  float64 // seconds
}

// HUD renders the dev-mode heads-up display.
type HUD struct {
	renderer *Renderer
	visible  bool
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}
	r := h.renderer
	t := r.Theme
	const width = 220
	x, y := int32(10), int32(10)
	r.DrawPanel(x, y, width, t.LineHeight*8+t.Padding*2)

	x += t.Padding
	y += t.Padding
	rl.DrawText(fmt.Sprintf("%s / %s", data.Strategy, data.Preset), x, y, 14, t.SectionHeader)
	y += t.LineHeight + 2

	s := data.Stats
	y = r.DrawLabelValue(x, y, "Fish", fmt.Sprintf("%d", s.Fish))
	y = r.DrawLabelValue(x, y, "Escaping", fmt.Sprintf("%d", s.Escaping))
	y = r.DrawLabelValue(x, y, "Resting", fmt.Sprintf("%d", s.Resting))
	y = r.DrawLabelValue(x, y, "Ticks", fmt.Sprintf("%d", s.Ticks))
	y = r.DrawLabelValue(x, y, "Timers", fmt.Sprintf("%d", s.PendingTimers))
	y = r.DrawEnergyBar(x, y, "Energy", float32(s.MeanEnergy), width-t.Padding*2)
	rl.DrawText(fmt.Sprintf("FPS %d  t=%.0fs", data.FPS, data.Elapsed), x, y, t.FontSize, t.LabelColor)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	if !h.visible {
		return
	}
	rl.DrawText("A add  R remove  C reset  X colors  S log  H hud  P panel", 10, screenHeight-25, 14, rl.Gray)
}

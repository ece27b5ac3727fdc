// Package renderer draws the tank with raylib. It only reads fish state and
// events; nothing here feeds back into motion.
package renderer

import (
	"hash/fnv"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/flowfish/components"
)

// Fish body proportions in pixels, drawn pointing along +X.
const (
	bodyLength   = 40.0
	bodyHeight   = 18.0
	tailLength   = 14.0
	tailSpread   = 9.0
	bodySegments = 18

	bobAmplitude  = 3.0 // px
	swayAmplitude = 4.0 // degrees
	tailWagRate   = 6.0 // rad/s at full speed
)

// FishRenderer draws fish bodies oriented by heading, with a small
// noise-driven bob and sway that is desynchronised per fish.
type FishRenderer struct {
	noise opensimplex.Noise
}

// NewFishRenderer creates a fish renderer. seed only affects idle motion.
func NewFishRenderer(seed int64) *FishRenderer {
	return &FishRenderer{noise: opensimplex.New(seed)}
}

// phase returns a stable per-fish noise offset.
func phase(id components.FishID) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%10000) / 10.0
}

// Draw renders one fish at time now (seconds) with the given opacity.
func (r *FishRenderer) Draw(f components.Fish, now float64, alpha float32) {
	if alpha <= 0 {
		return
	}
	p := phase(f.ID)
	bob := r.noise.Eval2(now*0.5, p) * bobAmplitude
	sway := r.noise.Eval2(now*0.7, p+100) * swayAmplitude

	x := &transform{
		origin: rl.NewVector2(float32(f.Pos.X), float32(f.Pos.Y+bob)),
		angle:  (f.Heading + sway) * math.Pi / 180,
		flip:   f.Facing == components.FacingLeft,
	}
	drawFish(x, f.Color, f.Speed, now+p, alpha)
}

// DrawGhost renders a fish copy at a fixed pose, for fade-outs.
func (r *FishRenderer) DrawGhost(f components.Fish, alpha float32) {
	x := &transform{
		origin: rl.NewVector2(float32(f.Pos.X), float32(f.Pos.Y)),
		angle:  f.Heading * math.Pi / 180,
		flip:   f.Facing == components.FacingLeft,
	}
	drawFish(x, f.Color, 0, 0, alpha)
}

func drawFish(x *transform, scheme components.ColorScheme, speed, t float64, alpha float32) {
	wag := math.Sin(t*tailWagRate*math.Max(speed, 0.3)) * 4

	// Tail
	tailBase := -bodyLength / 2
	triangle(
		x.at(tailBase+2, 0),
		x.at(tailBase-tailLength, -tailSpread+wag),
		x.at(tailBase-tailLength, tailSpread+wag),
		fade(scheme.Tail, alpha),
	)

	// Dorsal and pectoral fins
	triangle(x.at(-6, -bodyHeight/2+2), x.at(6, -bodyHeight/2+1), x.at(-2, -bodyHeight/2-7), fade(scheme.Fins, alpha))
	triangle(x.at(2, bodyHeight/2-3), x.at(8, bodyHeight/2-2), x.at(0, bodyHeight/2+5), fade(scheme.Fins, alpha))

	// Body: the upper half in the first gradient stop, the lower in the second.
	rim := ellipse(x, bodyLength/2, bodyHeight/2)
	center := x.at(0, 0)
	top, bottom := fade(scheme.Body[0], alpha), fade(scheme.Body[1], alpha)
	for i := range rim {
		j := (i + 1) % len(rim)
		c := top
		if i >= len(rim)/2 {
			c = bottom
		}
		triangle(center, rim[i], rim[j], c)
	}

	if scheme.HasStripes {
		for _, sx := range []float64{-8, 4} {
			rl.DrawLineEx(x.at(sx, -bodyHeight/2+2), x.at(sx+1, bodyHeight/2-2), 3, fade(scheme.Stripes, alpha))
		}
	}
	if scheme.BlackEdge {
		edge := fade(components.RGB{}, alpha*0.8)
		for i := range rim {
			rl.DrawLineEx(rim[i], rim[(i+1)%len(rim)], 1, edge)
		}
	}

	// Eye
	eye := x.at(bodyLength/2-8, -2)
	rl.DrawCircleV(eye, 2.6, rl.Fade(rl.White, alpha))
	rl.DrawCircleV(eye, 1.4, rl.Fade(rl.Black, alpha))
}

// transform maps fish-local coordinates (nose along +X) to the screen.
// Fish facing left are mirrored vertically so they stay upright.
type transform struct {
	origin rl.Vector2
	angle  float64
	flip   bool
}

func (x *transform) at(lx, ly float64) rl.Vector2 {
	if x.flip {
		ly = -ly
	}
	sin, cos := math.Sincos(x.angle)
	return rl.NewVector2(
		x.origin.X+float32(lx*cos-ly*sin),
		x.origin.Y+float32(lx*sin+ly*cos),
	)
}

func ellipse(x *transform, rx, ry float64) []rl.Vector2 {
	pts := make([]rl.Vector2, bodySegments)
	for i := range pts {
		a := float64(i) / bodySegments * 2 * math.Pi
		// Taper the tail end a little.
		w := ry
		if math.Cos(a) < 0 {
			w *= 0.8 + 0.2*(1+math.Cos(a))
		}
		pts[i] = x.at(rx*math.Cos(a), -w*math.Sin(a))
	}
	return pts
}

// triangle draws a filled triangle in either winding.
func triangle(a, b, c rl.Vector2, color rl.Color) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, color)
}

func fade(c components.RGB, alpha float32) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(255 * clamp01(alpha))}
}

func clamp01(v float32) float32 {
	return float32(math.Max(0, math.Min(1, float64(v))))
}

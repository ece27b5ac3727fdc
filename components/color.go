package components

import "math/rand"

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// ColorScheme is the cosmetic paint job of a fish. It never affects motion.
type ColorScheme struct {
	Name       string
	Body       [2]RGB // gradient start/end
	Tail       RGB
	Fins       RGB
	Stripes    RGB
	HasStripes bool
	BlackEdge  bool
}

func hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Palettes maps a palette name to its schemes.
var Palettes = map[string][]ColorScheme{
	"reef": {
		{Name: "clownfish", Body: [2]RGB{hex(0xff6600), hex(0xff8533)}, Tail: hex(0xff4400), Fins: hex(0xff7722), Stripes: hex(0xffffff), HasStripes: true},
		{Name: "nemo", Body: [2]RGB{hex(0xff5500), hex(0xdd3300)}, Tail: hex(0xcc2200), Fins: hex(0xff6633), Stripes: hex(0xffffff), HasStripes: true, BlackEdge: true},
		{Name: "ocean", Body: [2]RGB{hex(0x4ecdc4), hex(0x26a69a)}, Tail: hex(0x26a69a), Fins: hex(0x6ed4d2)},
		{Name: "coral", Body: [2]RGB{hex(0xff6b9d), hex(0xc44569)}, Tail: hex(0xc44569), Fins: hex(0xff8fab)},
		{Name: "sunset", Body: [2]RGB{hex(0xffa726), hex(0xf57c00)}, Tail: hex(0xf57c00), Fins: hex(0xffb74d)},
	},
	"classic": {
		{Name: "blue", Body: [2]RGB{hex(0x74b9ff), hex(0x0984e3)}, Tail: hex(0x0984e3), Fins: hex(0x74b9ff)},
		{Name: "orange", Body: [2]RGB{hex(0xfdcb6e), hex(0xe17055)}, Tail: hex(0xe17055), Fins: hex(0xfab1a0)},
		{Name: "green", Body: [2]RGB{hex(0x55efc4), hex(0x00b894)}, Tail: hex(0x00b894), Fins: hex(0x81ecec)},
		{Name: "purple", Body: [2]RGB{hex(0xa29bfe), hex(0x6c5ce7)}, Tail: hex(0x6c5ce7), Fins: hex(0xa29bfe)},
		{Name: "yellow", Body: [2]RGB{hex(0xffeaa7), hex(0xfdcb6e)}, Tail: hex(0xfdcb6e), Fins: hex(0xffeaa7)},
	},
}

// RandomScheme picks a scheme from the named palette, falling back to reef.
func RandomScheme(rng *rand.Rand, palette string) ColorScheme {
	schemes, ok := Palettes[palette]
	if !ok || len(schemes) == 0 {
		schemes = Palettes["reef"]
	}
	return schemes[rng.Intn(len(schemes))]
}

package colors

import "math"

// PaletteSize is the number of entries used for escape-time coloring.
const PaletteSize = 256

// BuildPalette linearly interpolates steps colors across anchors. The first
// entry is anchors[0] and the last is anchors[len(anchors)-1]. It returns nil
// when anchors is empty.
func BuildPalette(steps int, anchors []Color) []Color {
	if len(anchors) == 0 || steps <= 0 {
		return nil
	}

	palette := make([]Color, steps)
	k := len(anchors)
	if k == 1 {
		for i := range palette {
			palette[i] = anchors[0]
		}
		return palette
	}

	span := (steps - 1) / (k - 1)
	if span == 0 {
		span = 1
	}

	for i := range palette {
		seg := i / span
		if seg >= k-1 {
			palette[i] = anchors[k-1]
			continue
		}
		t := float64(i%span) / float64(span)
		palette[i] = lerp(anchors[seg], anchors[seg+1], t)
	}
	palette[steps-1] = anchors[k-1]

	return palette
}

func lerp(a, b Color, t float64) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-t) + float64(y)*t))
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

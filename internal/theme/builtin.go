package theme

import "github.com/darkawower/astra/internal/colors"

var builtIn = []Theme{
	{
		Name:       "Neon Dreams",
		Colors:     []colors.Color{{R: 245, G: 245, B: 245}, {R: 58, G: 12, B: 163}, {R: 255, G: 0, B: 110}, {R: 0, G: 255, B: 183}, {R: 255, G: 221, B: 51}},
		DarkColors: []colors.Color{{R: 10, G: 10, B: 30}, {R: 102, G: 0, B: 255}, {R: 255, G: 51, B: 153}, {R: 0, G: 204, B: 153}, {R: 255, G: 230, B: 80}},
	},
	{
		Name:       "Aurora Glow",
		Colors:     []colors.Color{{R: 250, G: 250, B: 255}, {R: 70, G: 130, B: 180}, {R: 144, G: 238, B: 144}, {R: 255, G: 105, B: 180}, {R: 255, G: 215, B: 0}},
		DarkColors: []colors.Color{{R: 5, G: 5, B: 20}, {R: 30, G: 144, B: 255}, {R: 60, G: 179, B: 113}, {R: 255, G: 20, B: 147}, {R: 255, G: 140, B: 0}},
	},
	{
		Name:       "Cyber Sunset",
		Colors:     []colors.Color{{R: 255, G: 245, B: 235}, {R: 255, G: 87, B: 51}, {R: 255, G: 153, B: 51}, {R: 204, G: 0, B: 102}, {R: 255, G: 255, B: 102}},
		DarkColors: []colors.Color{{R: 20, G: 10, B: 5}, {R: 255, G: 69, B: 0}, {R: 255, G: 120, B: 0}, {R: 153, G: 0, B: 76}, {R: 204, G: 204, B: 0}},
	},
	{
		Name:       "Mystic Forest",
		Colors:     []colors.Color{{R: 240, G: 255, B: 240}, {R: 34, G: 139, B: 34}, {R: 85, G: 107, B: 47}, {R: 189, G: 183, B: 107}, {R: 152, G: 251, B: 152}},
		DarkColors: []colors.Color{{R: 5, G: 20, B: 5}, {R: 0, G: 100, B: 0}, {R: 46, G: 64, B: 33}, {R: 139, G: 139, B: 80}, {R: 0, G: 255, B: 127}},
	},
	{
		Name:       "Retro Pop",
		Colors:     []colors.Color{{R: 255, G: 250, B: 240}, {R: 255, G: 69, B: 96}, {R: 255, G: 165, B: 0}, {R: 102, G: 205, B: 170}, {R: 147, G: 112, B: 219}},
		DarkColors: []colors.Color{{R: 30, G: 10, B: 10}, {R: 255, G: 36, B: 66}, {R: 255, G: 120, B: 0}, {R: 72, G: 159, B: 139}, {R: 122, G: 88, B: 181}},
	},
	{
		Name:       "Ocean Breeze",
		Colors:     []colors.Color{{R: 240, G: 255, B: 255}, {R: 0, G: 191, B: 255}, {R: 70, G: 130, B: 180}, {R: 32, G: 178, B: 170}, {R: 175, G: 238, B: 238}},
		DarkColors: []colors.Color{{R: 10, G: 25, B: 30}, {R: 0, G: 139, B: 200}, {R: 50, G: 100, B: 160}, {R: 22, G: 128, B: 130}, {R: 100, G: 190, B: 190}},
	},
	{
		Name:       "Galaxy Voyage",
		Colors:     []colors.Color{{R: 245, G: 245, B: 255}, {R: 75, G: 0, B: 130}, {R: 138, G: 43, B: 226}, {R: 255, G: 20, B: 147}, {R: 240, G: 230, B: 140}},
		DarkColors: []colors.Color{{R: 15, G: 10, B: 35}, {R: 148, G: 0, B: 211}, {R: 186, G: 85, B: 211}, {R: 255, G: 0, B: 127}, {R: 189, G: 183, B: 107}},
	},
	{
		Name:       "Fire & Ice",
		Colors:     []colors.Color{{R: 255, G: 250, B: 255}, {R: 0, G: 191, B: 255}, {R: 135, G: 206, B: 250}, {R: 255, G: 69, B: 0}, {R: 255, G: 140, B: 0}},
		DarkColors: []colors.Color{{R: 5, G: 5, B: 15}, {R: 0, G: 139, B: 200}, {R: 100, G: 149, B: 237}, {R: 255, G: 36, B: 0}, {R: 204, G: 102, B: 0}},
	},
	{
		Name:       "Candy Crush",
		Colors:     []colors.Color{{R: 255, G: 250, B: 250}, {R: 255, G: 99, B: 71}, {R: 255, G: 182, B: 193}, {R: 255, G: 160, B: 122}, {R: 255, G: 218, B: 185}},
		DarkColors: []colors.Color{{R: 30, G: 10, B: 10}, {R: 220, G: 20, B: 60}, {R: 255, G: 105, B: 180}, {R: 210, G: 105, B: 30}, {R: 255, G: 160, B: 122}},
	},
	{
		Name:       "Sunlit Meadow",
		Colors:     []colors.Color{{R: 250, G: 255, B: 245}, {R: 173, G: 255, B: 47}, {R: 124, G: 252, B: 0}, {R: 255, G: 222, B: 173}, {R: 255, G: 239, B: 213}},
		DarkColors: []colors.Color{{R: 10, G: 20, B: 5}, {R: 154, G: 205, B: 50}, {R: 85, G: 139, B: 47}, {R: 210, G: 180, B: 140}, {R: 245, G: 222, B: 179}},
	},
}

// BuiltIn returns a copy of the ten built-in themes.
func BuiltIn() []Theme {
	out := make([]Theme, len(builtIn))
	copy(out, builtIn)
	return out
}

// Find returns the built-in theme with the given name.
func Find(name string) (Theme, bool) {
	for _, t := range builtIn {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

package colors

import (
	"fmt"
	"strings"
)

// Name is one of the twenty named solid colors.
type Name string

const (
	White       Name = "White"
	Black       Name = "Black"
	LightGray   Name = "LightGray"
	DarkGray    Name = "DarkGray"
	Silver      Name = "Silver"
	SlateGray   Name = "SlateGray"
	NavyBlue    Name = "NavyBlue"
	SkyBlue     Name = "SkyBlue"
	SteelBlue   Name = "SteelBlue"
	Teal        Name = "Teal"
	ForestGreen Name = "ForestGreen"
	Olive       Name = "Olive"
	Lime        Name = "Lime"
	Maroon      Name = "Maroon"
	Crimson     Name = "Crimson"
	DeepPurple  Name = "DeepPurple"
	Indigo      Name = "Indigo"
	Orchid      Name = "Orchid"
	Coral       Name = "Coral"
	Beige       Name = "Beige"
)

// Names lists the named colors in display order.
var Names = []Name{
	White, Black, LightGray, DarkGray, Silver, SlateGray, NavyBlue, SkyBlue,
	SteelBlue, Teal, ForestGreen, Olive, Lime, Maroon, Crimson, DeepPurple,
	Indigo, Orchid, Coral, Beige,
}

var namedRGB = map[Name]Color{
	White:       {255, 255, 255},
	Black:       {0, 0, 0},
	LightGray:   {211, 211, 211},
	DarkGray:    {64, 64, 64},
	Silver:      {192, 192, 192},
	SlateGray:   {112, 128, 144},
	NavyBlue:    {0, 0, 128},
	SkyBlue:     {135, 206, 235},
	SteelBlue:   {70, 130, 180},
	Teal:        {0, 128, 128},
	ForestGreen: {34, 139, 34},
	Olive:       {128, 128, 0},
	Lime:        {0, 255, 0},
	Maroon:      {128, 0, 0},
	Crimson:     {220, 20, 60},
	DeepPurple:  {75, 0, 130},
	Indigo:      {75, 0, 130},
	Orchid:      {218, 112, 214},
	Coral:       {255, 127, 80},
	Beige:       {245, 245, 220},
}

// ParseName accepts "LightGray", "light-gray", "light_gray", or "lightgray".
func ParseName(s string) (Name, error) {
	key := normalizeName(s)
	for _, n := range Names {
		if normalizeName(string(n)) == key {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown color name %q", s)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
}

// Color returns the RGB value of n. Unknown names are black.
func (n Name) Color() Color {
	return namedRGB[n]
}

// Kebab returns the command-line spelling, e.g. "light-gray".
func (n Name) Kebab() string {
	var b strings.Builder
	for i, r := range string(n) {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

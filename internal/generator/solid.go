package generator

import (
	"context"
	"image"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/colors"
	"github.com/darkawower/astra/internal/theme"
)

// SolidModeKind selects how the fill color is chosen.
type SolidModeKind int

const (
	SolidRandom SolidModeKind = iota
	SolidRGB
	SolidNamed
)

// SolidMode is the fill color requested on the command line.
type SolidMode struct {
	Kind  SolidModeKind
	Color colors.Color
	Name  colors.Name
}

// RandomMode picks a random color.
func RandomMode() SolidMode {
	return SolidMode{Kind: SolidRandom}
}

// RGBMode fills with c.
func RGBMode(c colors.Color) SolidMode {
	return SolidMode{Kind: SolidRGB, Color: c}
}

// NamedMode fills with a named color.
func NamedMode(n colors.Name) SolidMode {
	return SolidMode{Kind: SolidNamed, Name: n}
}

// SolidOptions come from the user config.
type SolidOptions struct {
	PreferredNames []colors.Name
	PreferredRGB   []colors.Color
	// RespectThemes fills with a theme's average color and overrides the
	// preferred lists.
	RespectThemes bool
}

// SolidGenerator fills the display with one color.
type SolidGenerator struct {
	deps   Deps
	mode   SolidMode
	opts   SolidOptions
	themes []theme.Theme
}

// NewSolid creates a solid generator. themes are the user themes.
func NewSolid(deps Deps, mode SolidMode, opts SolidOptions, themes []theme.Theme) *SolidGenerator {
	return &SolidGenerator{deps: deps, mode: mode, opts: opts, themes: themes}
}

func (g *SolidGenerator) Kind() Kind {
	return Solid
}

// Generate implements Generator.
func (g *SolidGenerator) Generate(ctx context.Context) (image.Image, error) {
	g.deps.Logger.Info().Msg("Generating solid color")

	w, h, err := g.deps.resolution()
	if err != nil {
		return nil, err
	}

	c, err := g.color()
	if err != nil {
		return nil, err
	}
	g.deps.Logger.Debug().Str("color", c.Hex()).Msg("Selected fill color")

	return colors.Fill(w, h, c), nil
}

func (g *SolidGenerator) color() (colors.Color, error) {
	rng := g.deps.Rand

	if g.opts.RespectThemes {
		dark, err := theme.NewDetector(theme.AppearanceAuto, g.deps.Platform.Theme()).Dark()
		if err != nil {
			return colors.Color{}, apperr.Wrap(apperr.OS, err)
		}
		t := theme.NewSelector(g.themes, rng).Random()
		g.deps.Logger.Debug().Str("theme", t.Name).Bool("dark", dark).Msg("Using theme average color")
		return t.AverageColor(dark), nil
	}

	if n := len(g.opts.PreferredNames) + len(g.opts.PreferredRGB); n > 0 {
		i := rng.IntN(n)
		if i < len(g.opts.PreferredNames) {
			return g.opts.PreferredNames[i].Color(), nil
		}
		return g.opts.PreferredRGB[i-len(g.opts.PreferredNames)], nil
	}

	switch g.mode.Kind {
	case SolidRGB:
		return g.mode.Color, nil
	case SolidNamed:
		return g.mode.Name.Color(), nil
	default:
		return colors.Color{
			R: uint8(rng.UintN(256)),
			G: uint8(rng.UintN(256)),
			B: uint8(rng.UintN(256)),
		}, nil
	}
}

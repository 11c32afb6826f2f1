package generator

import (
	"context"
	"fmt"
	"image"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/fractal"
	"github.com/darkawower/astra/internal/theme"
)

// JuliaOptions tune the fractal generator.
type JuliaOptions struct {
	Appearance     theme.Appearance
	ComplexNumbers []complex128
	Threshold      int
	// RespectThemes paints with user themes when any are defined.
	RespectThemes bool
}

// DefaultJuliaOptions follow the system appearance with the built-in constants.
func DefaultJuliaOptions() JuliaOptions {
	return JuliaOptions{
		Appearance:     theme.AppearanceAuto,
		ComplexNumbers: fractal.ComplexNumbers,
		Threshold:      fractal.DefaultThreshold,
	}
}

// JuliaGenerator renders a Julia set zoomed on a sampled hotspot.
type JuliaGenerator struct {
	deps   Deps
	opts   JuliaOptions
	themes []theme.Theme
}

// NewJulia creates a Julia generator. themes are the user themes.
func NewJulia(deps Deps, opts JuliaOptions, themes []theme.Theme) *JuliaGenerator {
	if len(opts.ComplexNumbers) == 0 {
		opts.ComplexNumbers = fractal.ComplexNumbers
	}
	if opts.Threshold <= 0 {
		opts.Threshold = fractal.DefaultThreshold
	}
	if opts.Appearance == "" {
		opts.Appearance = theme.AppearanceAuto
	}
	return &JuliaGenerator{deps: deps, opts: opts, themes: themes}
}

func (g *JuliaGenerator) Kind() Kind {
	return Julia
}

// Generate implements Generator.
func (g *JuliaGenerator) Generate(ctx context.Context) (image.Image, error) {
	log := g.deps.Logger
	log.Info().Msg("Generating julia set")

	w, h, err := g.deps.resolution()
	if err != nil {
		return nil, err
	}

	dark, err := theme.NewDetector(g.opts.Appearance, g.deps.Platform.Theme()).Dark()
	if err != nil {
		return nil, apperr.Wrap(apperr.OS, err)
	}
	log.Debug().Bool("dark", dark).Msg("Resolved appearance")

	var user []theme.Theme
	if g.opts.RespectThemes {
		user = g.themes
	}
	selected := theme.NewSelector(user, g.deps.Rand).Random()
	palette := selected.Palette(dark)
	log.Debug().Str("theme", selected.Name).Msg("Selected theme")

	c := g.opts.ComplexNumbers[g.deps.Rand.IntN(len(g.opts.ComplexNumbers))]
	log.Debug().Str("c", fmt.Sprint(c)).Msg("Selected julia constant")

	log.Info().Msg("Sampling hotspots")
	hotspots, err := fractal.Sample(ctx, g.deps.Rand, c, w, h, g.opts.Threshold)
	if err != nil {
		return nil, apperr.Wrap(apperr.ImageGeneration, fmt.Errorf("failed to sample hotspots: %w", err))
	}

	focus, zoom := complex128(0), 1.0
	if len(hotspots) > 0 {
		focus = hotspots[g.deps.Rand.IntN(len(hotspots))].Z
		zoom = 1 + g.deps.Rand.Float64()*9
	} else {
		log.Warn().Msg("No hotspots found, rendering the whole set")
	}
	log.Debug().Int("hotspots", len(hotspots)).Str("focus", fmt.Sprint(focus)).Float64("zoom", zoom).Msg("Selected viewport")

	log.Info().Msg("Rendering image")
	img, err := fractal.Render(ctx, c, fractal.NewViewport(focus, zoom), w, h, palette)
	if err != nil {
		return nil, apperr.Wrap(apperr.ImageGeneration, fmt.Errorf("failed to render julia set: %w", err))
	}
	return img, nil
}

package generator

import (
	"context"
	"image"
	"math"

	"github.com/darkawower/astra/internal/colors"
	"github.com/darkawower/astra/internal/provider"
	"github.com/darkawower/astra/internal/theme"
)

// SpotlightOptions come from the user config.
type SpotlightOptions struct {
	Country string
	Locale  string
	// RespectThemes downloads two candidates and keeps the one closest to a
	// user theme.
	RespectThemes bool
}

// SpotlightGenerator downloads the Spotlight image of the day.
type SpotlightGenerator struct {
	deps   Deps
	client *provider.Spotlight
	opts   SpotlightOptions
	themes []theme.Theme
}

// NewSpotlight creates a Spotlight generator. themes are the user themes.
func NewSpotlight(deps Deps, client *provider.Spotlight, opts SpotlightOptions, themes []theme.Theme) *SpotlightGenerator {
	q := provider.DefaultQuery()
	if opts.Country == "" {
		opts.Country = q.Country
	}
	if opts.Locale == "" {
		opts.Locale = q.Locale
	}
	return &SpotlightGenerator{deps: deps, client: client, opts: opts, themes: themes}
}

func (g *SpotlightGenerator) Kind() Kind {
	return Spotlight
}

// Generate implements Generator.
func (g *SpotlightGenerator) Generate(ctx context.Context) (image.Image, error) {
	log := g.deps.Logger.With().Str("provider", g.client.Name()).Logger()
	log.Info().Msg("Fetching spotlight image")

	matching := g.opts.RespectThemes && len(g.themes) > 0
	count := 1
	if matching {
		count = 2
	}

	urls, err := g.client.URLs(ctx, provider.Query{Count: count, Country: g.opts.Country, Locale: g.opts.Locale})
	if err != nil {
		return nil, err
	}
	log.Debug().Int("count", len(urls)).Msg("Received download URLs")

	if !matching {
		log.Debug().Str("url", urls[0]).Msg("Downloading image")
		return g.client.Download(ctx, urls[0])
	}

	averages := make([]colors.Color, len(g.themes))
	for i, t := range g.themes {
		averages[i] = t.AverageColor(false)
	}

	var (
		best     image.Image
		bestDist = math.MaxInt
	)
	for i, u := range urls {
		log.Info().Msgf("Downloading candidate %d/%d", i+1, len(urls))
		img, err := g.client.Download(ctx, u)
		if err != nil {
			return nil, err
		}
		avg := colors.AverageImage(img)
		dist := ThemeDistance(avg, averages)
		log.Debug().Str("url", u).Str("average", avg.Hex()).Int("distance", dist).Msg("Scored candidate")
		if dist < bestDist {
			best, bestDist = img, dist
		}
	}
	return best, nil
}

// ThemeDistance is the smallest squared RGB distance from c to any of the
// theme averages.
func ThemeDistance(c colors.Color, averages []colors.Color) int {
	best := math.MaxInt
	for _, a := range averages {
		best = min(best, colors.Distance(c, a))
	}
	return best
}

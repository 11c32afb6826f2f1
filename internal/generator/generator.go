// Package generator produces wallpaper images: Julia fractals, solid colors
// and Spotlight photographs.
package generator

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/platform"
)

// Kind names a generator. It doubles as the saved file prefix.
type Kind string

const (
	Julia     Kind = "julia"
	Solid     Kind = "solid"
	Spotlight Kind = "spotlight"
)

// Kinds lists every generator in display order.
var Kinds = []Kind{Julia, Solid, Spotlight}

// ParseKind accepts a generator name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", apperr.New(apperr.Parse, "unknown generator %q (must be julia, solid, or spotlight)", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) String() string {
	return string(k)
}

// Generator produces one image sized to the display.
type Generator interface {
	Kind() Kind
	Generate(ctx context.Context) (image.Image, error)
}

// Deps are the collaborators shared by every generator.
type Deps struct {
	Platform platform.Platform
	Rand     *rand.Rand
	Logger   zerolog.Logger
}

func (d Deps) resolution() (int, int, error) {
	w, h, err := d.Platform.Display().Resolution()
	if err != nil {
		return 0, 0, apperr.Wrap(apperr.OS, fmt.Errorf("failed to get screen resolution: %w", err))
	}
	if w <= 0 || h <= 0 {
		return 0, 0, apperr.New(apperr.OS, "invalid screen resolution %dx%d", w, h)
	}
	d.Logger.Debug().Int("width", w).Int("height", h).Msg("Detected screen resolution")
	return w, h, nil
}

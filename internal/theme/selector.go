package theme

import "math/rand/v2"

// Selector picks themes uniformly at random.
type Selector struct {
	themes []Theme
	rng    *rand.Rand
}

// NewSelector picks from user themes when any are given, otherwise from the
// built-in themes.
func NewSelector(user []Theme, rng *rand.Rand) *Selector {
	themes := user
	if len(themes) == 0 {
		themes = builtIn
	}
	return &Selector{themes: themes, rng: rng}
}

// Random returns one theme.
func (s *Selector) Random() Theme {
	return s.themes[s.rng.IntN(len(s.themes))]
}

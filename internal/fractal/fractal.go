// Package fractal samples and renders Julia sets.
package fractal

import (
	"context"
	"image"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/darkawower/astra/internal/colors"
)

// MaxIterations bounds the escape-time iteration and indexes the last
// palette entry.
const MaxIterations = 255

// DefaultThreshold is the initial hotspot iteration threshold.
const DefaultThreshold = 200

// Reference rectangle of the complex plane sampled for hotspots.
const (
	planeWidth  = 3.0
	planeHeight = 3.5
)

const (
	passes       = 15
	baseSegments = 10
)

// ComplexNumbers are the default Julia constants.
var ComplexNumbers = []complex128{
	complex(-0.79, 0.15),
	complex(0.28, 0.008),
	complex(-1.476, 0.0),
	complex(-0.12, -0.77),
	complex(-0.70176, -0.3842),
	complex(-0.4, 0.6),
	complex(0.285, 0.01),
	complex(-0.835, 0.2321),
	complex(-0.7269, 0.1889),
	complex(0.4, 0.4),
	complex(-0.162, 1.04),
	complex(0.3, -0.01),
	complex(0.0, 0.8),
}

// Hotspot is a sampled starting point and its escape count.
type Hotspot struct {
	Z          complex128
	Iterations int
}

// Escape iterates z = z*z + c until |z| > 2 or MaxIterations is reached and
// returns the iteration count.
func Escape(z, c complex128) int {
	i := 0
	for i < MaxIterations && real(z)*real(z)+imag(z)*imag(z) <= 4 {
		z = z*z + c
		i++
	}
	return i
}

// Sample searches for hotspots of the Julia set of c on a w x h raster. Each
// pass refines the grid and lowers the threshold by threshold/15 until a pass
// records at least one point. Results are sorted by escape count, highest
// first. An empty result means no pass found a hotspot.
//
// Cell jitter is drawn from rng in cell order before cells are evaluated in
// parallel, so a seeded rng gives the same result on every run.
func Sample(ctx context.Context, rng *rand.Rand, c complex128, w, h, threshold int) ([]Hotspot, error) {
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	aspect := max(int(math.Round(float64(w)/float64(h))), 1)
	decrease := threshold / passes
	scaleX := planeWidth / float64(w)
	scaleY := planeHeight / float64(h)

	for pass := 0; pass < passes; pass++ {
		rows := baseSegments * (pass + 1)
		cols := aspect * rows
		xInterval := w / cols
		yInterval := h / rows

		starts := make([]complex128, rows*cols)
		for i := range starts {
			x := xInterval*(i%cols) + jitter(rng, xInterval/2)
			y := yInterval*(i/cols) + jitter(rng, yInterval/2)
			starts[i] = complex(float64(x)*scaleX, float64(y)*scaleY)
		}

		counts := make([]int, len(starts))
		if err := parallel(ctx, rows, func(row int) {
			for i := row * cols; i < (row+1)*cols; i++ {
				counts[i] = Escape(starts[i], c)
			}
		}); err != nil {
			return nil, err
		}

		var found []Hotspot
		for i, n := range counts {
			if n > threshold {
				found = append(found, Hotspot{Z: starts[i], Iterations: n})
			}
		}
		if len(found) > 0 {
			sort.SliceStable(found, func(a, b int) bool {
				return found[a].Iterations > found[b].Iterations
			})
			return found, nil
		}

		threshold = max(threshold-decrease, 0)
	}

	return nil, nil
}

func jitter(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.IntN(n)
}

// Viewport is the rectangle of the complex plane mapped onto the raster.
type Viewport struct {
	StartX, StartY float64
	ScaleX, ScaleY float64
}

// NewViewport centers a rectangle of the reference size divided by zoom on
// focus.
func NewViewport(focus complex128, zoom float64) Viewport {
	scaleX := planeWidth / zoom
	scaleY := planeHeight / zoom
	return Viewport{
		StartX: real(focus) - scaleX/2,
		StartY: imag(focus) - scaleY/2,
		ScaleX: scaleX,
		ScaleY: scaleY,
	}
}

// Render fills a w x h image with palette[Escape(z, c)] for every pixel. The
// palette must hold MaxIterations+1 entries. Rows are rendered in parallel.
func Render(ctx context.Context, c complex128, vp Viewport, w, h int, palette []colors.Color) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stepX := vp.ScaleX / float64(w)
	stepY := vp.ScaleY / float64(h)

	err := parallel(ctx, h, func(y int) {
		cy := float64(y)*stepY + vp.StartY
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			cx := float64(x)*stepX + vp.StartX
			col := palette[Escape(complex(cx, cy), c)]
			px := row[x*4 : x*4+4]
			px[0], px[1], px[2], px[3] = col.R, col.G, col.B, 0xff
		}
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// parallel runs fn for every index in [0, n) on a pool sized to the CPU count.
// Indices not yet started when ctx is done are skipped.
func parallel(ctx context.Context, n int, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

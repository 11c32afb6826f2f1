// Package colors provides RGB colors, palettes, and image color averaging.
package colors

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	_ "golang.org/x/image/webp"
)

// Color represents an RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the hex representation of the color.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns the opaque image/color equivalent.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// QuadraticMean averages colors per channel as round(sqrt(sum(c^2)/n)).
// It is independent of the order of cs. An empty slice yields black.
func QuadraticMean(cs []Color) Color {
	if len(cs) == 0 {
		return Color{}
	}
	var r, g, b float64
	for _, c := range cs {
		r += float64(c.R) * float64(c.R)
		g += float64(c.G) * float64(c.G)
		b += float64(c.B) * float64(c.B)
	}
	n := float64(len(cs))
	return Color{R: rootMean(r, n), G: rootMean(g, n), B: rootMean(b, n)}
}

// AverageImage computes the quadratic mean color over every pixel of img.
func AverageImage(img image.Image) Color {
	bounds := img.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return Color{}
	}

	var r, g, b float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			fr, fg, fb := float64(cr>>8), float64(cg>>8), float64(cb>>8)
			r += fr * fr
			g += fg * fg
			b += fb * fb
		}
	}
	return Color{R: rootMean(r, n), G: rootMean(g, n), B: rootMean(b, n)}
}

func rootMean(sumSquares, n float64) uint8 {
	v := math.Round(math.Sqrt(sumSquares / n))
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Distance is the squared Euclidean distance between a and b in RGB space.
func Distance(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Decode decodes a JPEG, PNG, or WebP image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Fill returns a w x h image of a single color.
func Fill(w, h int, c Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	px := c.RGBA()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = px.R
		img.Pix[i+1] = px.G
		img.Pix[i+2] = px.B
		img.Pix[i+3] = px.A
	}
	return img
}

package material

import (
	"math"

	"github.com/df07/skirt/pkg/core"
)

// MissingTextureColor is returned by image textures that have no pixels
var MissingTextureColor = core.NewVec3(1, 0, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value returns the nearest texel. Coordinates outside [0, 1] repeat the
// image; v = 1 is the top row.
func (t *ImageTexture) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return MissingTextureColor
	}

	x := texel(repeat(uv.X), t.Width)
	y := t.Height - 1 - texel(repeat(uv.Y), t.Height)
	return t.Pixels[y*t.Width+x]
}

// repeat maps c into [0, 1], keeping both edges of the unit range
func repeat(c float64) float64 {
	if c >= 0 && c <= 1 {
		return c
	}
	return c - math.Floor(c)
}

func texel(c float64, n int) int {
	return min(int(c*float64(n)), n-1)
}

package material

import (
	"github.com/df07/skirt/pkg/core"
)

// NewUVDebugTexture bakes an image showing surface coordinates as colors:
// U maps to red, V to green. Useful for checking a shape's parameterization.
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		// Image rows run top to bottom while V runs bottom to top
		v := 1 - float64(y)/float64(max(1, height-1))
		for x := 0; x < width; x++ {
			u := float64(x) / float64(max(1, width-1))
			pixels[y*width+x] = core.NewVec3(u, v, 0)
		}
	}
	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture bakes a vertical gradient from top (V=1) to bottom (V=0)
func NewGradientTexture(height int, top, bottom core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, height)
	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(1, height-1))
		pixels[y] = top.Multiply(1 - t).Add(bottom.Multiply(t))
	}
	return NewImageTexture(1, height, pixels)
}

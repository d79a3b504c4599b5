package renderer

import (
	"image"
	"image/color"

	"github.com/df07/skirt/pkg/core"
)

// FilmTile holds the accumulated samples for one rectangle of the image.
// Pixels are stored row-major with row 0 at the top of the tile.
type FilmTile struct {
	Bounds image.Rectangle
	Pixels []PixelStats
}

// NewFilmTile creates an empty tile covering bounds
func NewFilmTile(bounds image.Rectangle) *FilmTile {
	return &FilmTile{
		Bounds: bounds,
		Pixels: make([]PixelStats, bounds.Dx()*bounds.Dy()),
	}
}

// Pixel returns the accumulator for image coordinates (x, y)
func (t *FilmTile) Pixel(x, y int) *PixelStats {
	return &t.Pixels[(y-t.Bounds.Min.Y)*t.Bounds.Dx()+(x-t.Bounds.Min.X)]
}

// At returns the averaged linear color at image coordinates (x, y)
func (t *FilmTile) At(x, y int) core.Vec3 {
	return t.Pixel(x, y).GetColor()
}

// TotalSamples returns the number of samples taken across the tile
func (t *FilmTile) TotalSamples() int {
	total := 0
	for i := range t.Pixels {
		total += t.Pixels[i].SampleCount
	}
	return total
}

// RGBA converts the tile to gamma-corrected 8-bit pixels, top row first
func (t *FilmTile) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Bounds.Dx(), t.Bounds.Dy()))
	for y := t.Bounds.Min.Y; y < t.Bounds.Max.Y; y++ {
		for x := t.Bounds.Min.X; x < t.Bounds.Max.X; x++ {
			img.SetRGBA(x-t.Bounds.Min.X, y-t.Bounds.Min.Y, vec3ToColor(t.At(x, y)))
		}
	}
	return img
}

// Film is the full-resolution linear radiance buffer. Row 0 is the top of
// the image.
type Film struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFilm creates a black film
func NewFilm(width, height int) *Film {
	return &Film{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Bounds returns the rectangle covered by the film
func (f *Film) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At returns the linear color at (x, y)
func (f *Film) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the linear color at (x, y)
func (f *Film) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// MergeTile copies the averaged colors of a tile into the film, ignoring any
// part of the tile that falls outside it
func (f *Film) MergeTile(tile *FilmTile) {
	r := tile.Bounds.Intersect(f.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			f.Set(x, y, tile.At(x, y))
		}
	}
}

// Image converts the film to 8-bit pixels using gamma 2
func (f *Film) Image() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.At(x, y)))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range; NaN samples become black
	colorVec = colorVec.Clamp(0.0, 1.0)
	if colorVec.HasNaN() {
		colorVec = core.Vec3{}
	}

	return color.RGBA{
		R: uint8(255.99 * colorVec.X),
		G: uint8(255.99 * colorVec.Y),
		B: uint8(255.99 * colorVec.Z),
		A: 255,
	}
}

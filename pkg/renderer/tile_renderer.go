package renderer

import (
	"image"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/integrator"
	"github.com/df07/skirt/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major from the top left
	Bounds image.Rectangle // Pixel bounds (Min inclusive, Max exclusive)
}

// NewTileGrid creates a grid of tiles covering the image. Tiles on the
// right and bottom edges are cropped to the image.
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			startX := tx * tileSize
			startY := ty * tileSize
			endX := min(startX+tileSize, width)
			endY := min(startY+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     ty*tilesX + tx,
				Bounds: image.Rect(startX, startY, endX, endY),
			})
		}
	}
	return tiles
}

// TileSeed derives the sampler seed for the tile whose top-left pixel is
// (x, y). The same tile always gets the same samples, whatever the tiling
// order or worker count.
func TileSeed(seed int64, x, y int) int64 {
	h := uint64(seed) ^ 0x9e3779b97f4a7c15
	h = (h ^ uint64(x)) * 0xbf58476d1ce4e5b9
	h = (h ^ uint64(y)) * 0x94d049bb133111eb
	h ^= h >> 31
	return int64(h)
}

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(sc *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      sc,
		integrator: integratorInst,
	}
}

// RenderTileBounds takes samplesPerPixel jittered camera samples for every
// pixel in bounds. Image row y maps to camera coordinate t = (H-1-y+jitter)/H
// so that row 0 is the top of the picture.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, samplesPerPixel int, sampler core.Sampler) *FilmTile {
	tile := NewFilmTile(bounds)
	camera := tr.scene.Camera
	width := float64(tr.scene.SamplingConfig.Width)
	height := tr.scene.SamplingConfig.Height

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := tile.Pixel(x, y)
			for sample := 0; sample < samplesPerPixel; sample++ {
				jitter := sampler.Get2D()
				s := (float64(x) + jitter.X) / width
				t := (float64(height-1-y) + jitter.Y) / float64(height)

				ray := camera.GetRay(s, t, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
			}
		}
	}
	return tile
}

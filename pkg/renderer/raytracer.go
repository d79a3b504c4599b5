package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/integrator"
	"github.com/df07/skirt/pkg/scene"
)

// DefaultTileSize is the edge length of the square tiles Render schedules
const DefaultTileSize = 32

// RenderConfig controls how an image is split into tiles and scheduled
type RenderConfig struct {
	TileSize   int   // Edge length of each tile in pixels
	NumWorkers int   // Concurrent tile workers (0 = runtime.NumCPU())
	Seed       int64 // Base seed for the per-tile samplers
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: runtime.NumCPU(),
	}
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Printf prints to stdout
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// Raytracer renders a preprocessed scene, either a tile at a time or as a
// whole image spread across a worker pool
type Raytracer struct {
	scene    *scene.Scene
	config   RenderConfig
	renderer *TileRenderer
	logger   core.Logger
}

// NewRaytracer creates a raytracer for sc, preprocessing it if needed
func NewRaytracer(sc *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	sc.Preprocess()
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:    sc,
		config:   config,
		renderer: NewTileRenderer(sc, integrator.NewPathTracingIntegrator(sc.SamplingConfig)),
		logger:   logger,
	}
}

// Scene returns the scene being rendered
func (rt *Raytracer) Scene() *scene.Scene {
	return rt.scene
}

// RenderTile renders the w x h rectangle whose top-left pixel is (x, y)
// with the given samples per pixel (at least one). Pixels outside the image
// are cropped away; the result is nil when nothing remains.
func (rt *Raytracer) RenderTile(x, y, w, h, samples int) *FilmTile {
	cfg := rt.scene.SamplingConfig
	bounds := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, cfg.Width, cfg.Height))
	if bounds.Empty() {
		return nil
	}
	sampler := core.NewSeededSampler(TileSeed(rt.config.Seed, bounds.Min.X, bounds.Min.Y))
	return rt.renderer.RenderTileBounds(bounds, max(1, samples), sampler)
}

// Render renders the full image. Tiles are rendered concurrently and merged
// into the film by a single goroutine as they finish. On cancellation the
// partially filled film is returned together with the context error.
func (rt *Raytracer) Render(ctx context.Context) (*Film, RenderStats, error) {
	return rt.RenderTiles(ctx, nil)
}

// RenderTiles is Render with a callback invoked for every finished tile,
// after it has been merged. Callbacks run on the merging goroutine one at a
// time.
func (rt *Raytracer) RenderTiles(ctx context.Context, onTile func(TileResult)) (*Film, RenderStats, error) {
	cfg := rt.scene.SamplingConfig
	film := NewFilm(cfg.Width, cfg.Height)
	tiles := NewTileGrid(cfg.Width, cfg.Height, rt.config.TileSize)
	pool := NewWorkerPool(rt.renderer, rt.config.NumWorkers, rt.config.Seed)

	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{Tile: tile, TargetSamples: max(1, cfg.SamplesPerPixel)}
	}

	stats := RenderStats{Workers: pool.NumWorkers()}
	start := time.Now()

	results := make(chan TileResult, pool.NumWorkers())
	merged := make(chan struct{})
	go func() {
		defer close(merged)
		for result := range results {
			film.MergeTile(result.Film)
			stats.add(result.Film)
			if onTile != nil {
				onTile(result)
			}
			if stats.Tiles%max(1, len(tiles)/10) == 0 || stats.Tiles == len(tiles) {
				rt.logger.Printf("Rendered %d/%d tiles\n", stats.Tiles, len(tiles))
			}
		}
	}()

	err := pool.Run(ctx, tasks, results)
	close(results)
	<-merged

	stats.Duration = time.Since(start)
	return film, stats, err
}

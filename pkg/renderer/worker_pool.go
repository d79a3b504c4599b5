package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/skirt/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile          *Tile
	TargetSamples int
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	Tile *Tile
	Film *FilmTile
}

// WorkerPool renders tiles concurrently with at most numWorkers in flight
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
	seed       int64
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(renderer *TileRenderer, numWorkers int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		renderer:   renderer,
		numWorkers: numWorkers,
		seed:       seed,
	}
}

// NumWorkers returns the concurrency limit of the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders every task and sends each finished tile on results. Workers
// check ctx before starting a tile, so cancellation takes effect at tile
// granularity. Run returns once all started tiles have been delivered or
// abandoned; it does not close results.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask, results chan<- TileResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, task := range tasks {
		if gctx.Err() != nil {
			break
		}
		task := task
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bounds := task.Tile.Bounds
			sampler := core.NewSeededSampler(TileSeed(wp.seed, bounds.Min.X, bounds.Min.Y))
			film := wp.renderer.RenderTileBounds(bounds, task.TargetSamples, sampler)

			select {
			case results <- TileResult{Tile: task.Tile, Film: film}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

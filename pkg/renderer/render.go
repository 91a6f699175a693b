package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
)

// ErrInvalidOptions is returned when render dimensions or sample counts are not positive
var ErrInvalidOptions = errors.New("invalid render options")

// RenderOptions configures a tile-parallel render
type RenderOptions struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Jittered camera rays averaged per pixel
	TileSize        int // Edge length of a tile (0 = DefaultTileSize)
	NumWorkers      int // Tiles rendered concurrently (0 = use CPU count)
	MaxDepth        int // Path length cutoff (0 = integrator.DefaultMaxDepth)

	// SeedFunc returns the random seed for the tile with the given index.
	// nil seeds every tile from a non-deterministic source.
	SeedFunc func(tileIndex int) int64

	// Progress receives the completed percentage after each finished tile.
	// It is called from render goroutines and must be safe for concurrent use.
	Progress func(percent float64)

	Logger core.Logger // nil disables logging
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 10,
		TileSize:        DefaultTileSize,
		NumWorkers:      0, // Auto-detect CPU count
		MaxDepth:        integrator.DefaultMaxDepth,
	}
}

func (o RenderOptions) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidOptions, o.SamplesPerPixel)
	}
	if o.TileSize < 0 || o.NumWorkers < 0 || o.MaxDepth < 0 {
		return fmt.Errorf("%w: negative tile size, worker count or depth", ErrInvalidOptions)
	}
	return nil
}

// Render splits the image into tiles, renders every tile concurrently and
// merges the results once all of them have finished. The world must not be
// modified while Render runs.
func Render(ctx context.Context, world integrator.World, camera integrator.RayGenerator, opts RenderOptions) (*Image, RenderStats, error) {
	if err := opts.validate(); err != nil {
		return nil, RenderStats{}, err
	}

	tileSize := opts.TileSize
	if tileSize == 0 {
		tileSize = DefaultTileSize
	}
	numWorkers := opts.NumWorkers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}
	pt := integrator.NewPathTracingIntegrator()
	if opts.MaxDepth > 0 {
		pt.MaxDepth = opts.MaxDepth
	}
	seedFunc := opts.SeedFunc
	if seedFunc == nil {
		seedFunc = func(int) int64 { return rand.Int63() }
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.NewNopLogger()
	}

	tracer := otel.Tracer("github.com/df07/go-tile-pathtracer/pkg/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "renderer.Render", trace.WithAttributes(
		attribute.Int("width", opts.Width),
		attribute.Int("height", opts.Height),
		attribute.Int("spp", opts.SamplesPerPixel),
	))
	defer span.End()

	tiles := NewTileGrid(opts.Width, opts.Height, tileSize)
	total := len(tiles)
	logger.Printf("Rendering %dx%d at %d spp: %d tiles on %d workers", opts.Width, opts.Height, opts.SamplesPerPixel, total, numWorkers)

	start := time.Now()
	var completed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for _, tile := range tiles {
		// Seeds are drawn here so SeedFunc is only ever called from this goroutine
		seed := seedFunc(tile.Index)
		g.Go(func() error {
			_, tileSpan := tracer.Start(ctx, "renderer.renderTile", trace.WithAttributes(
				attribute.Int("tile", tile.Index),
			))
			defer tileSpan.End()

			sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
			renderTile(tile, pt, world, camera, opts, sampler)

			done := completed.Add(1)
			if opts.Progress != nil {
				opts.Progress(float64(done) / float64(total) * 100)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("while rendering tiles: %w", err)
	}

	img := NewImage(opts.Width, opts.Height)
	for _, tile := range tiles {
		img.Merge(tile)
	}

	stats := RenderStats{
		TotalPixels:  opts.Width * opts.Height,
		TotalSamples: opts.Width * opts.Height * opts.SamplesPerPixel,
		Tiles:        total,
		Workers:      numWorkers,
		Elapsed:      time.Since(start),
	}
	logger.Printf("Rendered %d samples in %v (%.0f samples/s)", stats.TotalSamples, stats.Elapsed, stats.SamplesPerSecond())
	return img, stats, nil
}

// renderTile fills every pixel of the tile; it touches nothing but the tile's own buffer
func renderTile(tile *Tile, pt *integrator.PathTracingIntegrator, world integrator.World, camera integrator.RayGenerator, opts RenderOptions, sampler core.Sampler) {
	for j := 0; j < tile.Height(); j++ {
		for i := 0; i < tile.Width(); i++ {
			x, y := tile.StartX()+i, tile.StartY()+j
			tile.Set(i, j, pt.SamplePixel(camera, x, y, opts.Width, opts.Height, opts.SamplesPerPixel, world, sampler))
		}
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/term"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/loaders"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

var (
	input     = flag.String("input", "", "JSON scene description to render (overrides -scene)")
	sceneID   = flag.String("scene", "cornell", "Scene to render: cornell, spheres or json:<name> from -scenes-dir")
	scenesDir = flag.String("scenes-dir", "scenes", "Directory scanned for JSON scene descriptions")
	list      = flag.Bool("list", false, "List available scenes and exit")
	width     = flag.Int("width", 800, "Image width in pixels")
	height    = flag.Int("height", 600, "Image height in pixels")
	spp       = flag.Int("spp", 10, "Samples per pixel")
	maxDepth  = flag.Int("depth", 100, "Maximum path length")
	output    = flag.String("output", "output.png", "Output PNG file")
	workers   = flag.Int("workers", 0, "Tiles rendered concurrently (0 = CPU count)")
	tileSize  = flag.Int("tile", renderer.DefaultTileSize, "Tile edge length in pixels")
	split     = flag.String("split", "random", "BVH split strategy: random or longest")
	seed      = flag.Int64("seed", 0, "Base seed for per-tile samplers (0 = non-deterministic)")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if *list {
		if err := listScenes(os.Stdout, *scenesDir); err != nil {
			glog.Exitf("Error listing scenes: %v", err)
		}
		return
	}

	strategy, err := geometry.ParseSplitStrategy(*split)
	if err != nil {
		glog.Exitf("Error: %v", err)
	}
	bvhOpts := geometry.DefaultBVHOptions()
	bvhOpts.Strategy = strategy

	sc, err := createScene(*input, *sceneID, *scenesDir, bvhOpts)
	if err != nil {
		glog.Exitf("Error creating scene: %v", err)
	}
	bvhStats := sc.Stats()
	glog.Infof("Scene %q: %d primitives, %d BVH nodes, depth %d", sc.Title, bvhStats.Primitives, bvhStats.Nodes, bvhStats.MaxDepth)

	opts := renderer.DefaultRenderOptions()
	opts.Width = *width
	opts.Height = *height
	opts.SamplesPerPixel = *spp
	opts.MaxDepth = *maxDepth
	opts.TileSize = *tileSize
	opts.NumWorkers = *workers
	opts.Logger = core.NewDefaultLogger()
	if *seed != 0 {
		base := *seed
		opts.SeedFunc = func(tileIndex int) int64 { return base + int64(tileIndex) }
	}
	progress := newProgressReporter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
	opts.Progress = progress.Update

	camera := renderer.NewCamera(renderer.CameraConfigFromView(sc.View, opts.Width, opts.Height))

	startTime := time.Now()
	img, stats, err := renderer.Render(context.Background(), sc, camera, opts)
	progress.Done()
	if err != nil {
		glog.Exitf("Error rendering: %v", err)
	}
	elapsed := time.Since(startTime)

	mean, stdDev := img.LuminanceSummary()
	glog.Infof("Luminance mean %.4f, std dev %.4f", mean, stdDev)

	if err := writePNG(*output, img.ToRGBA(2.0)); err != nil {
		glog.Exitf("Error saving PNG: %v", err)
	}

	fmt.Printf("Render completed in %s (%d tiles, %.0f samples/s)\n", formatElapsed(elapsed), stats.Tiles, stats.SamplesPerSecond())
	fmt.Printf("Render saved as %s\n", *output)
}

// createScene loads the -input file when given, otherwise the scene named by id
func createScene(inputFile, id, scenesDir string, opts geometry.BVHOptions) (*scene.Scene, error) {
	if inputFile != "" {
		return loaders.LoadScene(inputFile, opts)
	}
	return loaders.OpenScene(id, scenesDir, opts)
}

func listScenes(w io.Writer, scenesDir string) error {
	infos, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, info := range infos {
		if info.Description != "" {
			fmt.Fprintf(w, "  %-24s %s - %s\n", info.ID, info.Name, info.Description)
		} else {
			fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Name)
		}
	}
	return nil
}

func writePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("while creating %s: %w", filename, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("while encoding %s: %w", filename, err)
	}
	return file.Close()
}

// formatElapsed prints durations as "Nms", "Ns" or "Nmin Ns"
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dmin %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

const progressBarWidth = 40

// progressReporter draws a bar on a terminal, or logs every 10% otherwise.
// Update is called concurrently from render goroutines.
type progressReporter struct {
	mu      sync.Mutex
	out     io.Writer
	bar     bool
	percent float64
	logged  int // last logged decile
}

func newProgressReporter(out io.Writer, bar bool) *progressReporter {
	return &progressReporter{out: out, bar: bar}
}

func (p *progressReporter) Update(percent float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Tiles finish out of order; never move backwards
	if percent <= p.percent {
		return
	}
	p.percent = percent

	if p.bar {
		fmt.Fprintf(p.out, "\r%s", progressBar(percent, progressBarWidth))
		return
	}
	if decile := int(percent / 10); decile > p.logged {
		p.logged = decile
		glog.Infof("Progress: %.0f%%", percent)
	}
}

// Done ends the progress line
func (p *progressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar {
		fmt.Fprintln(p.out)
	}
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return fmt.Sprintf("[%s%s] %5.1f%%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), percent)
}

package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	Tiles        int           // Number of tiles the image was split into
	Workers      int           // Maximum number of tiles rendered concurrently
	Elapsed      time.Duration // Wall time from first submission to merged image
}

// SamplesPerSecond reports camera-ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

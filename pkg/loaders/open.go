package loaders

import (
	"fmt"
	"strings"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// OpenScene resolves a scene ID as listed by scene.ListAllScenes.
// IDs of the form "json:<name>" are looked up in scenesDir, anything else
// names a built-in scene.
func OpenScene(id, scenesDir string, opts geometry.BVHOptions) (*scene.Scene, error) {
	if !strings.HasPrefix(id, "json:") {
		return scene.NewBuiltin(id, opts)
	}

	infos, err := scene.ListJSONScenes(scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.ID == id {
			s, err := LoadScene(info.FilePath, opts)
			if err != nil {
				return nil, fmt.Errorf("while loading %s: %w", info.FilePath, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("scene %q not found in %s", id, scenesDir)
}

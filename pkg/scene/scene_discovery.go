package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
)

// SceneInfo describes a scene that can be rendered by name or by file
type SceneInfo struct {
	ID          string // Unique identifier
	Name        string // Display name
	Description string // Optional description
	Type        string // "builtin" or "json"
	FilePath    string // Path to the JSON description (json type only)
}

// builtin pairs the listing entry of a built-in scene with its constructor
type builtin struct {
	info  SceneInfo
	build func(geometry.BVHOptions) (*Scene, error)
}

var builtins = []builtin{
	{
		info: SceneInfo{
			ID:          "cornell",
			Name:        "Cornell Box",
			Description: "Cornell box with a glass and a mirror sphere",
			Type:        "builtin",
		},
		build: NewCornellScene,
	},
	{
		info: SceneInfo{
			ID:          "spheres",
			Name:        "Spheres",
			Description: "Diffuse, glass and gold spheres under a panel light",
			Type:        "builtin",
		},
		build: NewSpheresScene,
	},
}

// NewBuiltin constructs the built-in scene with the given ID
func NewBuiltin(id string, opts geometry.BVHOptions) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b.build(opts)
		}
	}
	return nil, fmt.Errorf("unknown built-in scene %q", id)
}

// ListJSONScenes scans dir for *.json scene descriptions. A missing directory is not an error.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("while checking scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("while scanning scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, ParseJSONMetadata(filePath))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseJSONMetadata reads the title of a JSON scene description.
// Unreadable files fall back to a name derived from the filename.
func ParseJSONMetadata(filePath string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       "json:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info
	}
	var header struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &header); err == nil && header.Title != "" {
		info.Name = header.Title
	}
	return info
}

// ListAllScenes returns the built-in scenes followed by those found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	all := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		all = append(all, b.info)
	}

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(all, jsonScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}

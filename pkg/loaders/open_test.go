package loaders

import (
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
)

func TestOpenScene(t *testing.T) {
	tests := []struct {
		id        string
		wantTitle string
		wantErr   bool
	}{
		{"cornell", "Cornell box", false},
		{"spheres", "Spheres", false},
		{"json:cornell", "Cornell box", false},
		{"json:missing", "", true},
		{"nonexistent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := OpenScene(tt.id, "testdata", geometry.DefaultBVHOptions())
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %q", tt.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenScene(%q) error: %v", tt.id, err)
			}
			if s.Title != tt.wantTitle {
				t.Errorf("Expected title %q, got %q", tt.wantTitle, s.Title)
			}
		})
	}
}
